package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/gridshift/pkg/cache"
	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/observability"
	"github.com/matzehuels/gridshift/pkg/render"
	"github.com/matzehuels/gridshift/pkg/search"
)

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// RenderWithCacheInfo renders res.Plan in every requested format. The bool
// reports whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	// Plans that are not cached have no stable key to hang artifacts on.
	cacheable := res.Plan.Status != search.StatusBudgetExceeded

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !cacheable {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(res.PlanKey, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := RenderPlan(ctx, res.Grid, res.Initial, res.Plan, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if !cacheable {
			continue
		}
		key := r.Keyer.ArtifactKey(res.PlanKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	opts.Logger.Info("rendered plan", "formats", missing, "moves", len(res.Plan.Moves))
	return artifacts, false, nil
}

// RenderPlan renders plan, solved from initial on g, without caching.
func RenderPlan(ctx context.Context, g *grid.Grid, initial grid.State, plan *gsio.Plan, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	states, err := plan.Replay(g, initial)
	if err != nil {
		return nil, fmt.Errorf("replay plan: %w", err)
	}
	moves, err := plan.GridMoves(g, initial)
	if err != nil {
		return nil, fmt.Errorf("replay plan: %w", err)
	}

	var dot string
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		var data []byte
		var err error
		switch format {
		case FormatText:
			data = []byte(textPlan(g, states, plan, opts.MaxMoves))
		default:
			if dot == "" {
				dot = render.ToDOT(g, initial, moves, render.Options{
					Detailed: opts.Detailed,
					MaxMoves: opts.MaxMoves,
				})
			}
			data, err = renderDOT(dot, format)
		}

		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func renderDOT(dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return render.RenderSVG(dot)
	case FormatPNG:
		return render.RenderPNG(dot)
	case FormatPDF:
		return render.RenderPDF(dot)
	}
	return nil, ValidateFormat(format)
}

// textPlan writes the map of every state along the plan, each headed by the
// move that produced it.
func textPlan(g *grid.Grid, states []grid.State, plan *gsio.Plan, maxMoves int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "initial (%s, %d moves)\n", plan.Status, plan.Length)
	sb.WriteString(render.Map(g, states[0]))
	for i, m := range plan.Moves {
		if maxMoves > 0 && i >= maxMoves {
			fmt.Fprintf(&sb, "\n... %d more moves\n", len(plan.Moves)-i)
			break
		}
		fmt.Fprintf(&sb, "\nstep %d: (%d,%d) -> (%d,%d), %dT\n", i+1, m.From.X, m.From.Y, m.To.X, m.To.Y, m.Units)
		sb.WriteString(render.Map(g, states[i+1]))
	}
	return sb.String()
}
