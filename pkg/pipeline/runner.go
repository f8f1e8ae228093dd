package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridshift/pkg/archive"
	"github.com/matzehuels/gridshift/pkg/cache"
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/observability"
	"github.com/matzehuels/gridshift/pkg/search"
)

// Runner executes pipeline stages with caching and archiving.
//
// A Runner holds no per-run state, so one Runner may serve concurrent calls
// with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive archive.Store // nil disables archiving
	Logger  *log.Logger
	PlanTTL time.Duration // lifetime of cached plans
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer means
// cache.DefaultKeyer and a nil store disables archiving.
func NewRunner(c cache.Cache, keyer cache.Keyer, store archive.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Archive: store,
		Logger:  logger,
		PlanTTL: cache.TTLPlan,
	}
}

// Solve finds the plan for the puzzle (g, initial), from the cache when
// possible.
//
// Search outcomes (found, exhausted, budget exceeded) are reported in the
// plan's status. Errors are returned for invalid options, for cancellation
// and for timeouts.
func (r *Runner) Solve(ctx context.Context, g *grid.Grid, initial grid.State, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	canonical, err := gsio.Canonical(g, initial)
	if err != nil {
		return nil, fmt.Errorf("canonical puzzle: %w", err)
	}
	res := &Result{
		Grid:       g,
		Initial:    initial,
		PuzzleHash: cache.Hash(canonical),
	}
	res.PlanKey = r.Keyer.PlanKey(res.PuzzleHash, opts.PlanKeyOpts())

	if !opts.Refresh {
		if plan, ok := r.cachedPlan(ctx, res.PlanKey); ok {
			res.Plan = plan
			res.CacheHit = true
			res.SolveTime = time.Since(start)
			opts.Logger.Info("plan from cache", "id", plan.ID, "status", plan.Status, "length", plan.Length)
			return res, nil
		}
	}

	plan, err := r.search(ctx, g, initial, opts)
	if err != nil {
		return nil, err
	}
	res.Plan = plan
	res.SolveTime = time.Since(start)

	// Budget-exceeded plans are inconclusive: a larger budget may still find
	// a path, so they are neither cached nor archived.
	if plan.Status == search.StatusBudgetExceeded {
		opts.Logger.Warn("search budget exhausted", "max_expansions", opts.MaxExpansions)
		return res, nil
	}

	data, err := encodePlan(plan)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, res.PlanKey, data, r.PlanTTL); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}
	r.archive(ctx, res, data, opts)
	return res, nil
}

func (r *Runner) search(ctx context.Context, g *grid.Grid, initial grid.State, opts Options) (*gsio.Plan, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	h, err := search.NewHeuristic(opts.Heuristic, g, initial)
	if err != nil {
		return nil, err
	}
	searchOpts := []search.Option{
		search.WithHeuristic(h),
		search.WithMaxExpansions(opts.MaxExpansions),
	}
	if opts.Progress != nil {
		searchOpts = append(searchOpts, search.WithProgress(opts.ProgressEvery, opts.Progress))
	}

	opts.Logger.Debug("searching", "nodes", g.Len(), "options", opts.String())
	observability.Pipeline().OnSolveStart(ctx, opts.Heuristic, g.Len())
	res, err := search.Solve(ctx, g, initial, searchOpts...)
	if err != nil {
		observability.Pipeline().OnSolveComplete(ctx, opts.Heuristic, "", 0, 0, err)
		if errors.Is(err, context.DeadlineExceeded) && opts.Timeout > 0 {
			return nil, fmt.Errorf("solve: no result within %s: %w", opts.Timeout, err)
		}
		return nil, fmt.Errorf("solve: %w", err)
	}
	observability.Pipeline().OnSolveComplete(ctx, opts.Heuristic, res.Status.String(), res.Expanded, res.Duration, nil)

	plan := gsio.NewPlan(g, initial, res)
	plan.ID = uuid.NewString()
	plan.Heuristic = opts.Heuristic

	opts.Logger.Info("search finished",
		"status", res.Status,
		"length", res.Length,
		"expanded", res.Expanded,
		"duration", res.Duration)
	return plan, nil
}

func (r *Runner) cachedPlan(ctx context.Context, key string) (*gsio.Plan, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "plan")
		return nil, false
	}
	plan, err := gsio.ReadPlan(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "plan")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "plan")
	return plan, true
}

func (r *Runner) archive(ctx context.Context, res *Result, data []byte, opts Options) {
	if r.Archive == nil {
		return
	}
	start := time.Now()
	err := r.Archive.Save(ctx, &archive.Record{
		ID:         res.Plan.ID,
		PuzzleHash: res.PuzzleHash,
		Heuristic:  res.Plan.Heuristic,
		Status:     res.Plan.Status.String(),
		Length:     res.Plan.Length,
		Expanded:   res.Plan.Expanded,
		CreatedAt:  time.Now().UTC(),
		Plan:       data,
	})
	observability.Archive().OnArchiveSave(ctx, time.Since(start), err)
	if err != nil {
		opts.Logger.Warn("archive write failed", "id", res.Plan.ID, "err", err)
	}
}

// Plan fetches an archived plan by ID.
func (r *Runner) Plan(ctx context.Context, id string) (*gsio.Plan, error) {
	if err := gserrors.ValidatePlanID(id); err != nil {
		return nil, err
	}
	if r.Archive == nil {
		return nil, gserrors.New(gserrors.ErrCodeUnsupported, "plan archive is disabled")
	}
	rec, err := r.Archive.Get(ctx, id)
	if errors.Is(err, archive.ErrNotFound) {
		return nil, gserrors.New(gserrors.ErrCodeNotFound, "plan %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return gsio.ReadPlan(bytes.NewReader(rec.Plan))
}

// Close releases the cache and the archive.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Archive != nil {
		errs = append(errs, r.Archive.Close())
	}
	return errors.Join(errs...)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func encodePlan(p *gsio.Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := gsio.WritePlan(&buf, p); err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return buf.Bytes(), nil
}
