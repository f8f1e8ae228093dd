// Package pipeline runs the solve → render pipeline with caching.
//
// The CLI and the HTTP server share this package so both derive the same
// cache keys, apply the same defaults, and archive plans the same way.
//
// # Stages
//
//  1. Solve: look the puzzle up in the cache, otherwise run A* and store the
//     plan. Plans whose search ran out of budget are inconclusive and never
//     cached.
//  2. Render: turn a plan into text maps, DOT, SVG, PNG or PDF, again through
//     the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, store, logger)
//	res, err := runner.Solve(ctx, g, initial, pipeline.Options{
//	    Heuristic:     "move-cost",
//	    MaxExpansions: 1_000_000,
//	})
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, res, pipeline.Options{Formats: []string{"svg"}})
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridshift/pkg/cache"
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultHeuristic is the heuristic used when none is named.
	DefaultHeuristic = search.HeuristicMoveCost

	// DefaultMaxExpansions bounds a search when no budget is given. Roughly a
	// few GB of memory on a 1000-node grid.
	DefaultMaxExpansions = 5_000_000

	// DefaultProgressEvery is how many expansions pass between progress
	// callbacks.
	DefaultProgressEvery = 10_000
)

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats lists the supported render formats.
var ValidFormats = []string{FormatText, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Solve options
	Heuristic     string        `json:"heuristic,omitempty"`
	MaxExpansions int           `json:"max_expansions,omitempty"`
	Timeout       time.Duration `json:"-"` // zero means none
	Refresh       bool          `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	MaxMoves int      `json:"max_moves,omitempty"`

	// Runtime options (not serialized)
	Logger        *log.Logger           `json:"-"`
	Progress      func(search.Progress) `json:"-"`
	ProgressEvery int                   `json:"-"`

	validated bool
}

// Result is the outcome of the solve stage.
type Result struct {
	Grid    *grid.Grid
	Initial grid.State
	Plan    *gsio.Plan

	// PuzzleHash is the SHA-256 of the canonical puzzle JSON.
	PuzzleHash string
	// PlanKey is the cache key of the plan; render artifacts derive from it.
	PlanKey string
	// CacheHit reports whether the plan came from the cache.
	CacheHit bool
	// SolveTime is the wall time of the stage, cache lookup included.
	SolveTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return gserrors.New(gserrors.ErrCodeInvalidInput, "invalid format %q (must be one of %v)", format, ValidFormats)
	}
	return nil
}

// ValidateHeuristic checks that a heuristic name is known.
func ValidateHeuristic(name string) error {
	if !slices.Contains(search.HeuristicNames, name) {
		return gserrors.New(gserrors.ErrCodeInvalidInput, "invalid heuristic %q (must be one of %v)", name, search.HeuristicNames)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Heuristic == "" {
		o.Heuristic = DefaultHeuristic
	}
	if err := ValidateHeuristic(o.Heuristic); err != nil {
		return err
	}
	if o.MaxExpansions < 0 {
		return gserrors.New(gserrors.ErrCodeInvalidInput, "max_expansions must not be negative")
	}
	if o.MaxExpansions == 0 {
		o.MaxExpansions = DefaultMaxExpansions
	}
	if o.Timeout < 0 {
		return gserrors.New(gserrors.ErrCodeInvalidInput, "timeout must not be negative")
	}
	if o.MaxMoves < 0 {
		return gserrors.New(gserrors.ErrCodeInvalidInput, "max_moves must not be negative")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PlanKeyOpts returns the cache key options for the solve stage.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{Heuristic: o.Heuristic}
}

// ArtifactKeyOpts returns the cache key options for one render format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
		MaxMoves: o.MaxMoves,
	}
}

func (o *Options) String() string {
	return fmt.Sprintf("heuristic=%s max_expansions=%d timeout=%s", o.Heuristic, o.MaxExpansions, o.Timeout)
}
