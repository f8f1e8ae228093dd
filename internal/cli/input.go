package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/parse"
)

// loadPuzzle reads the grid and initial state from path. Files ending in
// .json are puzzle JSON, anything else is a df report; "-" reads a report from
// stdin. A non-empty target ("x,y") overrides the target in the input.
func loadPuzzle(ctx context.Context, path, target string) (*grid.Grid, grid.State, error) {
	logger := loggerFromContext(ctx)

	var tx, ty int
	if target != "" {
		var err error
		if tx, ty, err = parseTarget(target); err != nil {
			return nil, grid.State{}, err
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		p, err := gsio.ImportPuzzle(path)
		if err != nil {
			return nil, grid.State{}, err
		}
		if target != "" {
			p.Target = &gsio.Coord{X: tx, Y: ty}
		}
		g, s, err := p.Build()
		if err != nil {
			return nil, grid.State{}, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debugf("Loaded puzzle: %d nodes, %dx%d", g.Len(), g.Width(), g.Height())
		return g, s, nil
	}

	var (
		rep *parse.Report
		err error
	)
	if path == "-" {
		rep, err = parse.Read(os.Stdin)
	} else {
		rep, err = parse.ReadFile(path)
	}
	if err != nil {
		return nil, grid.State{}, err
	}
	if len(rep.Skipped) > 0 {
		logger.Debugf("Skipped %d non-node lines: %v", len(rep.Skipped), rep.Skipped)
	}

	var opts []grid.Option
	if target != "" {
		opts = append(opts, grid.WithTarget(tx, ty))
	}
	g, s, err := rep.Puzzle(opts...)
	if err != nil {
		return nil, grid.State{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debugf("Loaded report: %d nodes, %dx%d", g.Len(), g.Width(), g.Height())
	return g, s, nil
}

// parseDuration parses a flag value such as "90s" or "5m".
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, gserrors.New(gserrors.ErrCodeInvalidInput, "invalid duration %q", s)
	}
	return d, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
