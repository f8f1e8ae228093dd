package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags    solveFlags
		output   string
		maxMoves int
		showMap  bool
	)

	cmd := &cobra.Command{
		Use:   "solve [report]",
		Short: "Find the shortest plan that brings the payload to the target",
		Long: `Find the shortest plan that brings the payload to the target.

The input is a df-style usage report (one /dev/grid/node-xX-yY line per node)
or a puzzle JSON file (*.json). Use - to read a report from stdin.

Plans are cached, so solving the same grid again is instant. Searches that hit
--max-expansions or --timeout are not cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.cfg.Solver)
			if err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], flags, opts, output, maxMoves, showMap)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan as JSON to this file (- for stdout)")
	cmd.Flags().IntVar(&maxMoves, "max-moves", 20, "print at most this many moves (0 prints all)")
	cmd.Flags().BoolVar(&showMap, "map", true, "print the initial grid map")

	return cmd
}

// runSolve loads, solves and reports one puzzle.
func (c *CLI) runSolve(ctx context.Context, input string, flags solveFlags, opts pipeline.Options, output string, maxMoves int, showMap bool) error {
	g, initial, err := loadPuzzle(ctx, input, flags.target)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.solve(ctx, runner, g, initial, opts)
	if err != nil {
		return err
	}

	if output != "" {
		if err := writePlan(res.Plan, output); err != nil {
			return err
		}
		if output == "-" {
			return nil
		}
	}

	if showMap {
		printMap(g, initial)
		printNewline()
	}
	printPlanResult(res.Plan, res.CacheHit)
	if len(res.Plan.Moves) > 0 {
		printNewline()
		printMoves(res.Plan, maxMoves)
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// solve runs the solve stage with a spinner and search progress logging.
func (c *CLI) solve(ctx context.Context, runner *pipeline.Runner, g *grid.Grid, initial grid.State, opts pipeline.Options) (*pipeline.Result, error) {
	reporter := newSearchReporter(ctx)
	opts.Logger = c.Logger
	opts.Progress = reporter.onProgress

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %d-node grid...", g.Len()))
	spinner.Start()
	res, err := runner.Solve(ctx, g, initial, opts)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	if res.CacheHit {
		c.Logger.Debugf("Plan %s loaded from cache", res.Plan.ID)
	} else {
		reporter.done(res.Plan.Status, res.Plan.Length, res.Plan.Expanded)
	}
	return res, nil
}

func writePlan(plan *gsio.Plan, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if err := gsio.WritePlan(out, plan); err != nil {
		out.Close()
		return fmt.Errorf("write plan: %w", err)
	}
	return out.Close()
}
