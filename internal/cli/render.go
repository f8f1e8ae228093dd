package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridshift/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      solveFlags
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [report]",
		Short: "Solve a grid and render the plan",
		Long: `Solve a grid and render the plan.

Formats:
  txt  the initial map and one line per move
  dot  Graphviz source with the grid as a lattice and numbered move arrows
  svg  rendered in-process with Graphviz
  png  rendered in-process with Graphviz
  pdf  converted from SVG (requires rsvg-convert from librsvg)

With one format, --output names the file. With several, --output is the base
path and each format gets its own extension. Without --output, files are
named after the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			solveOpts, err := flags.options(c.cfg.Solver)
			if err != nil {
				return err
			}
			solveOpts.Formats = parseFormats(formatsStr)
			solveOpts.Detailed = opts.Detailed
			solveOpts.MaxMoves = opts.MaxMoves
			for _, f := range solveOpts.Formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], flags, solveOpts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), txt, dot, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with coordinates and usage")
	cmd.Flags().IntVar(&opts.MaxMoves, "max-moves", 0, "draw at most this many moves (0 draws all)")

	return cmd
}

// runRender solves the puzzle and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, flags solveFlags, opts pipeline.Options, output string) error {
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
	printPlanResult(res.Plan, res.CacheHit)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	if cacheHit {
		c.Logger.Debug("artifacts loaded from cache")
	}

	return writeArtifacts(artifacts, opts.Formats, input, output)
}

// writeArtifacts writes each rendered format to its own file.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if input == "-" {
		input = appName
	}
	base := basePath(output, input)
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
