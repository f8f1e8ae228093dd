package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// viableCommand creates the viable command.
func (c *CLI) viableCommand() *cobra.Command {
	var (
		target  string
		showMap bool
	)

	cmd := &cobra.Command{
		Use:   "viable [report]",
		Short: "Count viable pairs in a grid",
		Long: `Count viable pairs in a grid.

A pair (A, B) of distinct nodes is viable when A holds data and all of it fits
into the free space of B. Adjacency does not matter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, s, err := loadPuzzle(cmd.Context(), args[0], target)
			if err != nil {
				return err
			}

			holes := g.Holes(s)
			regime := "multiple holes"
			if holes.Single() {
				regime = "single hole"
			}

			if showMap {
				printMap(g, s)
				printNewline()
			}
			printKeyValue("Nodes", fmt.Sprintf("%d (%dx%d)", g.Len(), g.Width(), g.Height()))
			printKeyValue("Viable pairs", StyleNumber.Render(strconv.Itoa(grid.ViablePairCount(g, s))))
			printKeyValue("Regime", regime)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target node as x,y (default 0,0)")
	cmd.Flags().BoolVar(&showMap, "map", false, "print the grid map")

	return cmd
}
