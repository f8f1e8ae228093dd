package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	gsio "github.com/matzehuels/gridshift/pkg/io"
)

// plansCommand creates the plans command for browsing the plan archive.
func (c *CLI) plansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse archived plans",
		Long: `Browse archived plans.

Plans are archived when archive.backend is set to sqlite or mongo in the
config file.`,
	}

	cmd.AddCommand(c.plansListCommand())
	cmd.AddCommand(c.plansShowCommand())

	return cmd
}

func (c *CLI) plansListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newArchive(ctx)
			if err != nil {
				return err
			}
			if store == nil {
				return errNoArchive()
			}
			defer store.Close()

			records, err := store.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("list plans: %w", err)
			}
			if len(records) == 0 {
				printInfo("No archived plans")
				return nil
			}
			for _, r := range records {
				fmt.Printf("%s  %s  %-15s %s  %s\n",
					StyleValue.Render(r.ID),
					StyleDim.Render(r.CreatedAt.Local().Format("2006-01-02 15:04")),
					r.Status,
					StyleNumber.Render(fmt.Sprintf("%4d moves", r.Length)),
					StyleDim.Render(r.Heuristic))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of plans to list (0 lists all)")

	return cmd
}

func (c *CLI) plansShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			if runner.Archive == nil {
				return errNoArchive()
			}

			plan, err := runner.Plan(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return gsio.WritePlan(os.Stdout, plan)
			}

			printKeyValue("ID", plan.ID)
			printKeyValue("Status", plan.Status.String())
			printKeyValue("Heuristic", plan.Heuristic)
			printKeyValue("Length", pluralMoves(plan.Length))
			printKeyValue("Expanded", fmt.Sprintf("%d states", plan.Expanded))
			if len(plan.Moves) > 0 {
				printNewline()
				printMoves(plan, 0)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}

func errNoArchive() error {
	return gserrors.New(gserrors.ErrCodeUnsupported, "no plan archive configured (set archive.backend to sqlite or mongo)")
}
