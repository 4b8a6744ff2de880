package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/graph"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan.md>",
	Short: "Validate a plan's metadata and dependency graph",
	Long:  `Checks the metadata block against the plan schema, then validates the stage dependency graph: unique ids, resolvable dependencies, no cycles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		g, err := graph.Build(p)
		if err != nil {
			return err
		}

		return emit(cmd, &report.ValidateReport{
			PlanID:     p.ID,
			StageCount: len(p.Stages),
			SetupOrder: g.TopologicalOrder(),
		})
	},
}
