package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
)

var markCmd = &cobra.Command{
	Use:   "mark <plan.md> <stage-id> <status>",
	Short: "Set a stage's status in the plan document",
	Long: `Records an explicit status transition (not-started, in-progress,
complete) in the plan's metadata block, leaving all prose untouched.
Backward transitions are applied but flagged as corrections. Version
control state is never touched; status is never inferred from commits.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		p, text, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		tr, err := plan.SetStageStatus(p, args[1], plan.StageStatus(args[2]))
		if err != nil {
			return err
		}

		if err := plan.Save(planPath, p, text); err != nil {
			return err
		}
		return emit(cmd, &report.MarkReport{PlanID: p.ID, Transition: tr})
	},
}
