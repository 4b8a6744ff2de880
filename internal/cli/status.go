package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status <plan.md>",
	Short: "Cross-reference declared stage status against live worktrees",
	Long:  `Reads the backend's live worktree registrations and flags drift: stages whose declared status implies a checkout that is missing, or whose checkout is on an unexpected branch.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}
		live, err := repo.ListWorktrees()
		if err != nil {
			return err
		}

		return emit(cmd, report.Status(p, live))
	},
}
