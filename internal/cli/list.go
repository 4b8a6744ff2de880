package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list <plan.md>",
	Short: "List the stages of a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		return emit(cmd, report.List(p))
	},
}
