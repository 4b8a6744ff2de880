package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/config"
	"github.com/planwt/planwt/internal/graph"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
	"github.com/planwt/planwt/internal/worktree"
)

var setupCmd = &cobra.Command{
	Use:   "setup <plan.md> [stage-id]",
	Short: "Create worktrees for a stage, or all stages in dependency order",
	Long: `Creates the branch and isolated worktree for the named stage. Without a
stage id, sets up every stage in dependency order; a failure on one stage
does not stop the remaining stages, and the report carries the per-stage
outcomes. Re-running setup on a configured stage is a no-op.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		p, _, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		// Graph validation happens before any worktree mutation.
		g, err := graph.Build(p)
		if err != nil {
			return err
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}
		cfg, err := config.Load(repo.RepoPath())
		if err != nil {
			return err
		}
		mgr := worktree.NewManager(repo, cfg.LinkDir)

		if len(args) == 2 {
			stageID := args[1]
			st := p.Stage(stageID)
			if st == nil {
				return fmt.Errorf("%w: %q", plan.ErrStageNotFound, stageID)
			}
			res, err := mgr.Setup(p, st, planPath)
			if err != nil {
				return err
			}
			return emit(cmd, report.Setup(p.ID, []worktree.SetupResult{*res}))
		}

		results := mgr.SetupAll(p, g, planPath)
		r := report.Setup(p.ID, results)
		if err := emit(cmd, r); err != nil {
			return err
		}
		if r.Failed > 0 {
			return fmt.Errorf("setup failed for %d of %d stage(s)", r.Failed, len(results))
		}
		return nil
	},
}
