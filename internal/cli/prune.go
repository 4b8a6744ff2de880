package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/config"
	"github.com/planwt/planwt/internal/report"
	"github.com/planwt/planwt/internal/worktree"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop worktree registrations whose directory no longer exists",
	Long:  `Reconciles the backend's worktree registrations with the filesystem, dropping entries whose backing directory was deleted out from under them (e.g. by an interrupted operation).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		cfg, err := config.Load(repo.RepoPath())
		if err != nil {
			return err
		}

		mgr := worktree.NewManager(repo, cfg.LinkDir)
		pruned, err := mgr.Prune()
		if err != nil {
			return err
		}
		return emit(cmd, &report.PruneReport{Pruned: pruned})
	},
}
