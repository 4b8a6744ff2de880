package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/config"
	"github.com/planwt/planwt/internal/report"
	"github.com/planwt/planwt/internal/worktree"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Discard uncommitted changes and remove anyway")
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a stage worktree",
	Long:  `Removes the checkout at the given path and its registration. Refuses when uncommitted changes exist unless --force is given.`,
	Args:  cobra.ExactArgs(1),
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
		if err := mgr.Remove(args[0], removeForce); err != nil {
			return err
		}
		return emit(cmd, &report.RemoveReport{Path: args[0], Forced: removeForce})
	},
}
