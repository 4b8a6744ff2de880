package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/config"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
	"github.com/planwt/planwt/internal/util"
)

var createAuthor string

func init() {
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Author recorded in the plan metadata")
}

var createCmd = &cobra.Command{
	Use:   "create <plan.md>",
	Short: "Scaffold a new plan document",
	Long:  `Writes a new plan document containing a well-formed metadata block with a generated plan id and one template stage. Edit the prose and stages by hand afterwards.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]
		if _, err := os.Stat(planPath); err == nil {
			return fmt.Errorf("refusing to overwrite existing file %s", planPath)
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}
		cfg, err := config.Load(repo.RepoPath())
		if err != nil {
			return err
		}

		id, err := util.NewPlanID()
		if err != nil {
			return fmt.Errorf("generate plan id: %w", err)
		}

		name := util.Kebab(strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath)))
		if name == "" {
			name = "plan"
		}

		worktreeRoot := cfg.WorktreeRoot
		if worktreeRoot == "" {
			worktreeRoot = filepath.Join("..", filepath.Base(repo.RepoPath())+"-worktrees")
		}

		p := &plan.Plan{
			ID:      id,
			Created: time.Now().Format("2006-01-02"),
			Author:  resolveAuthor(cfg),
			Status:  plan.StatusDraft,
			Stages: []plan.Stage{{
				ID:           "stage-1",
				Name:         "Stage 1",
				Branch:       name + "/stage-1",
				WorktreePath: filepath.Join(worktreeRoot, name+"-stage-1"),
				Status:       plan.StageNotStarted,
			}},
		}

		body, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal plan metadata: %w", err)
		}

		doc := fmt.Sprintf("# %s\n\n```json metadata\n%s\n```\n\n## Overview\n\nDescribe the change here.\n\n## Stages\n\nDescribe each stage here.\n", name, body)
		if err := os.WriteFile(planPath, []byte(doc), 0644); err != nil {
			return fmt.Errorf("write plan document: %w", err)
		}

		return emit(cmd, &report.CreateReport{PlanID: id, Path: planPath})
	},
}

// resolveAuthor picks the author for a new plan: flag, config, then the
// current OS user.
func resolveAuthor(cfg *config.Config) string {
	if createAuthor != "" {
		return createAuthor
	}
	if cfg.Author != "" {
		return cfg.Author
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
