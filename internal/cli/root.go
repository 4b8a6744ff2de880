// Package cli wires the command surface: list, validate, setup, status,
// mark, remove, prune, and create. Every command emits a structured report
// (JSON with --json) plus a human-readable rendering, and failures always
// produce a distinguished error report.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwt/planwt/internal/git"
	"github.com/planwt/planwt/internal/graph"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/report"
	"github.com/planwt/planwt/internal/worktree"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "planwt",
	Short:         "Plan-stage worktree orchestrator",
	Long:          `Planwt parses stage metadata embedded in plan documents and manages one isolated git worktree per stage, keeping the declared plan state consistent with the repository.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit the structured report as JSON")
	rootCmd.AddCommand(listCmd, validateCmd, setupCmd, statusCmd, markCmd, removeCmd, pruneCmd, createCmd)
}

// Execute runs the root command, rendering any failure as an error report.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		emitError(err)
	}
	return err
}

// renderable is implemented by every report type.
type renderable interface {
	Render() string
}

// emit writes the report to stdout, as JSON when --json is set.
func emit(cmd *cobra.Command, r renderable) error {
	if jsonOutput {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), r.Render())
	return nil
}

// errorReport is the structured form of a failed command.
type errorReport struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func emitError(err error) {
	if jsonOutput {
		data, _ := json.MarshalIndent(errorReport{Error: err.Error(), Kind: errorKind(err)}, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	fmt.Fprint(os.Stderr, report.RenderError(err))
}

// errorKind maps failures onto the stable error taxonomy exposed to the
// enclosing tooling layer.
func errorKind(err error) string {
	var (
		schemaErr    *plan.SchemaError
		conflictErr  *plan.ConflictError
		dupErr       *graph.DuplicateStageError
		dupPathErr   *graph.DuplicatePathError
		unknownErr   *graph.UnknownDependencyError
		cycleErr     *graph.CycleError
		dirtyErr     *worktree.DirtyError
		collisionErr *worktree.CollisionError
	)
	switch {
	case errors.Is(err, plan.ErrMalformedMetadata):
		return "malformed-metadata"
	case errors.As(err, &schemaErr):
		return "schema-violation"
	case errors.As(err, &conflictErr):
		return "serialization-conflict"
	case errors.As(err, &dupErr):
		return "duplicate-stage"
	case errors.As(err, &dupPathErr):
		return "duplicate-worktree-path"
	case errors.As(err, &unknownErr):
		return "unknown-dependency"
	case errors.As(err, &cycleErr):
		return "cycle-detected"
	case errors.As(err, &dirtyErr):
		return "dirty-worktree"
	case errors.As(err, &collisionErr):
		return "worktree-collision"
	case errors.Is(err, plan.ErrStageNotFound):
		return "stage-not-found"
	case errors.Is(err, git.ErrNotGitRepo):
		return "not-a-repository"
	case errors.Is(err, git.ErrBackendUnavailable):
		return "backend-unavailable"
	}
	return "error"
}

// openRepo creates the repository context for the current directory.
func openRepo() (*git.Context, error) {
	return git.NewContext(".")
}
