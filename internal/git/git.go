// Package git is the version-control backend: a repository context handle
// exposing the branch and worktree primitives the orchestrator needs. All
// operations shell out to the git CLI and rely on git's own locking to
// serialize concurrent mutation.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Context manages git operations for one repository. Separate repositories
// (and tests) use independent contexts; there is no ambient global state.
type Context struct {
	repoPath string
	runner   CommandRunner
}

// Option configures a Context.
type Option func(*Context)

// WithRunner sets a custom command runner. Primarily used by tests to
// inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext creates a git context rooted at repoPath, validating that the
// path is inside a git repository.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		runner:   NewExecRunner(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if _, err := g.runGit("rev-parse", "--git-dir"); err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, absPath)
	}
	return g, nil
}

// RepoPath returns the absolute path the context is rooted at.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// CurrentBranch returns the branch name at HEAD, or "HEAD" when detached.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit() (string, error) {
	sha, err := g.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "get HEAD commit", Err: err}
	}
	return sha, nil
}

// BranchExists checks whether a local branch exists. A missing branch is
// (false, nil); backend failures are returned as errors so callers never
// mistake an unreachable backend for a missing branch.
func (g *Context) BranchExists(name string) (bool, error) {
	_, err := g.runGit("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, &Error{Op: "check branch", Err: err}
}

// IsClean reports whether the working tree at dir has no uncommitted
// changes, counting staged, unstaged, and untracked files.
func (g *Context) IsClean(dir string) (bool, error) {
	files, err := g.DirtyFiles(dir)
	if err != nil {
		return false, err
	}
	return len(files) == 0, nil
}

// DirtyFiles returns the files with uncommitted changes in dir.
func (g *Context) DirtyFiles(dir string) ([]string, error) {
	output, err := g.runner.Run(dir, "git", "status", "--porcelain")
	if err != nil {
		return nil, &Error{Op: "status", Err: err}
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Porcelain format: two status chars, a space, then the path.
		if len(line) > 3 {
			files = append(files, line[3:])
		} else {
			files = append(files, strings.TrimSpace(line))
		}
	}
	return files, nil
}

// runGit executes a git command in the repository root.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.repoPath, "git", args...)
}
