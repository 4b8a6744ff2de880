package git

import (
	"fmt"
	"strings"

	"github.com/planwt/planwt/internal/util"
)

// Worktree is a live checkout registration read from the backend. It is
// derived state, never persisted by this tool, and exists to detect drift
// from declared stage descriptors.
type Worktree struct {
	Path   string // filesystem path of the checkout
	Branch string // branch checked out, or "(detached)"
	Commit string // HEAD commit SHA
}

// AddWorktree attaches a new checkout at path to an existing branch.
func (g *Context) AddWorktree(path, branch string) error {
	if _, err := g.runGit("worktree", "add", path, branch); err != nil {
		return &Error{Op: "add worktree", Err: err}
	}
	return nil
}

// AddWorktreeNewBranch creates branch from ref and attaches a fresh
// checkout at path.
func (g *Context) AddWorktreeNewBranch(path, branch, ref string) error {
	if _, err := g.runGit("worktree", "add", "-b", branch, path, ref); err != nil {
		return &Error{Op: "add worktree", Err: err}
	}
	return nil
}

// RemoveWorktree removes the checkout at path and its registration. With
// force, uncommitted changes are discarded.
func (g *Context) RemoveWorktree(path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "remove worktree", Err: err}
	}
	return nil
}

// ListWorktrees returns all checkout registrations, including the main
// working tree as the first entry.
func (g *Context) ListWorktrees() ([]Worktree, error) {
	output, err := g.runGit("worktree", "list", "--porcelain")
	if err != nil {
		return nil, &Error{Op: "list worktrees", Err: err}
	}

	var worktrees []Worktree
	var current Worktree

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if current.Path != "" {
				worktrees = append(worktrees, current)
				current = Worktree{}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Commit = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			current.Branch = "(detached)"
		}
	}
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees, nil
}

// WorktreeAt returns the checkout registered at path. Both sides are
// canonicalized before comparing, since git reports symlink-resolved paths
// while callers may hold an aliased spelling. Returns ErrWorktreeNotFound
// when nothing is registered there.
func (g *Context) WorktreeAt(path string) (*Worktree, error) {
	worktrees, err := g.ListWorktrees()
	if err != nil {
		return nil, err
	}

	canonical, err := util.CanonicalPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	for i := range worktrees {
		wtPath, err := util.CanonicalPath(worktrees[i].Path)
		if err != nil {
			continue
		}
		if wtPath == canonical {
			return &worktrees[i], nil
		}
	}
	return nil, ErrWorktreeNotFound
}

// PruneWorktrees removes registrations whose backing directory is gone.
func (g *Context) PruneWorktrees() error {
	if _, err := g.runGit("worktree", "prune"); err != nil {
		return &Error{Op: "prune worktrees", Err: err}
	}
	return nil
}
