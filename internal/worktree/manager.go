// Package worktree manages the lifecycle of per-stage checkouts: creating
// them idempotently, removing them with a dirty-tree guard, and pruning
// stale registrations.
package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planwt/planwt/internal/git"
	"github.com/planwt/planwt/internal/graph"
	"github.com/planwt/planwt/internal/plan"
)

// PlanLinkName is the file installed inside each checkout pointing back at
// the originating plan document.
const PlanLinkName = "PLAN.md"

// Manager creates and removes stage checkouts against a git backend.
type Manager struct {
	git     *git.Context
	linkDir string // directory inside each checkout holding the plan link
}

// NewManager returns a manager using the given backend context. linkDir is
// the directory created inside each checkout for the plan back-reference.
func NewManager(g *git.Context, linkDir string) *Manager {
	return &Manager{git: g, linkDir: linkDir}
}

// Outcome classifies the result of setting up one stage.
type Outcome string

// Setup outcomes
const (
	// OutcomeCreated: new branch and fresh checkout.
	OutcomeCreated Outcome = "created"
	// OutcomeResumed: branch already existed, new checkout attached to it.
	OutcomeResumed Outcome = "resumed"
	// OutcomeAlreadySetUp: checkout already in place, nothing to do.
	OutcomeAlreadySetUp Outcome = "already-set-up"
	// OutcomeFailed: setup did not complete; see Error.
	OutcomeFailed Outcome = "failed"
)

// SetupResult is the per-stage outcome of a setup operation.
type SetupResult struct {
	StageID   string   `json:"stage_id"`
	Branch    string   `json:"branch"`
	Path      string   `json:"path"`
	Outcome   Outcome  `json:"outcome"`
	DependsOn []string `json:"depends_on,omitempty"` // resolved dependency names, advisory
	Error     string   `json:"error,omitempty"`
}

// CollisionError reports a checkout path occupied by something other than
// the stage's own checkout.
type CollisionError struct {
	Path string
	Want string // branch the stage declares
	Got  string // branch actually checked out, empty for an unregistered path
}

func (e *CollisionError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("path %s exists but is not a registered checkout", e.Path)
	}
	return fmt.Sprintf("path %s has branch %q checked out, stage declares %q", e.Path, e.Got, e.Want)
}

// DirtyError reports a checkout with uncommitted changes blocking removal.
type DirtyError struct {
	Path  string
	Files []string
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("worktree %s has %d uncommitted change(s): %s",
		e.Path, len(e.Files), strings.Join(e.Files, ", "))
}

// Setup provisions the checkout for one stage. Parent directories are
// created as needed; an existing branch is resumed rather than recreated;
// re-invoking on an already-configured stage is a no-op reported as
// OutcomeAlreadySetUp, never an error. planPath is the plan document the
// checkout links back to.
func (m *Manager) Setup(p *plan.Plan, st *plan.Stage, planPath string) (*SetupResult, error) {
	path, err := st.ResolvedPath()
	if err != nil {
		return nil, fmt.Errorf("stage %s: resolve worktree path: %w", st.ID, err)
	}

	res := &SetupResult{
		StageID:   st.ID,
		Branch:    st.Branch,
		Path:      path,
		DependsOn: dependencyNames(p, st),
	}

	wt, err := m.git.WorktreeAt(path)
	switch {
	case err == nil:
		if wt.Branch != st.Branch {
			return nil, &CollisionError{Path: path, Want: st.Branch, Got: wt.Branch}
		}
		// Resuming an earlier run; make sure the plan link survives.
		if err := m.linkPlan(path, planPath); err != nil {
			return nil, err
		}
		res.Outcome = OutcomeAlreadySetUp
		return res, nil
	case !errors.Is(err, git.ErrWorktreeNotFound):
		return nil, fmt.Errorf("stage %s: %w", st.ID, err)
	}

	if _, statErr := os.Stat(path); statErr == nil {
		return nil, &CollisionError{Path: path, Want: st.Branch}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("stage %s: create parent directory: %w", st.ID, err)
	}

	branchExists, err := m.git.BranchExists(st.Branch)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", st.ID, err)
	}
	if branchExists {
		if err := m.git.AddWorktree(path, st.Branch); err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.ID, err)
		}
		res.Outcome = OutcomeResumed
	} else {
		if err := m.git.AddWorktreeNewBranch(path, st.Branch, "HEAD"); err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.ID, err)
		}
		res.Outcome = OutcomeCreated
	}

	if err := m.linkPlan(path, planPath); err != nil {
		return nil, err
	}
	return res, nil
}

// SetupAll provisions checkouts for every stage in dependency order.
// Failures on one stage are captured in its result and the remaining
// stages still proceed; the caller gets an aggregate report, not an
// all-or-nothing error.
func (m *Manager) SetupAll(p *plan.Plan, g *graph.Graph, planPath string) []SetupResult {
	order := g.TopologicalOrder()
	results := make([]SetupResult, 0, len(order))

	for _, id := range order {
		st := p.Stage(id)
		res, err := m.Setup(p, st, planPath)
		if err != nil {
			results = append(results, SetupResult{
				StageID: id,
				Branch:  st.Branch,
				Path:    st.WorktreePath,
				Outcome: OutcomeFailed,
				Error:   err.Error(),
			})
			continue
		}
		results = append(results, *res)
	}
	return results
}

// Remove deletes the checkout at path and its registration. Refuses with a
// *DirtyError when uncommitted changes exist, unless force is set.
func (m *Manager) Remove(path string, force bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := m.git.WorktreeAt(absPath); err != nil {
		return fmt.Errorf("remove %s: %w", absPath, err)
	}

	if !force {
		files, err := m.git.DirtyFiles(absPath)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			return &DirtyError{Path: absPath, Files: files}
		}
	}

	return m.git.RemoveWorktree(absPath, force)
}

// Prune drops checkout registrations whose backing directory no longer
// exists and returns the registrations that were pruned.
func (m *Manager) Prune() ([]git.Worktree, error) {
	worktrees, err := m.git.ListWorktrees()
	if err != nil {
		return nil, err
	}

	var stale []git.Worktree
	for _, wt := range worktrees {
		if wt.Path == m.git.RepoPath() {
			continue
		}
		if _, err := os.Stat(wt.Path); os.IsNotExist(err) {
			stale = append(stale, wt)
		}
	}

	if err := m.git.PruneWorktrees(); err != nil {
		return nil, err
	}
	return stale, nil
}

// linkPlan installs a back-reference inside the checkout pointing at the
// plan document, so work done in the checkout can locate its plan. Prefers
// a symlink; falls back to a pointer file on filesystems without symlink
// support. An existing link is left alone.
func (m *Manager) linkPlan(worktreePath, planPath string) error {
	target, err := filepath.Abs(planPath)
	if err != nil {
		return fmt.Errorf("resolve plan path: %w", err)
	}

	dir := filepath.Join(worktreePath, m.linkDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create plan link directory: %w", err)
	}

	link := filepath.Join(dir, PlanLinkName)
	if _, err := os.Lstat(link); err == nil {
		return nil
	}

	if err := os.Symlink(target, link); err != nil {
		if writeErr := os.WriteFile(link, []byte(target+"\n"), 0644); writeErr != nil {
			return fmt.Errorf("install plan link: %w", writeErr)
		}
	}
	return nil
}

// dependencyNames resolves a stage's dependency ids to display names.
func dependencyNames(p *plan.Plan, st *plan.Stage) []string {
	var names []string
	for _, dep := range st.DependsOn {
		if ds := p.Stage(dep); ds != nil {
			names = append(names, ds.Name)
		}
	}
	return names
}
