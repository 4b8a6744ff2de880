// Package plan defines the plan document model and the embedded metadata
// block that carries it. A plan describes a multi-stage change; each stage
// maps to a branch and an isolated worktree checkout.
package plan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/planwt/planwt/internal/util"
)

// Plan is the machine-readable description of a multi-stage change,
// embedded in a plan document as a fenced metadata block.
type Plan struct {
	ID      string  `json:"plan_id"`
	Created string  `json:"created"`
	Author  string  `json:"author"`
	Status  Status  `json:"status"`
	Stages  []Stage `json:"stages"`
}

// Stage is one independently workable unit of a plan, mapped to a branch
// and a worktree checkout path.
type Stage struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Branch       string      `json:"branch"`
	WorktreePath string      `json:"worktree_path"`
	Status       StageStatus `json:"status"`
	DependsOn    []string    `json:"depends_on,omitempty"`
}

// Status is the overall plan status.
type Status string

// Plan status values
const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is a known plan status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// StageStatus is the per-stage completion status.
type StageStatus string

// Stage status values
const (
	StageNotStarted StageStatus = "not-started"
	StageInProgress StageStatus = "in-progress"
	StageComplete   StageStatus = "complete"
)

// Valid reports whether s is a known stage status.
func (s StageStatus) Valid() bool {
	switch s {
	case StageNotStarted, StageInProgress, StageComplete:
		return true
	}
	return false
}

// rank orders stage statuses along the normal forward progression.
func (s StageStatus) rank() int {
	switch s {
	case StageNotStarted:
		return 0
	case StageInProgress:
		return 1
	case StageComplete:
		return 2
	}
	return -1
}

// Stage returns the stage with the given id, or nil if no such stage exists.
func (p *Plan) Stage(id string) *Stage {
	for i := range p.Stages {
		if p.Stages[i].ID == id {
			return &p.Stages[i]
		}
	}
	return nil
}

// ResolvedPath returns the stage's worktree path with a leading ~ expanded
// to the user's home directory and the result made absolute with symlinks
// resolved. The backend reports symlink-resolved paths, so resolving here
// keeps declared paths comparable to live ones.
func (s *Stage) ResolvedPath() (string, error) {
	path := s.WorktreePath
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return util.CanonicalPath(path)
}
