// Package report produces the machine-parseable reports and their
// human-readable renderings for every command.
package report

import (
	"fmt"

	"github.com/planwt/planwt/internal/git"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/util"
	"github.com/planwt/planwt/internal/worktree"
)

// StageSummary is one row of a list report.
type StageSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Branch    string   `json:"branch"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// ListReport summarizes a plan's stages in declaration order.
type ListReport struct {
	PlanID     string         `json:"plan_id"`
	PlanStatus string         `json:"plan_status"`
	Stages     []StageSummary `json:"stages"`
}

// List builds the stage listing for a plan.
func List(p *plan.Plan) *ListReport {
	r := &ListReport{
		PlanID:     p.ID,
		PlanStatus: string(p.Status),
		Stages:     make([]StageSummary, 0, len(p.Stages)),
	}
	for i := range p.Stages {
		st := &p.Stages[i]
		r.Stages = append(r.Stages, StageSummary{
			ID:        st.ID,
			Name:      st.Name,
			Status:    string(st.Status),
			Branch:    st.Branch,
			DependsOn: st.DependsOn,
		})
	}
	return r
}

// ValidateReport is the result of a successful graph validation.
type ValidateReport struct {
	PlanID     string   `json:"plan_id"`
	StageCount int      `json:"stage_count"`
	SetupOrder []string `json:"setup_order"` // dependency-respecting stage order
}

// StageState is one row of a status report, cross-referencing declared
// stage state against the live backend.
type StageState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Branch     string `json:"branch"`
	Path       string `json:"path"`
	Present    bool   `json:"worktree_present"`
	LiveBranch string `json:"live_branch,omitempty"`
	LiveCommit string `json:"live_commit,omitempty"`
	Drift      bool   `json:"drift"`
	DriftNote  string `json:"drift_note,omitempty"`
}

// StatusReport cross-references declared stage status against live
// checkout registrations.
type StatusReport struct {
	PlanID     string       `json:"plan_id"`
	PlanStatus string       `json:"plan_status"`
	Stages     []StageState `json:"stages"`
	Drift      bool         `json:"drift"` // true if any stage drifted
}

// Status builds the drift report for a plan given the backend's live
// worktree listing. A stage drifts when its declared status implies a
// checkout that is missing, or when the checkout at its path is on a
// different branch than declared. A not-started stage with a checkout is
// not drift: setup never advances status, so that state is the normal
// window between setup and the first explicit mark.
func Status(p *plan.Plan, live []git.Worktree) *StatusReport {
	r := &StatusReport{
		PlanID:     p.ID,
		PlanStatus: string(p.Status),
		Stages:     make([]StageState, 0, len(p.Stages)),
	}

	for i := range p.Stages {
		st := &p.Stages[i]
		state := StageState{
			ID:     st.ID,
			Name:   st.Name,
			Status: string(st.Status),
			Branch: st.Branch,
		}

		path, err := st.ResolvedPath()
		if err != nil {
			path = st.WorktreePath
		}
		state.Path = path

		for j := range live {
			livePath := live[j].Path
			if c, err := util.CanonicalPath(livePath); err == nil {
				livePath = c
			}
			if livePath == path {
				state.Present = true
				state.LiveBranch = live[j].Branch
				state.LiveCommit = live[j].Commit
				break
			}
		}

		switch {
		case state.Present && state.LiveBranch != st.Branch:
			state.Drift = true
			state.DriftNote = fmt.Sprintf("checkout is on branch %q, stage declares %q", state.LiveBranch, st.Branch)
		case !state.Present && st.Status != plan.StageNotStarted:
			state.Drift = true
			state.DriftNote = fmt.Sprintf("stage is %s but no checkout exists at %s", st.Status, path)
		}

		if state.Drift {
			r.Drift = true
		}
		r.Stages = append(r.Stages, state)
	}
	return r
}

// SetupReport aggregates per-stage setup outcomes.
type SetupReport struct {
	PlanID  string                 `json:"plan_id"`
	Results []worktree.SetupResult `json:"results"`
	Failed  int                    `json:"failed"`
}

// Setup builds the aggregate report for one or more setup results.
func Setup(planID string, results []worktree.SetupResult) *SetupReport {
	r := &SetupReport{PlanID: planID, Results: results}
	for i := range results {
		if results[i].Outcome == worktree.OutcomeFailed {
			r.Failed++
		}
	}
	return r
}

// MarkReport records an explicit stage status transition.
type MarkReport struct {
	PlanID     string           `json:"plan_id"`
	Transition *plan.Transition `json:"transition"`
}

// RemoveReport records a checkout removal.
type RemoveReport struct {
	Path   string `json:"path"`
	Forced bool   `json:"forced"`
}

// PruneReport records which stale registrations were dropped.
type PruneReport struct {
	Pruned []git.Worktree `json:"pruned"`
}

// CreateReport records a scaffolded plan document.
type CreateReport struct {
	PlanID string `json:"plan_id"`
	Path   string `json:"path"`
}
