package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planwt/planwt/internal/git"
	"github.com/planwt/planwt/internal/plan"
	"github.com/planwt/planwt/internal/worktree"
)

func fixturePlan() *plan.Plan {
	return &plan.Plan{
		ID:      "p1",
		Created: "2026-08-01",
		Author:  "dev",
		Status:  plan.StatusInProgress,
		Stages: []plan.Stage{
			{ID: "stage-1", Name: "Schema", Branch: "feature/schema", WorktreePath: "/wt/schema", Status: plan.StageInProgress},
			{ID: "stage-2", Name: "API", Branch: "feature/api", WorktreePath: "/wt/api", Status: plan.StageComplete, DependsOn: []string{"stage-1"}},
			{ID: "stage-3", Name: "Docs", Branch: "feature/docs", WorktreePath: "/wt/docs", Status: plan.StageNotStarted},
		},
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	r := List(fixturePlan())

	if r.PlanID != "p1" {
		t.Errorf("plan id: got %q", r.PlanID)
	}
	if len(r.Stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(r.Stages))
	}
	// Declaration order is preserved.
	for i, want := range []string{"stage-1", "stage-2", "stage-3"} {
		if r.Stages[i].ID != want {
			t.Errorf("stage %d: got %q, want %q", i, r.Stages[i].ID, want)
		}
	}
	if r.Stages[1].DependsOn[0] != "stage-1" {
		t.Errorf("stage-2 deps: got %v", r.Stages[1].DependsOn)
	}
}

func TestStatusDrift(t *testing.T) {
	t.Parallel()

	t.Run("complete stage without checkout drifts", func(t *testing.T) {
		t.Parallel()
		// Only stage-1 has a live checkout; stage-2 is complete with none.
		live := []git.Worktree{
			{Path: "/wt/schema", Branch: "feature/schema", Commit: "abc"},
		}
		r := Status(fixturePlan(), live)

		if !r.Drift {
			t.Error("report should flag drift")
		}
		var stage2 *StageState
		for i := range r.Stages {
			if r.Stages[i].ID == "stage-2" {
				stage2 = &r.Stages[i]
			}
		}
		if stage2 == nil || !stage2.Drift {
			t.Fatal("stage-2 should drift: complete but no checkout")
		}
		if !strings.Contains(stage2.DriftNote, "no checkout") {
			t.Errorf("drift note: got %q", stage2.DriftNote)
		}
	})

	t.Run("declared path through a symlink matches live checkout", func(t *testing.T) {
		t.Parallel()
		real := t.TempDir()
		alias := filepath.Join(t.TempDir(), "alias")
		if err := os.Symlink(real, alias); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		resolved, err := filepath.EvalSymlinks(real)
		if err != nil {
			t.Fatalf("resolve temp dir: %v", err)
		}

		p := fixturePlan()
		p.Stages = p.Stages[:1]
		p.Stages[0].WorktreePath = filepath.Join(alias, "schema")

		// The backend lists the resolved spelling of the same path.
		live := []git.Worktree{
			{Path: filepath.Join(resolved, "schema"), Branch: "feature/schema", Commit: "abc"},
		}
		r := Status(p, live)

		if !r.Stages[0].Present {
			t.Error("checkout should match through the symlink")
		}
		if r.Stages[0].Drift {
			t.Errorf("unexpected drift: %s", r.Stages[0].DriftNote)
		}
	})

	t.Run("branch mismatch drifts", func(t *testing.T) {
		t.Parallel()
		live := []git.Worktree{
			{Path: "/wt/schema", Branch: "feature/wrong", Commit: "abc"},
			{Path: "/wt/api", Branch: "feature/api", Commit: "def"},
		}
		r := Status(fixturePlan(), live)

		if !r.Stages[0].Drift {
			t.Error("stage-1 should drift: checkout on the wrong branch")
		}
		if r.Stages[1].Drift {
			t.Errorf("stage-2 should not drift: %s", r.Stages[1].DriftNote)
		}
	})

	t.Run("not-started stage with checkout does not drift", func(t *testing.T) {
		t.Parallel()
		// Setup ran but no explicit mark yet; that window is normal.
		live := []git.Worktree{
			{Path: "/wt/schema", Branch: "feature/schema", Commit: "abc"},
			{Path: "/wt/api", Branch: "feature/api", Commit: "def"},
			{Path: "/wt/docs", Branch: "feature/docs", Commit: "ghi"},
		}
		r := Status(fixturePlan(), live)

		if r.Drift {
			t.Error("no stage should drift when all checkouts match")
		}
	})

	t.Run("not-started stage without checkout does not drift", func(t *testing.T) {
		t.Parallel()
		live := []git.Worktree{
			{Path: "/wt/schema", Branch: "feature/schema", Commit: "abc"},
			{Path: "/wt/api", Branch: "feature/api", Commit: "def"},
		}
		r := Status(fixturePlan(), live)

		if r.Stages[2].Drift {
			t.Error("stage-3 is not-started with no checkout; that is not drift")
		}
	})
}

func TestSetupAggregate(t *testing.T) {
	t.Parallel()
	results := []worktree.SetupResult{
		{StageID: "a", Outcome: worktree.OutcomeCreated},
		{StageID: "b", Outcome: worktree.OutcomeFailed, Error: "boom"},
		{StageID: "c", Outcome: worktree.OutcomeAlreadySetUp},
	}
	r := Setup("p1", results)
	if r.Failed != 1 {
		t.Errorf("failed count: got %d, want 1", r.Failed)
	}
}

func TestRenderings(t *testing.T) {
	t.Parallel()

	t.Run("list render includes every stage", func(t *testing.T) {
		t.Parallel()
		out := List(fixturePlan()).Render()
		for _, id := range []string{"stage-1", "stage-2", "stage-3"} {
			if !strings.Contains(out, id) {
				t.Errorf("rendering missing %s:\n%s", id, out)
			}
		}
	})

	t.Run("status render mentions drift", func(t *testing.T) {
		t.Parallel()
		r := Status(fixturePlan(), nil)
		out := r.Render()
		if !strings.Contains(out, "drift") {
			t.Errorf("rendering should mention drift:\n%s", out)
		}
	})

	t.Run("mark render flags backward transitions", func(t *testing.T) {
		t.Parallel()
		r := &MarkReport{PlanID: "p1", Transition: &plan.Transition{
			StageID: "a", From: plan.StageComplete, To: plan.StageInProgress, Backward: true,
		}}
		if !strings.Contains(r.Render(), "backward") {
			t.Error("backward transition not surfaced in rendering")
		}
	})
}
