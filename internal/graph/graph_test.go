package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/planwt/planwt/internal/plan"
)

// mkPlan builds a plan from (id, deps...) tuples in declaration order.
func mkPlan(stages ...[]string) *plan.Plan {
	p := &plan.Plan{ID: "p", Created: "2026-08-01", Author: "dev", Status: plan.StatusDraft}
	for _, s := range stages {
		p.Stages = append(p.Stages, plan.Stage{
			ID:           s[0],
			Name:         s[0],
			Branch:       "b/" + s[0],
			WorktreePath: "/tmp/" + s[0],
			Status:       plan.StageNotStarted,
			DependsOn:    s[1:],
		})
	}
	return p
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("valid graph", func(t *testing.T) {
		t.Parallel()
		g, err := Build(mkPlan([]string{"a"}, []string{"b", "a"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := g.Dependencies("b"); len(got) != 1 || got[0] != "a" {
			t.Errorf("dependencies of b: got %v", got)
		}
	})

	t.Run("duplicate stage id", func(t *testing.T) {
		t.Parallel()
		_, err := Build(mkPlan([]string{"a"}, []string{"a"}))
		var dupErr *DuplicateStageError
		if !errors.As(err, &dupErr) {
			t.Fatalf("got %v, want DuplicateStageError", err)
		}
		if dupErr.ID != "a" {
			t.Errorf("duplicate id: got %q", dupErr.ID)
		}
	})

	t.Run("duplicate worktree path", func(t *testing.T) {
		t.Parallel()
		p := mkPlan([]string{"a"}, []string{"b"})
		p.Stages[1].WorktreePath = p.Stages[0].WorktreePath

		_, err := Build(p)
		var pathErr *DuplicatePathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("got %v, want DuplicatePathError", err)
		}
		if pathErr.Stages != [2]string{"a", "b"} {
			t.Errorf("claiming stages: got %v", pathErr.Stages)
		}
	})

	t.Run("aliased worktree paths collide", func(t *testing.T) {
		t.Parallel()
		real := t.TempDir()
		alias := filepath.Join(t.TempDir(), "alias")
		if err := os.Symlink(real, alias); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		p := mkPlan([]string{"a"}, []string{"b"})
		p.Stages[0].WorktreePath = filepath.Join(real, "wt")
		p.Stages[1].WorktreePath = filepath.Join(alias, "wt")

		_, err := Build(p)
		var pathErr *DuplicatePathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("got %v, want DuplicatePathError", err)
		}
	})

	t.Run("unknown dependency", func(t *testing.T) {
		t.Parallel()
		_, err := Build(mkPlan([]string{"a", "ghost"}))
		var unknownErr *UnknownDependencyError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("got %v, want UnknownDependencyError", err)
		}
		if unknownErr.StageID != "a" || unknownErr.Ref != "ghost" {
			t.Errorf("got stage %q ref %q", unknownErr.StageID, unknownErr.Ref)
		}
	})

	t.Run("two-stage cycle names both stages", func(t *testing.T) {
		t.Parallel()
		_, err := Build(mkPlan([]string{"x", "y"}, []string{"y", "x"}))
		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("got %v, want CycleError", err)
		}
		if len(cycleErr.Path) != 2 {
			t.Fatalf("cycle path: got %v, want 2 stages", cycleErr.Path)
		}
		seen := map[string]bool{cycleErr.Path[0]: true, cycleErr.Path[1]: true}
		if !seen["x"] || !seen["y"] {
			t.Errorf("cycle should name x and y, got %v", cycleErr.Path)
		}
	})

	t.Run("self cycle", func(t *testing.T) {
		t.Parallel()
		_, err := Build(mkPlan([]string{"a", "a"}))
		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("got %v, want CycleError", err)
		}
		if len(cycleErr.Path) != 1 || cycleErr.Path[0] != "a" {
			t.Errorf("cycle path: got %v, want [a]", cycleErr.Path)
		}
	})

	t.Run("longer cycle through valid stages", func(t *testing.T) {
		t.Parallel()
		_, err := Build(mkPlan(
			[]string{"ok"},
			[]string{"a", "c"},
			[]string{"b", "a"},
			[]string{"c", "b"},
		))
		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("got %v, want CycleError", err)
		}
		if len(cycleErr.Path) != 3 {
			t.Errorf("cycle path: got %v, want 3 stages", cycleErr.Path)
		}
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Parallel()

	indexOf := func(order []string, id string) int {
		for i, s := range order {
			if s == id {
				return i
			}
		}
		return -1
	}

	t.Run("dependency before dependent", func(t *testing.T) {
		t.Parallel()
		g, err := Build(mkPlan([]string{"a"}, []string{"b", "a"}))
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		order := g.TopologicalOrder()
		if indexOf(order, "a") > indexOf(order, "b") {
			t.Errorf("a must come before b, got %v", order)
		}
	})

	t.Run("transitive dependencies respected", func(t *testing.T) {
		t.Parallel()
		// Diamond: d depends on b and c, both depend on a.
		g, err := Build(mkPlan(
			[]string{"d", "b", "c"},
			[]string{"c", "a"},
			[]string{"b", "a"},
			[]string{"a"},
		))
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		order := g.TopologicalOrder()
		for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"a", "d"}} {
			if indexOf(order, pair[0]) > indexOf(order, pair[1]) {
				t.Errorf("%s must come before %s, got %v", pair[0], pair[1], order)
			}
		}
	})

	t.Run("ties broken by declaration order", func(t *testing.T) {
		t.Parallel()
		g, err := Build(mkPlan([]string{"z"}, []string{"m"}, []string{"a"}))
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		order := g.TopologicalOrder()
		want := []string{"z", "m", "a"}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("order: got %v, want %v", order, want)
			}
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()
		p := mkPlan([]string{"c"}, []string{"b", "c"}, []string{"a", "c"})
		g1, _ := Build(p)
		g2, _ := Build(p)
		o1, o2 := g1.TopologicalOrder(), g2.TopologicalOrder()
		for i := range o1 {
			if o1[i] != o2[i] {
				t.Fatalf("orders differ: %v vs %v", o1, o2)
			}
		}
	})
}
