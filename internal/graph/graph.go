// Package graph builds and validates the stage dependency graph of a plan.
package graph

import (
	"fmt"
	"strings"

	"github.com/planwt/planwt/internal/plan"
)

// Graph is a validated stage dependency graph. Stage ids and checkout
// paths are unique, every depends_on reference resolves, and the graph is
// acyclic.
type Graph struct {
	order []string            // stage ids in declaration order
	deps  map[string][]string // stage id -> depends_on
}

// DuplicateStageError reports a stage id declared more than once.
type DuplicateStageError struct {
	ID string
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("duplicate stage id %q", e.ID)
}

// DuplicatePathError reports two stages declaring the same checkout path.
// Paths are compared after resolution, so aliases of one location collide.
type DuplicatePathError struct {
	Path   string
	Stages [2]string // the two stage ids claiming the path
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("stages %q and %q declare the same worktree path %s", e.Stages[0], e.Stages[1], e.Path)
}

// UnknownDependencyError reports a depends_on reference that does not
// resolve to any stage in the plan.
type UnknownDependencyError struct {
	StageID string // stage declaring the dependency
	Ref     string // the dangling reference
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("stage %q depends on unknown stage %q", e.StageID, e.Ref)
}

// CycleError reports a dependency cycle, naming one offending cycle.
type CycleError struct {
	Path []string // stage ids along the cycle, first == last omitted
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// Build constructs the dependency graph for the plan and validates its
// invariants. Validation failures abort before any stage operation runs, so
// an invalid plan never causes partial mutations.
func Build(p *plan.Plan) (*Graph, error) {
	g := &Graph{deps: make(map[string][]string, len(p.Stages))}
	paths := make(map[string]string, len(p.Stages))

	for i := range p.Stages {
		st := &p.Stages[i]
		if _, seen := g.deps[st.ID]; seen {
			return nil, &DuplicateStageError{ID: st.ID}
		}
		path, err := st.ResolvedPath()
		if err != nil {
			path = st.WorktreePath
		}
		if first, claimed := paths[path]; claimed {
			return nil, &DuplicatePathError{Path: path, Stages: [2]string{first, st.ID}}
		}
		paths[path] = st.ID
		g.order = append(g.order, st.ID)
		g.deps[st.ID] = st.DependsOn
	}

	for _, id := range g.order {
		for _, ref := range g.deps[id] {
			if _, ok := g.deps[ref]; !ok {
				return nil, &UnknownDependencyError{StageID: id, Ref: ref}
			}
		}
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}
	return g, nil
}

// Stages returns the stage ids in declaration order.
func (g *Graph) Stages() []string {
	return g.order
}

// Dependencies returns the declared dependencies of a stage.
func (g *Graph) Dependencies(id string) []string {
	return g.deps[id]
}

// TopologicalOrder returns the stage ids in a dependency-respecting order.
// Ties are broken by declaration order, so the result is deterministic
// across runs for the same plan.
func (g *Graph) TopologicalOrder() []string {
	emitted := make(map[string]bool, len(g.order))
	order := make([]string, 0, len(g.order))

	// Kahn's algorithm, scanning in declaration order each round. The graph
	// is acyclic by construction, so every round emits at least one stage.
	for len(order) < len(g.order) {
		for _, id := range g.order {
			if emitted[id] {
				continue
			}
			ready := true
			for _, dep := range g.deps[id] {
				if !emitted[dep] {
					ready = false
					break
				}
			}
			if ready {
				emitted[id] = true
				order = append(order, id)
			}
		}
	}
	return order
}

// Traversal colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// findCycle runs a three-color depth-first traversal and returns the ids
// along one cycle, or nil when the graph is acyclic.
func (g *Graph) findCycle() []string {
	color := make(map[string]int, len(g.order))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)

		for _, dep := range g.deps[id] {
			switch color[dep] {
			case gray:
				// Found a back edge; slice the cycle out of the DFS stack.
				for i, s := range stack {
					if s == dep {
						cycle = append(cycle, stack[i:]...)
						break
					}
				}
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range g.order {
		if color[id] == white && visit(id) {
			return cycle
		}
	}
	return nil
}
