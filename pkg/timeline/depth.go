package timeline

import (
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// NestedDepth computes the maximum nesting depth of lane templates reachable
// from the given id. It is a structural metric used for nested indentation
// in the viewers and carries no timing semantics.
//
// Unknown ids, atomic templates, and lanes with no segments have depth 0.
// A lane's depth is 1 plus the maximum depth of its children, where the max
// over an empty set is 0: children are not filtered before the computation,
// so a lane whose segments all dangle still has depth 1, distinguishing
// "has segments" from "has resolvable children".
//
// The template graph is not guaranteed acyclic. A visited set scoped to this
// call is threaded through the recursion; revisiting an id returns 0 for
// that branch, which bounds the recursion to the number of distinct ids
// along any path and guarantees termination regardless of graph shape.
func NestedDepth(id string, store *template.Store) int {
	return nestedDepth(id, store, make(map[string]bool))
}

func nestedDepth(id string, store *template.Store, visited map[string]bool) int {
	if visited[id] {
		return 0 // cycle guard
	}

	t, ok := store.Lookup(id)
	if !ok || !t.IsLane() || len(t.Segments) == 0 {
		return 0
	}

	visited[id] = true

	max := 0
	for _, seg := range t.Segments {
		if d := nestedDepth(seg.TemplateID, store, visited); d > max {
			max = d
		}
	}
	return 1 + max
}
