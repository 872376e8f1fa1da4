package highlight

import (
	"maps"
	"slices"
)

// Set is an immutable pair of node and edge ID sets.
type Set struct {
	nodes map[string]struct{}
	edges map[string]struct{}
}

// NewSet builds a set from ID lists. Duplicates collapse.
func NewSet(nodes, edges []string) Set {
	s := Set{
		nodes: make(map[string]struct{}, len(nodes)),
		edges: make(map[string]struct{}, len(edges)),
	}
	for _, id := range nodes {
		s.nodes[id] = struct{}{}
	}
	for _, id := range edges {
		s.edges[id] = struct{}{}
	}
	return s
}

// HasNode reports whether node id is highlighted.
func (s Set) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// HasEdge reports whether edge id is highlighted.
func (s Set) HasEdge(id string) bool {
	_, ok := s.edges[id]
	return ok
}

// Nodes returns the highlighted node IDs, sorted.
func (s Set) Nodes() []string { return slices.Sorted(maps.Keys(s.nodes)) }

// Edges returns the highlighted edge IDs, sorted.
func (s Set) Edges() []string { return slices.Sorted(maps.Keys(s.edges)) }

// Empty reports whether nothing is highlighted.
func (s Set) Empty() bool { return len(s.nodes) == 0 && len(s.edges) == 0 }

// Len returns the node and edge counts.
func (s Set) Len() (nodes, edges int) { return len(s.nodes), len(s.edges) }
