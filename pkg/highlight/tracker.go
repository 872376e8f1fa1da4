package highlight

import (
	"fmt"

	"github.com/matzehuels/radialflow/pkg/radial"
)

// State is the tracker's interaction state.
type State int

const (
	StateIdle State = iota
	StateSingleSelected
	StateConnectedSubgraph
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSingleSelected:
		return "single-selected"
	case StateConnectedSubgraph:
		return "connected-subgraph"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Tracker holds the current highlight set for one layout. It is owned by a
// single orchestrator and is not safe for concurrent use.
//
// Once a double click turns the edge filter on it stays on across later
// clicks and layout passes until Clear.
type Tracker struct {
	layout *radial.Layout
	set    Set
	filter bool
	state  State
}

// NewTracker returns an idle tracker over l.
func NewTracker(l *radial.Layout) *Tracker {
	return &Tracker{layout: l, set: NewSet(nil, nil)}
}

// Set returns the current highlight set.
func (t *Tracker) Set() Set { return t.set }

// Filter reports whether non-highlighted edges are hidden.
func (t *Tracker) Filter() bool { return t.filter }

// State returns the interaction state.
func (t *Tracker) State() State { return t.state }

// Layout returns the layout the tracker currently resolves IDs against.
func (t *Tracker) Layout() *radial.Layout { return t.layout }

// Rebind points the tracker at a recomputed layout. The highlight set and
// filter survive; IDs missing from the new layout simply match nothing.
func (t *Tracker) Rebind(l *radial.Layout) { t.layout = l }

// Click selects a primary entity together with its placed references, the
// primaries that share a core reference with it, and the edges between them.
// The edge filter is left as it is; only Clear turns it off. Clicking
// anything else is a no-op and returns false.
func (t *Tracker) Click(id string) bool {
	m := t.layout.Membership()
	if !m.IsPrimary(id) || !t.layout.HasNode(id) {
		return false
	}

	refs := m.Refs(id)
	nodes := []string{id}
	var edges []string

	for _, e := range t.layout.EdgesFrom(id) {
		edges = append(edges, e.ID)
	}

	var peers []string
	seen := map[string]bool{id: true}
	for _, ref := range refs {
		if !t.layout.HasNode(ref) {
			continue
		}
		nodes = append(nodes, ref)
		if !m.IsCore(ref) {
			continue
		}
		for _, p := range m.Referrers(ref) {
			if !seen[p] {
				seen[p] = true
				peers = append(peers, p)
			}
		}
	}
	nodes = append(nodes, peers...)

	for _, p := range peers {
		for _, e := range t.layout.EdgesFrom(p) {
			if containsRef(refs, e.Target) {
				edges = append(edges, e.ID)
			}
		}
	}

	t.set = NewSet(nodes, edges)
	t.state = StateSingleSelected
	return true
}

// DoubleClick selects every current edge touching id plus their endpoints and
// turns the edge filter on. The node itself is always selected, even when no
// edge touches it. Unknown IDs are a no-op and return false.
func (t *Tracker) DoubleClick(id string) bool {
	if !t.layout.HasNode(id) {
		return false
	}

	nodes := []string{id}
	var edges []string
	for _, e := range t.layout.EdgesTouching(id) {
		edges = append(edges, e.ID)
		nodes = append(nodes, e.Source, e.Target)
	}

	t.set = NewSet(nodes, edges)
	t.filter = true
	t.state = StateConnectedSubgraph
	return true
}

// Clear empties the set, disables the filter and returns to idle.
func (t *Tracker) Clear() {
	t.set = NewSet(nil, nil)
	t.filter = false
	t.state = StateIdle
}

func containsRef(refs []string, id string) bool {
	for _, r := range refs {
		if r == id {
			return true
		}
	}
	return false
}
