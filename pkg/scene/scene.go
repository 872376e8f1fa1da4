// Package scene assembles a drawable snapshot from a layout, the current
// highlight set and an edge router.
//
// A [Scene] is what rendering sinks consume: nodes with their boxes and
// decoration, edges with routed paths sorted so that core edges draw last.
// Edges whose endpoints cannot be resolved are skipped and listed in
// [Scene.Skipped] instead of failing the build.
package scene

import (
	"cmp"
	"slices"

	"github.com/matzehuels/radialflow/pkg/geom"
	"github.com/matzehuels/radialflow/pkg/highlight"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
)

// EdgeDash is the dash pattern edges are stroked with.
const EdgeDash = "5,5"

// Highlighter exposes the current selection. *highlight.Tracker implements it.
type Highlighter interface {
	Set() highlight.Set
	Filter() bool
}

// Node is a positioned, decorated node.
type Node struct {
	ID    string              `json:"id"`
	Label string              `json:"label"`
	Tier  radial.Tier         `json:"tier"`
	Color string              `json:"color"`
	Rect  geom.Rect           `json:"rect"`
	Style highlight.NodeStyle `json:"style"`
}

// Edge is a routed, decorated edge.
type Edge struct {
	ID     string              `json:"id"`
	Source string              `json:"source"`
	Target string              `json:"target"`
	Core   bool                `json:"core"`
	Path   *route.Path         `json:"path"`
	Style  highlight.EdgeStyle `json:"style"`
}

// Scene is a complete drawable snapshot.
type Scene struct {
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	Bounds        geom.Rect `json:"bounds"`
	ShowSecondary bool      `json:"show_secondary"`
	Filter        bool      `json:"filter"`
	Nodes         []Node    `json:"nodes"`
	Edges         []Edge    `json:"edges"`
	Skipped       []string  `json:"skipped,omitempty"`
}

// Build routes and decorates every node and edge of l. A nil h means
// nothing is highlighted.
func Build(l *radial.Layout, h Highlighter, r route.Router) *Scene {
	set := highlight.NewSet(nil, nil)
	filter := false
	if h != nil {
		set, filter = h.Set(), h.Filter()
	}

	s := &Scene{
		Width:         l.Config.Width,
		Height:        l.Config.Height,
		ShowSecondary: l.Config.ShowSecondary,
		Filter:        filter,
		Nodes:         make([]Node, 0, len(l.Nodes)),
		Edges:         make([]Edge, 0, len(l.Edges)),
	}

	for _, n := range l.Nodes {
		rect := n.Rect()
		s.Bounds = s.Bounds.Union(rect)
		s.Nodes = append(s.Nodes, Node{
			ID:    n.ID,
			Label: n.Label,
			Tier:  n.Tier,
			Color: n.Color,
			Rect:  rect,
			Style: highlight.DecorateNode(set, n.ID),
		})
	}

	for _, e := range l.Edges {
		p, ok := r.Route(e, l)
		if !ok {
			s.Skipped = append(s.Skipped, e.ID)
			continue
		}
		s.Edges = append(s.Edges, Edge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Core:   e.Core,
			Path:   p,
			Style:  highlight.DecorateEdge(set, filter, e.ID, e.Core),
		})
	}

	slices.SortStableFunc(s.Edges, func(a, b Edge) int {
		return cmp.Compare(a.Style.Z, b.Style.Z)
	})
	return s
}

// VisibleEdges returns the edges not hidden by the filter, in draw order.
func (s *Scene) VisibleEdges() []Edge {
	out := make([]Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if !e.Style.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// Node looks up a scene node by ID.
func (s *Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
