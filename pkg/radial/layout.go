package radial

import (
	"math"

	"github.com/matzehuels/radialflow/pkg/geom"
)

// Node is a positioned entity. Pos is the top-left corner of its box.
type Node struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Tier   Tier       `json:"tier"`
	Pos    geom.Point `json:"pos"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Color  string     `json:"color"`
	Angle  float64    `json:"angle"` // slot angle in degrees, -90 + i·360/n
}

// Rect returns the node's bounding box.
func (n Node) Rect() geom.Rect { return geom.NewRect(n.Pos, n.Width, n.Height) }

// Edge connects a primary entity to one of its references.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Core   bool   `json:"core"` // target is core; drawn above the rest
}

// EdgeID is the stable identifier of the (primary, ref) edge. IDs containing
// "-" can make two different pairs share an ID, e.g. ("a-b", "c") and
// ("a", "b-c"); a layout keeps the first and lists the rest in
// [Layout.Collisions].
func EdgeID(primary, ref string) string { return primary + "-" + ref }

// Layout is the immutable result of one layout pass.
type Layout struct {
	Nodes  []Node
	Edges  []Edge
	Config Config

	// Collisions holds "source->target" pairs dropped because an earlier,
	// different pair produced the same edge ID.
	Collisions []string

	membership *Membership
	nodeIndex  map[string]int
	edgeIndex  map[string]int
}

// SlotAngles returns the n slot angles in degrees, starting at the top.
func SlotAngles(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = -90 + float64(i)*360/float64(n)
	}
	return out
}

// Compute runs one layout pass over records.
func Compute(records []Record, cfg Config) *Layout {
	return ComputeMembership(NewMembership(records), cfg)
}

// ComputeMembership runs one layout pass over an already indexed relation.
func ComputeMembership(m *Membership, cfg Config) *Layout {
	l := &Layout{
		Config:     cfg,
		membership: m,
		nodeIndex:  make(map[string]int),
		edgeIndex:  make(map[string]int),
	}

	l.placeTier(TierCore, m.Tiered(TierCore))
	l.placeTier(TierPrimary, m.Tiered(TierPrimary))
	if cfg.ShowSecondary {
		l.placeTier(TierSecondary, m.Tiered(TierSecondary))
	}

	for _, p := range m.primaries {
		for _, ref := range m.refs[p] {
			t, _ := m.TierOf(ref)
			if t == TierSecondary && !cfg.ShowSecondary {
				continue
			}
			id := EdgeID(p, ref)
			if i, dup := l.edgeIndex[id]; dup {
				if prev := l.Edges[i]; prev.Source != p || prev.Target != ref {
					l.Collisions = append(l.Collisions, p+"->"+ref)
				}
				continue
			}
			l.edgeIndex[id] = len(l.Edges)
			l.Edges = append(l.Edges, Edge{ID: id, Source: p, Target: ref, Core: t == TierCore})
		}
	}
	return l
}

func (l *Layout) placeTier(t Tier, ids []string) {
	if len(ids) == 0 {
		return
	}
	center := l.Config.Center()
	rx, ry := l.Config.Radii(t)
	style := l.Config.Style(t)
	n := float64(len(ids))

	for i, id := range ids {
		if _, dup := l.nodeIndex[id]; dup {
			continue
		}
		theta := (math.Pi*2*float64(i))/n - math.Pi/2
		l.nodeIndex[id] = len(l.Nodes)
		l.Nodes = append(l.Nodes, Node{
			ID:     id,
			Label:  id,
			Tier:   t,
			Pos:    geom.Pt(center.X+rx*math.Cos(theta), center.Y+ry*math.Sin(theta)),
			Width:  style.Width,
			Height: style.Height,
			Color:  style.Color,
			Angle:  -90 + float64(i)*360/n,
		})
	}
}

// Membership returns the relation the layout was computed from.
func (l *Layout) Membership() *Membership { return l.membership }

// Node looks up a placed node.
func (l *Layout) Node(id string) (Node, bool) {
	i, ok := l.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Rect returns the bounding box of a placed node.
func (l *Layout) Rect(id string) (geom.Rect, bool) {
	n, ok := l.Node(id)
	if !ok {
		return geom.Rect{}, false
	}
	return n.Rect(), true
}

// HasNode reports whether id is placed in this pass.
func (l *Layout) HasNode(id string) bool {
	_, ok := l.nodeIndex[id]
	return ok
}

// Edge looks up a derived edge.
func (l *Layout) Edge(id string) (Edge, bool) {
	i, ok := l.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return l.Edges[i], true
}

// EdgesFrom returns the edges whose source is id.
func (l *Layout) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range l.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTouching returns the edges with id at either end.
func (l *Layout) EdgesTouching(id string) []Edge {
	var out []Edge
	for _, e := range l.Edges {
		if e.Source == id || e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// CountByTier returns how many nodes were placed on each tier.
func (l *Layout) CountByTier() map[Tier]int {
	out := make(map[Tier]int, 3)
	for _, n := range l.Nodes {
		out[n.Tier]++
	}
	return out
}
