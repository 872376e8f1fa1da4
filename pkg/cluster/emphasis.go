package cluster

import (
	"fmt"
	"time"
)

// Node and edge colours of the force-directed view.
const (
	TaskColor       = "#ff7f0e"
	KeyValueColor   = "#1f77b4"
	ClusterColor    = "#f5f5f5"
	SimilarityColor = "#2ca02c"
	LinkColor       = "#ccc"
)

// Tap emphasis constants.
const (
	TappedTaskSize  = 55
	TappedOtherSize = 45
	NeighborFill    = "#ffcccc"
	NeighborScale   = 1.05
	EmphasisEdge    = "#99ff99"
	EmphasisWidth   = 0.5
	EmphasisOpacity = 0.8

	// EmphasisDuration is how long the grow animation runs and EmphasisHold
	// how long the emphasis stays before styles are restored.
	EmphasisDuration = 500 * time.Millisecond
	EmphasisHold     = 1500 * time.Millisecond
)

// NodeColor returns the base fill for a node kind.
func NodeColor(k Kind) string {
	switch k {
	case KindTask:
		return TaskColor
	case KindKeyValue:
		return KeyValueColor
	default:
		return ClusterColor
	}
}

// EdgeWidth is 2 plus five times the similarity score.
func EdgeWidth(e Element) float64 { return 2 + e.Score()*5 }

// EdgeColor distinguishes similarity edges from plain links.
func EdgeColor(e Element) string {
	if e.IsSimilarity() {
		return SimilarityColor
	}
	return LinkColor
}

// StyleOverride replaces parts of an element's base style. Zero fields leave
// the base style untouched.
type StyleOverride struct {
	ID      string
	Size    float64 // absolute node width and height
	Scale   float64 // node size multiplier
	Fill    string
	Line    string
	Widen   float64 // added to the edge width
	Opacity float64
}

func (o StyleOverride) String() string {
	return fmt.Sprintf("%s{size=%g scale=%g fill=%s line=%s widen=%g opacity=%g}",
		o.ID, o.Size, o.Scale, o.Fill, o.Line, o.Widen, o.Opacity)
}

// Emphasis returns the overrides shown while tapped is emphasised: the node
// itself grows, adjacent nodes are tinted and slightly enlarged, and incident
// edges are recoloured. The tapped node comes first, then edges and
// neighbours in element order. An unknown or non-node ID yields nil.
func Emphasis(elements []Element, tapped string) []StyleOverride {
	i, ok := Index(elements)[tapped]
	if !ok || !elements[i].IsNode() {
		return nil
	}
	size := float64(TappedOtherSize)
	if elements[i].Data.Kind == KindTask {
		size = TappedTaskSize
	}
	out := []StyleOverride{{ID: tapped, Size: size}}

	neighbors := make(map[string]bool)
	for _, e := range elements {
		if !e.IsEdge() {
			continue
		}
		var other string
		switch tapped {
		case e.Data.Source:
			other = e.Data.Target
		case e.Data.Target:
			other = e.Data.Source
		default:
			continue
		}
		out = append(out, StyleOverride{ID: e.Data.ID, Line: EmphasisEdge, Widen: EmphasisWidth, Opacity: EmphasisOpacity})
		if other != tapped {
			neighbors[other] = true
		}
	}
	for _, e := range elements {
		if neighbors[e.Data.ID] && e.IsNode() {
			out = append(out, StyleOverride{ID: e.Data.ID, Fill: NeighborFill, Scale: NeighborScale})
		}
	}
	return out
}

// Overrides indexes a list of overrides by element ID.
func Overrides(list []StyleOverride) map[string]StyleOverride {
	m := make(map[string]StyleOverride, len(list))
	for _, o := range list {
		m[o.ID] = o
	}
	return m
}
