package cluster

import (
	"fmt"

	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/geom"
	"github.com/matzehuels/radialflow/pkg/radial"
)

// Group separates nodes from edges when it is set explicitly.
type Group string

const (
	GroupNodes Group = "nodes"
	GroupEdges Group = "edges"
)

// Kind is the node category stored in the typeoflabel field.
type Kind string

const (
	KindTask     Kind = "task"
	KindKeyValue Kind = "key_value"
	KindCluster  Kind = "cluster"
)

// ClusterPrefix prefixes the ID of the compound node created for a task.
const ClusterPrefix = "cluster-"

// Data carries an element's attributes.
type Data struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Kind       Kind     `json:"typeoflabel,omitempty"`
	Parent     string   `json:"parent,omitempty"`
	Source     string   `json:"source,omitempty"`
	Target     string   `json:"target,omitempty"`
	Similarity *float64 `json:"similarity_score,omitempty"`
}

// Position is a node centre in screen coordinates (y grows downward).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point converts p to a geometry vector.
func (p Position) Point() geom.Point { return geom.Pt(p.X, p.Y) }

// Element is a node or an edge.
type Element struct {
	Group    Group     `json:"group,omitempty"`
	Data     Data      `json:"data"`
	Position *Position `json:"position,omitempty"`
}

// IsEdge reports whether e is an edge. Elements without an explicit group are
// edges when they carry both endpoints.
func (e Element) IsEdge() bool {
	if e.Group != "" {
		return e.Group == GroupEdges
	}
	return e.Data.Source != "" && e.Data.Target != ""
}

// IsNode reports whether e is a node (compound nodes included).
func (e Element) IsNode() bool { return !e.IsEdge() }

// IsCluster reports whether e is a compound cluster node.
func (e Element) IsCluster() bool { return e.IsNode() && e.Data.Kind == KindCluster }

// IsSimilarity reports whether e is an edge with a similarity score.
func (e Element) IsSimilarity() bool { return e.IsEdge() && e.Data.Similarity != nil }

// Score returns the similarity score, or 0 for plain edges.
func (e Element) Score() float64 {
	if e.Data.Similarity == nil {
		return 0
	}
	return *e.Data.Similarity
}

// ID returns the element identifier.
func (e Element) ID() string { return e.Data.ID }

// Task returns a task node.
func Task(id, label string) Element {
	return Element{Group: GroupNodes, Data: Data{ID: id, Label: label, Kind: KindTask}}
}

// KeyValue returns a key-value node.
func KeyValue(id, label string) Element {
	return Element{Group: GroupNodes, Data: Data{ID: id, Label: label, Kind: KindKeyValue}}
}

// Link returns a plain edge.
func Link(id, source, target string) Element {
	return Element{Group: GroupEdges, Data: Data{ID: id, Source: source, Target: target}}
}

// Similar returns a similarity edge with the given score.
func Similar(id, source, target string, score float64) Element {
	e := Link(id, source, target)
	e.Data.Similarity = &score
	return e
}

// EdgeLabel is the label drawn on an edge.
func EdgeLabel(e Element) string {
	if e.Data.Similarity == nil {
		return ""
	}
	return fmt.Sprintf("Sim: %g", *e.Data.Similarity)
}

// FromRecords converts radial input records into a task/key-value graph:
// primaries become tasks, references become key-values and every record
// reference becomes an edge e_<primary>_<ref>.
func FromRecords(records []radial.Record) []Element {
	m := radial.NewMembership(records)
	var nodes, edges []Element
	seen := make(map[string]bool)
	for _, p := range m.Primaries() {
		nodes = append(nodes, Task(p, p))
		seen[p] = true
	}
	for _, p := range m.Primaries() {
		for _, r := range m.Refs(p) {
			if !seen[r] {
				seen[r] = true
				nodes = append(nodes, KeyValue(r, r))
			}
			edges = append(edges, Link("e_"+p+"_"+r, p, r))
		}
	}
	return append(nodes, edges...)
}

// Index maps element IDs to their slice positions.
func Index(elements []Element) map[string]int {
	idx := make(map[string]int, len(elements))
	for i, e := range elements {
		idx[e.Data.ID] = i
	}
	return idx
}

// Validate checks that IDs are unique, edges reference existing nodes and
// similarity scores lie in [0, 1].
func Validate(elements []Element) error {
	ids := make(map[string]bool, len(elements))
	for _, e := range elements {
		if err := errors.ValidateID(e.Data.ID); err != nil {
			return err
		}
		if ids[e.Data.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate element id %q", e.Data.ID)
		}
		ids[e.Data.ID] = true
	}
	for _, e := range elements {
		if !e.IsEdge() {
			if e.Data.Parent != "" && !ids[e.Data.Parent] {
				return errors.New(errors.ErrCodeEntityNotFound, "node %q: parent %q not found", e.Data.ID, e.Data.Parent)
			}
			continue
		}
		for _, end := range []string{e.Data.Source, e.Data.Target} {
			if !ids[end] {
				return errors.New(errors.ErrCodeEntityNotFound, "edge %q: endpoint %q not found", e.Data.ID, end)
			}
		}
		if e.Data.Similarity != nil {
			if err := errors.ValidateThreshold(*e.Data.Similarity); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %q", e.Data.ID)
			}
		}
	}
	return nil
}
