package cluster

import (
	"fmt"
	"strings"

	"github.com/matzehuels/radialflow/pkg/errors"
)

// FilterMode restricts which node kinds are shown.
type FilterMode int

const (
	FilterNone           FilterMode = iota // all nodes
	FilterTasks                            // tasks only
	FilterKeyValues                        // key-values only
	FilterHideNonSimilar                   // key-values without a visible similarity edge are hidden
)

var filterNames = []string{
	FilterNone:           "none",
	FilterTasks:          "tasks",
	FilterKeyValues:      "key-values",
	FilterHideNonSimilar: "hide-non-similar",
}

var filterAliases = map[string]FilterMode{
	"":                        FilterNone,
	"all":                     FilterNone,
	"keyvalues":               FilterKeyValues,
	"hidenonsimilarkeyvalues": FilterHideNonSimilar,
}

func (m FilterMode) String() string {
	if m >= 0 && int(m) < len(filterNames) {
		return filterNames[m]
	}
	return fmt.Sprintf("filter(%d)", int(m))
}

// FilterModeNames lists the canonical mode names.
func FilterModeNames() []string { return append([]string(nil), filterNames...) }

// ParseFilterMode resolves a mode name. Matching ignores case.
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range filterNames {
		if name == s {
			return FilterMode(i), nil
		}
	}
	if m, ok := filterAliases[s]; ok {
		return m, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput,
		"unknown filter %q (want %s)", s, strings.Join(filterNames, ", "))
}

// Toggle returns FilterNone when m is already active, otherwise m.
func (m FilterMode) Toggle(current FilterMode) FilterMode {
	if current == m {
		return FilterNone
	}
	return m
}

// Filter combines a kind filter with a similarity threshold.
type Filter struct {
	Mode FilterMode
	// Threshold hides similarity edges whose score is below it.
	Threshold float64
}

// Visibility is the outcome of applying a Filter.
type Visibility struct {
	hidden map[string]bool
}

// Visible reports whether the element with id is drawn. Unknown IDs are
// visible.
func (v Visibility) Visible(id string) bool { return !v.hidden[id] }

// HiddenCount returns the number of hidden elements.
func (v Visibility) HiddenCount() int { return len(v.hidden) }

// Apply evaluates f over elements. Edges are hidden when an endpoint is
// hidden or their similarity is below the threshold. Cluster nodes are
// visible while any member is.
func (f Filter) Apply(elements []Element) Visibility {
	hidden := make(map[string]bool)
	kind := make(map[string]Kind, len(elements))
	for _, e := range elements {
		if e.IsNode() {
			kind[e.Data.ID] = e.Data.Kind
		}
	}

	edgeOK := func(e Element) bool {
		if hidden[e.Data.Source] || hidden[e.Data.Target] {
			return false
		}
		return e.Data.Similarity == nil || *e.Data.Similarity >= f.Threshold
	}

	for _, e := range elements {
		if !e.IsNode() || e.IsCluster() {
			continue
		}
		switch f.Mode {
		case FilterTasks:
			hidden[e.Data.ID] = e.Data.Kind != KindTask
		case FilterKeyValues:
			hidden[e.Data.ID] = e.Data.Kind != KindKeyValue
		}
	}

	if f.Mode == FilterHideNonSimilar {
		similar := make(map[string]bool)
		for _, e := range elements {
			if e.IsSimilarity() && edgeOK(e) {
				similar[e.Data.Source] = true
				similar[e.Data.Target] = true
			}
		}
		for id, k := range kind {
			if k == KindKeyValue && !similar[id] {
				hidden[id] = true
			}
		}
	}

	for _, e := range elements {
		if e.IsEdge() {
			hidden[e.Data.ID] = !edgeOK(e)
		}
	}

	shown := make(map[string]bool)
	for _, e := range elements {
		if e.IsNode() && !e.IsCluster() && !hidden[e.Data.ID] && e.Data.Parent != "" {
			shown[e.Data.Parent] = true
		}
	}
	for _, e := range elements {
		if e.IsCluster() {
			hidden[e.Data.ID] = !shown[e.Data.ID]
		}
	}

	for id, h := range hidden {
		if !h {
			delete(hidden, id)
		}
	}
	return Visibility{hidden: hidden}
}

// Select returns the elements v keeps, in input order.
func (v Visibility) Select(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		if v.Visible(e.Data.ID) {
			out = append(out, e)
		}
	}
	return out
}
