package highlight

import (
	"reflect"
	"testing"

	"github.com/matzehuels/radialflow/pkg/radial"
)

func scenario(show bool) *radial.Layout {
	cfg := radial.DefaultConfig(1000, 800)
	cfg.ShowSecondary = show
	return radial.Compute([]radial.Record{
		{Primary: "p1", Refs: []string{"s1", "s2"}},
		{Primary: "p2", Refs: []string{"s1", "s3"}},
	}, cfg)
}

func TestClick(t *testing.T) {
	tests := []struct {
		name      string
		show      bool
		click     string
		ok        bool
		nodes     []string
		edges     []string
		wantState State
	}{
		{
			name:      "secondary hidden",
			click:     "p1",
			ok:        true,
			nodes:     []string{"p1", "p2", "s1"},
			edges:     []string{"p1-s1", "p2-s1"},
			wantState: StateSingleSelected,
		},
		{
			name:      "secondary shown adds private reference",
			show:      true,
			click:     "p1",
			ok:        true,
			nodes:     []string{"p1", "p2", "s1", "s2"},
			edges:     []string{"p1-s1", "p1-s2", "p2-s1"},
			wantState: StateSingleSelected,
		},
		{
			name:      "reference is ignored",
			click:     "s1",
			wantState: StateIdle,
		},
		{
			name:      "unknown is ignored",
			click:     "nope",
			wantState: StateIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(scenario(tt.show))
			if got := tr.Click(tt.click); got != tt.ok {
				t.Errorf("Click(%q) = %v, want %v", tt.click, got, tt.ok)
			}
			if got := tr.Set().Nodes(); !reflect.DeepEqual(got, tt.nodes) {
				t.Errorf("nodes = %v, want %v", got, tt.nodes)
			}
			if got := tr.Set().Edges(); !reflect.DeepEqual(got, tt.edges) {
				t.Errorf("edges = %v, want %v", got, tt.edges)
			}
			if tr.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", tr.State(), tt.wantState)
			}
			if tr.Filter() {
				t.Error("Click from idle must not enable the edge filter")
			}
		})
	}
}

func TestDoubleClick(t *testing.T) {
	l := scenario(true)
	tr := NewTracker(l)

	if !tr.DoubleClick("s1") {
		t.Fatal("DoubleClick(s1) = false")
	}
	if got, want := tr.Set().Nodes(), []string{"p1", "p2", "s1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	if !tr.Filter() {
		t.Error("filter should be on")
	}
	if tr.State() != StateConnectedSubgraph {
		t.Errorf("State() = %v", tr.State())
	}

	visible := map[string]bool{}
	for _, e := range l.Edges {
		if !DecorateEdge(tr.Set(), tr.Filter(), e.ID, e.Core).Hidden {
			visible[e.ID] = true
		}
	}
	if want := map[string]bool{"p1-s1": true, "p2-s1": true}; !reflect.DeepEqual(visible, want) {
		t.Errorf("visible edges = %v, want %v", visible, want)
	}
}

func TestDoubleClickIsolated(t *testing.T) {
	l := radial.Compute([]radial.Record{{Primary: "lonely"}}, radial.DefaultConfig(800, 600))
	tr := NewTracker(l)

	if !tr.DoubleClick("lonely") {
		t.Fatal("DoubleClick(lonely) = false")
	}
	if got := tr.Set().Nodes(); !reflect.DeepEqual(got, []string{"lonely"}) {
		t.Errorf("nodes = %v, want [lonely]", got)
	}
	if tr.DoubleClick("ghost") {
		t.Error("DoubleClick(ghost) should be a no-op")
	}
}

func TestInteractionsReplaceSet(t *testing.T) {
	tr := NewTracker(scenario(true))

	tr.DoubleClick("s2")
	tr.Click("p2")
	if !tr.Filter() {
		t.Error("Click after DoubleClick turned the filter off")
	}
	if tr.Set().HasNode("s2") {
		t.Error("set from the double click leaked into the click")
	}

	tr.Clear()
	if !tr.Set().Empty() || tr.Filter() || tr.State() != StateIdle {
		t.Errorf("after Clear: empty=%v filter=%v state=%v", tr.Set().Empty(), tr.Filter(), tr.State())
	}
}

func TestFilterPersistsUntilClear(t *testing.T) {
	l := scenario(true)
	tr := NewTracker(l)

	tr.DoubleClick("s1")
	if !tr.Click("p1") {
		t.Fatal("Click(p1) = false")
	}
	if !tr.Filter() {
		t.Fatal("filter should stay on after a click")
	}
	if tr.State() != StateSingleSelected {
		t.Errorf("State() = %v", tr.State())
	}

	hidden := map[string]bool{}
	for _, e := range l.Edges {
		if DecorateEdge(tr.Set(), tr.Filter(), e.ID, e.Core).Hidden {
			hidden[e.ID] = true
		}
	}
	if want := map[string]bool{"p2-s3": true}; !reflect.DeepEqual(hidden, want) {
		t.Errorf("hidden edges = %v, want %v", hidden, want)
	}

	tr.Click("p2")
	if !tr.Filter() {
		t.Error("filter should stay on across repeated clicks")
	}

	tr.Clear()
	if tr.Filter() {
		t.Error("Clear should turn the filter off")
	}
}

func TestRebindKeepsSet(t *testing.T) {
	e := radial.NewEngine(radial.NewMembership([]radial.Record{
		{Primary: "p1", Refs: []string{"s1", "s2"}},
		{Primary: "p2", Refs: []string{"s1", "s3"}},
	}), radial.DefaultConfig(1000, 800))

	tr := NewTracker(e.Layout())
	tr.Click("p1")
	before := tr.Set().Edges()

	tr.Rebind(e.Resize(1200, 900))
	if got := tr.Set().Edges(); !reflect.DeepEqual(got, before) {
		t.Errorf("edges after rebind = %v, want %v", got, before)
	}
	if tr.Layout() != e.Layout() {
		t.Error("tracker not rebound to the new layout")
	}

	// clicking after a toggle resolves against the new layout
	tr.Rebind(e.ToggleSecondary())
	tr.Click("p1")
	if !tr.Set().HasEdge("p1-s2") {
		t.Error("p1-s2 should be highlighted once the secondary tier is shown")
	}
}
