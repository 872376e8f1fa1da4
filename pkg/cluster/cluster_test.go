package cluster

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/radial"
)

func sample() []Element {
	return []Element{
		Task("t1", "T1"),
		Task("t2", "T2"),
		KeyValue("a", "A"),
		KeyValue("b", "B"),
		KeyValue("c", "C"),
		Link("e_t1_a", "t1", "a"),
		Link("e_t2_a", "t2", "a"),
		Link("e_t2_b", "t2", "b"),
		Link("e_t2_c", "t2", "c"),
		Similar("s_a_b", "a", "b", 0.8),
		Similar("s_b_c", "b", "c", 0.2),
	}
}

func ids(elements []Element) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.Data.ID
	}
	return out
}

func TestIsEdge(t *testing.T) {
	tests := []struct {
		name string
		e    Element
		want bool
	}{
		{"explicit node", Element{Group: GroupNodes, Data: Data{ID: "x", Source: "a", Target: "b"}}, false},
		{"explicit edge", Element{Group: GroupEdges, Data: Data{ID: "x"}}, true},
		{"implicit edge", Element{Data: Data{ID: "x", Source: "a", Target: "b"}}, true},
		{"implicit node", Element{Data: Data{ID: "x", Source: "a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.IsEdge(); got != tt.want {
				t.Errorf("IsEdge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeStyle(t *testing.T) {
	s := Similar("s", "a", "b", 0.4)
	if got := EdgeWidth(s); got != 4 {
		t.Errorf("EdgeWidth = %v, want 4", got)
	}
	if EdgeColor(s) != SimilarityColor || EdgeColor(Link("l", "a", "b")) != LinkColor {
		t.Error("EdgeColor mismatch")
	}
	if got := EdgeLabel(s); got != "Sim: 0.4" {
		t.Errorf("EdgeLabel = %q", got)
	}
	if EdgeLabel(Link("l", "a", "b")) != "" {
		t.Error("plain link should have no label")
	}
}

func TestFromRecords(t *testing.T) {
	got := FromRecords([]radial.Record{
		{Primary: "p1", Refs: []string{"s1", "s2"}},
		{Primary: "p2", Refs: []string{"s1"}},
	})
	want := []string{"p1", "p2", "s1", "s2", "e_p1_s1", "e_p1_s2", "e_p2_s1"}
	if !slices.Equal(ids(got), want) {
		t.Errorf("FromRecords ids = %v, want %v", ids(got), want)
	}
	if err := Validate(got); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		code     errors.Code
	}{
		{"duplicate", []Element{Task("a", ""), KeyValue("a", "")}, errors.ErrCodeInvalidInput},
		{"dangling edge", []Element{Task("a", ""), Link("e", "a", "zz")}, errors.ErrCodeEntityNotFound},
		{"bad score", []Element{Task("a", ""), Task("b", ""), Similar("s", "a", "b", 1.5)}, errors.ErrCodeInvalidInput},
		{"missing parent", []Element{{Group: GroupNodes, Data: Data{ID: "a", Parent: "p"}}}, errors.ErrCodeEntityNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.elements)
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"force-directed-quality", ForceDirectedQuality},
		{"fcose", ForceDirectedQuality},
		{"cose-bilkent", ForceDirectedFast},
		{"CISE", CircularClustered},
		{"dagre", Layered},
		{"cose", ForceDirectedClassic},
		{" random ", Random},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseAlgorithm("spring"); !errors.Is(err, errors.ErrCodeInvalidAlgorithm) {
		t.Errorf("ParseAlgorithm(spring) = %v, want INVALID_ALGORITHM", err)
	}
}

func TestAlgorithmRoundTrip(t *testing.T) {
	for _, a := range Algorithms() {
		b, _ := a.MarshalText()
		var got Algorithm
		if err := got.UnmarshalText(b); err != nil || got != a {
			t.Errorf("round trip %v = %v, %v", a, got, err)
		}
	}
}

func TestConfigFor(t *testing.T) {
	engines := map[Algorithm]string{
		ForceDirectedQuality: "neato",
		ForceDirectedFast:    "sfdp",
		CircularClustered:    "circo",
		Layered:              "dot",
		ForceDirectedClassic: "fdp",
		Random:               "",
	}
	for a, want := range engines {
		cfg := ConfigFor(a)
		if cfg.Engine != want {
			t.Errorf("ConfigFor(%v).Engine = %q, want %q", a, cfg.Engine, want)
		}
		if cfg.Padding != DefaultPadding {
			t.Errorf("ConfigFor(%v).Padding = %v", a, cfg.Padding)
		}
	}
	if cfg := ConfigFor(Layered); cfg.NodeSeparation != 50 || cfg.RankSeparation != 50 {
		t.Errorf("layered separations = %v/%v", cfg.NodeSeparation, cfg.RankSeparation)
	}
}

func TestClusterize(t *testing.T) {
	got := Clusterize(sample())
	wantOrder := []string{
		"cluster-t1", "cluster-t2",
		"t1", "t2", "a", "b", "c",
		"e_t1_a", "e_t2_a", "e_t2_b", "e_t2_c", "s_a_b", "s_b_c",
	}
	if !slices.Equal(ids(got), wantOrder) {
		t.Fatalf("order = %v, want %v", ids(got), wantOrder)
	}
	parents := map[string]string{}
	for _, e := range got {
		if e.IsNode() {
			parents[e.Data.ID] = e.Data.Parent
		}
	}
	want := map[string]string{
		"cluster-t1": "", "cluster-t2": "",
		"t1": "cluster-t1", "t2": "cluster-t2",
		"a": "cluster-t1", "b": "cluster-t2", "c": "cluster-t2",
	}
	for id, p := range want {
		if parents[id] != p {
			t.Errorf("parent(%s) = %q, want %q", id, parents[id], p)
		}
	}
	if got[0].Data.Label != "Cluster T1" || !got[0].IsCluster() {
		t.Errorf("cluster node = %+v", got[0])
	}

	again := Clusterize(got)
	if !slices.Equal(ids(again), wantOrder) {
		t.Errorf("Clusterize is not idempotent: %v", ids(again))
	}
	if err := Validate(got); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCollapsed(t *testing.T) {
	elems := Clusterize(sample())
	c := Collapsed{}
	if c.Toggle(elems, "t1") {
		t.Error("toggling a task should be ignored")
	}
	if !c.Toggle(elems, "cluster-t2") {
		t.Fatal("cluster-t2 should collapse")
	}
	if !c.Hidden(elems, "b") || c.Hidden(elems, "a") {
		t.Error("only members of cluster-t2 should be hidden")
	}
	if got := Members(elems, "cluster-t2"); !slices.Equal(got, []string{"t2", "b", "c"}) {
		t.Errorf("Members = %v", got)
	}
	if c.Toggle(elems, "cluster-t2") || len(c) != 0 {
		t.Error("second toggle should expand")
	}
}

func TestFilterApply(t *testing.T) {
	elems := sample()
	visible := func(v Visibility) []string {
		var out []string
		for _, e := range elems {
			if v.Visible(e.Data.ID) {
				out = append(out, e.Data.ID)
			}
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "none",
			filter: Filter{},
			want:   ids(elems),
		},
		{
			name:   "threshold",
			filter: Filter{Threshold: 0.5},
			want:   []string{"t1", "t2", "a", "b", "c", "e_t1_a", "e_t2_a", "e_t2_b", "e_t2_c", "s_a_b"},
		},
		{
			name:   "tasks",
			filter: Filter{Mode: FilterTasks},
			want:   []string{"t1", "t2"},
		},
		{
			name:   "key-values",
			filter: Filter{Mode: FilterKeyValues},
			want:   []string{"a", "b", "c", "s_a_b", "s_b_c"},
		},
		{
			name:   "hide non-similar above threshold",
			filter: Filter{Mode: FilterHideNonSimilar, Threshold: 0.5},
			want:   []string{"t1", "t2", "a", "b", "e_t1_a", "e_t2_a", "e_t2_b", "s_a_b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visible(tt.filter.Apply(elems))
			if !slices.Equal(got, tt.want) {
				t.Errorf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterClusters(t *testing.T) {
	elems := Clusterize(sample())
	v := Filter{Mode: FilterKeyValues}.Apply(elems)
	if !v.Visible("cluster-t1") || !v.Visible("cluster-t2") {
		t.Error("clusters with visible key-values should stay visible")
	}
	elems = Clusterize([]Element{Task("t", "T"), KeyValue("k", "K")})
	v = Filter{Mode: FilterKeyValues}.Apply(elems)
	if v.Visible("cluster-t") {
		t.Error("cluster without visible members should be hidden")
	}
	if got := len(v.Select(elems)); got != 1 {
		t.Errorf("Select kept %d elements, want 1", got)
	}
}

func TestParseFilterMode(t *testing.T) {
	for in, want := range map[string]FilterMode{
		"":                        FilterNone,
		"tasks":                   FilterTasks,
		"keyValues":               FilterKeyValues,
		"hideNonSimilarKeyValues": FilterHideNonSimilar,
		"hide-non-similar":        FilterHideNonSimilar,
	} {
		got, err := ParseFilterMode(in)
		if err != nil || got != want {
			t.Errorf("ParseFilterMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFilterMode("bogus"); err == nil {
		t.Error("expected error")
	}
	if FilterTasks.Toggle(FilterTasks) != FilterNone || FilterTasks.Toggle(FilterNone) != FilterTasks {
		t.Error("Toggle mismatch")
	}
}

func TestGenerate(t *testing.T) {
	elems := Generate(GenOptions{Tasks: 3, KeyValuesPerTask: 2, SimilarityEdges: 20, Seed: 9})
	if err := Validate(elems); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	var tasks, kvs, links, sims int
	for _, e := range elems {
		switch {
		case e.IsSimilarity():
			sims++
			if e.Data.Source == e.Data.Target {
				t.Errorf("self-loop %s", e.Data.ID)
			}
			if s := e.Score() * 100; math.Abs(s-math.Round(s)) > 1e-9 {
				t.Errorf("score %v not rounded to 2 decimals", e.Score())
			}
		case e.IsEdge():
			links++
		case e.Data.Kind == KindTask:
			tasks++
		case e.Data.Kind == KindKeyValue:
			kvs++
		}
	}
	if tasks != 3 || kvs != 6 || links != 6 {
		t.Errorf("tasks=%d kvs=%d links=%d", tasks, kvs, links)
	}
	if sims == 0 || sims > 20 {
		t.Errorf("similarity edges = %d", sims)
	}
	if elems[0].Data.ID != "task_1" || elems[1].Data.ID != "kv_1_1" || elems[1].Data.Label != "KV 1-1" {
		t.Errorf("unexpected head %v", ids(elems[:2]))
	}

	again := Generate(GenOptions{Tasks: 3, KeyValuesPerTask: 2, SimilarityEdges: 20, Seed: 9})
	if !slices.Equal(ids(elems), ids(again)) {
		t.Error("Generate is not deterministic")
	}
}

func TestGenerateDefaults(t *testing.T) {
	var kvs int
	for _, e := range Generate(GenOptions{}) {
		if e.Data.Kind == KindKeyValue {
			kvs++
		}
	}
	if kvs != 250 {
		t.Errorf("default key-values = %d, want 250", kvs)
	}
}

func TestRandomEngine(t *testing.T) {
	elems := Clusterize(sample())
	eng := RandomEngine{Width: 400, Height: 300, Seed: 3}
	if err := eng.Run(context.Background(), elems, Random); err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		if e.IsEdge() {
			if e.Position != nil {
				t.Errorf("edge %s got a position", e.Data.ID)
			}
			continue
		}
		p := e.Position
		if p == nil {
			t.Fatalf("node %s not placed", e.Data.ID)
		}
		if p.X < 30 || p.X > 370 || p.Y < 30 || p.Y > 270 {
			t.Errorf("node %s at %+v outside padded viewport", e.Data.ID, *p)
		}
	}
	if err := eng.Run(context.Background(), elems, Layered); !errors.Is(err, errors.ErrCodeInvalidAlgorithm) {
		t.Errorf("Run(layered) = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := eng.Run(ctx, elems, Random); err == nil {
		t.Error("cancelled context should fail")
	}
}

func TestFit(t *testing.T) {
	elems := []Element{
		{Group: GroupNodes, Data: Data{ID: "a"}, Position: &Position{X: -10, Y: 0}},
		{Group: GroupNodes, Data: Data{ID: "b"}, Position: &Position{X: 10, Y: 10}},
	}
	Fit(elems, 200, 100, 30)
	// box 20x10 into 140x40: scale 4, centred at (100, 50).
	if p := elems[0].Position; p.X != 60 || p.Y != 30 {
		t.Errorf("a = %+v", *p)
	}
	if p := elems[1].Position; p.X != 140 || p.Y != 70 {
		t.Errorf("b = %+v", *p)
	}

	single := []Element{{Group: GroupNodes, Data: Data{ID: "a"}, Position: &Position{X: 5, Y: 5}}}
	Fit(single, 200, 100, 30)
	if p := single[0].Position; p.X != 100 || p.Y != 50 {
		t.Errorf("single = %+v", *p)
	}
}

func TestEmphasis(t *testing.T) {
	elems := sample()
	got := Emphasis(elems, "a")
	want := []StyleOverride{
		{ID: "a", Size: TappedOtherSize},
		{ID: "e_t1_a", Line: EmphasisEdge, Widen: EmphasisWidth, Opacity: EmphasisOpacity},
		{ID: "e_t2_a", Line: EmphasisEdge, Widen: EmphasisWidth, Opacity: EmphasisOpacity},
		{ID: "s_a_b", Line: EmphasisEdge, Widen: EmphasisWidth, Opacity: EmphasisOpacity},
		{ID: "t1", Fill: NeighborFill, Scale: NeighborScale},
		{ID: "t2", Fill: NeighborFill, Scale: NeighborScale},
		{ID: "b", Fill: NeighborFill, Scale: NeighborScale},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Emphasis(a) =\n%v\nwant\n%v", got, want)
	}
	if o := Overrides(Emphasis(elems, "t1"))["t1"]; o.Size != TappedTaskSize {
		t.Errorf("task size = %v", o.Size)
	}
	if Emphasis(elems, "e_t1_a") != nil || Emphasis(elems, "nope") != nil {
		t.Error("edges and unknown IDs should yield nil")
	}
}
