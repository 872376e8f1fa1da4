package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/radialflow/pkg/cluster"
)

func graph() []cluster.Element {
	return cluster.Clusterize([]cluster.Element{
		cluster.Task("t1", "Task 1"),
		cluster.KeyValue("kv1", "KV 1"),
		cluster.KeyValue("kv2", "KV 2"),
		cluster.Link("e_t1_kv1", "t1", "kv1"),
		cluster.Similar("s_kv1_kv2", "kv1", "kv2", 0.6),
	})
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(graph(), Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`subgraph "cluster_cluster-t1" {`,
		`label="Cluster Task 1";`,
		`"t1" [label="Task 1", fillcolor="#ff7f0e"`,
		`"kv1" [label="KV 1", fillcolor="#1f77b4"`,
		`"t1" -- "kv1" [color="#ccc", penwidth=2]`,
		`"kv1" -- "kv2" [color="#2ca02c", penwidth=5]`,
		"mode=KK",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
}

func TestToDOT_UnparentedNode(t *testing.T) {
	dot := ToDOT(graph(), Options{})
	sub := dot[strings.Index(dot, "subgraph"):]
	sub = sub[:strings.Index(sub, "  }")]
	if strings.Contains(sub, `"kv2"`) {
		t.Error("kv2 has no task edge and must stay outside the cluster")
	}
	if !strings.Contains(dot, `  "kv2" [`) {
		t.Error("kv2 missing at top level")
	}
}

func TestToDOT_Algorithm(t *testing.T) {
	tests := []struct {
		alg  cluster.Algorithm
		want []string
	}{
		{cluster.Layered, []string{"layout=dot;", "rankdir=TB;", "nodesep=0.6944444444444444;"}},
		{cluster.ForceDirectedFast, []string{"layout=sfdp;", "K=0.6944444444444444;", "repulsiveforce=1;"}},
		{cluster.CircularClustered, []string{"layout=circo;", "mindist=1.0416666666666667;"}},
		{cluster.ForceDirectedClassic, []string{"layout=fdp;"}},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			dot := ToDOT(graph(), Options{Algorithm: tt.alg})
			for _, want := range tt.want {
				if !strings.Contains(dot, want) {
					t.Errorf("missing %q in\n%s", want, dot)
				}
			}
		})
	}
}

func TestToDOT_Visibility(t *testing.T) {
	elems := graph()
	v := cluster.Filter{Mode: cluster.FilterTasks}.Apply(elems)
	dot := ToDOT(elems, Options{Visibility: &v})
	if strings.Contains(dot, `"kv1"`) || strings.Contains(dot, " -- ") {
		t.Errorf("hidden elements rendered:\n%s", dot)
	}
	if !strings.Contains(dot, `"t1" [`) {
		t.Error("t1 should remain")
	}
}

func TestToDOT_Collapsed(t *testing.T) {
	elems := graph()
	dot := ToDOT(elems, Options{Collapsed: cluster.Collapsed{"cluster-t1": true}})
	if strings.Contains(dot, "subgraph") {
		t.Error("collapsed cluster should not be a subgraph")
	}
	if !strings.Contains(dot, `"cluster-t1" [label="Cluster Task 1"`) || !strings.Contains(dot, "shape=box") {
		t.Errorf("collapsed cluster node missing:\n%s", dot)
	}
	if strings.Contains(dot, `"t1" -- "kv1"`) || strings.Contains(dot, `"cluster-t1" -- "cluster-t1"`) {
		t.Error("edges inside a collapsed cluster should be dropped")
	}
	if !strings.Contains(dot, `"cluster-t1" -- "kv2"`) {
		t.Error("edge leaving the cluster should be redirected")
	}
}

func TestToDOT_Pinned(t *testing.T) {
	elems := graph()
	for i := range elems {
		if elems[i].IsNode() {
			elems[i].Position = &cluster.Position{X: 10, Y: 20}
		}
	}
	dot := ToDOT(elems, Options{Algorithm: cluster.Layered, Pinned: true})
	if !strings.Contains(dot, "layout=neato;") || !strings.Contains(dot, "inputscale=72;") {
		t.Errorf("pinned graph must use neato:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="10,-20!"`) {
		t.Error("pinned position missing")
	}
}

func TestToDOT_Overrides(t *testing.T) {
	elems := graph()
	dot := ToDOT(elems, Options{
		Overrides:  cluster.Overrides(cluster.Emphasis(elems, "kv1")),
		EdgeLabels: true,
	})
	for _, want := range []string{
		`"kv1" [label="KV 1", fillcolor="#1f77b4", width=0.625, height=0.625, fixedsize=true]`,
		`"t1" [label="Task 1", fillcolor="#ffcccc", width=0.4375, height=0.4375, fixedsize=true]`,
		`color="#99ff99cc", penwidth=2.5`,
		`label="Sim: 0.6"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in\n%s", want, dot)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		in      string
		opacity float64
		want    string
	}{
		{"#99ff99", 0.8, "#99ff99cc"},
		{"#ccc", 0.5, "#cccccc80"},
		{"red", 0.5, "red"},
		{"#12345", 0.5, "#12345"},
	}
	for _, tt := range tests {
		if got := withAlpha(tt.in, tt.opacity); got != tt.want {
			t.Errorf("withAlpha(%q, %v) = %q, want %q", tt.in, tt.opacity, got, tt.want)
		}
	}
}

func TestParsePositions(t *testing.T) {
	out := []byte(`graph G {
	graph [bb="0,0,200,100"];
	node [label="\N"];
	t1	[fillcolor="#ff7f0e",
		height=0.5,
		label="Task [1]",
		pos="27,18",
		width=0.5];
	"cluster-t1"	[pos="100.5,-40.25"];
	t1 -- kv1	[pos="27,36 27,50"];
}
`)
	got := parsePositions(out)
	if p := got["t1"]; p.X != 27 || p.Y != 18 {
		t.Errorf("t1 = %+v", p)
	}
	if p := got["cluster-t1"]; p.X != 100.5 || p.Y != -40.25 {
		t.Errorf("cluster-t1 = %+v", p)
	}
	if _, ok := got["graph"]; ok {
		t.Error("graph attributes parsed as a node")
	}
	if len(got) != 2 {
		t.Errorf("parsed %d positions, want 2: %v", len(got), got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(graph(), Options{}), "neato")
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`, ""); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestEngine(t *testing.T) {
	elems := graph()
	eng := NewEngine(400, 300)
	if err := eng.Run(context.Background(), elems, cluster.Layered); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, e := range elems {
		if e.IsEdge() {
			continue
		}
		if e.Position == nil {
			t.Fatalf("%s not placed", e.Data.ID)
		}
		if p := e.Position; p.X < 29.9 || p.X > 370.1 || p.Y < 29.9 || p.Y > 270.1 {
			t.Errorf("%s at %+v outside padded viewport", e.Data.ID, *p)
		}
	}
	if err := eng.Run(context.Background(), elems, cluster.Random); err == nil {
		t.Error("graphviz engine should reject random")
	}
}

func TestAuto(t *testing.T) {
	elems := graph()
	a := Auto{Graphviz: NewEngine(400, 300), Seed: 5}
	if err := a.Run(context.Background(), elems, cluster.Random); err != nil {
		t.Fatalf("Run(random): %v", err)
	}
	if elems[1].Position == nil {
		t.Error("random placement did not set positions")
	}
}
