package scene

import (
	"testing"

	"github.com/matzehuels/radialflow/pkg/geom"
	"github.com/matzehuels/radialflow/pkg/highlight"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
)

func layout(show bool) *radial.Layout {
	cfg := radial.DefaultConfig(1000, 800)
	cfg.ShowSecondary = show
	return radial.Compute([]radial.Record{
		{Primary: "p1", Refs: []string{"s1", "s2"}},
		{Primary: "p2", Refs: []string{"s1", "s3"}},
	}, cfg)
}

func TestBuildOrdersCoreEdgesLast(t *testing.T) {
	s := Build(layout(true), nil, route.DefaultRouter())

	if len(s.Edges) != 4 {
		t.Fatalf("len(Edges) = %d, want 4", len(s.Edges))
	}
	seenCore := false
	for _, e := range s.Edges {
		if e.Core {
			seenCore = true
			continue
		}
		if seenCore {
			t.Errorf("non-core edge %s drawn after a core edge", e.ID)
		}
	}
	if len(s.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", s.Skipped)
	}
}

func TestBuildWithSelection(t *testing.T) {
	l := layout(true)
	tr := highlight.NewTracker(l)
	tr.DoubleClick("s1")

	s := Build(l, tr, route.DefaultRouter())
	if !s.Filter {
		t.Error("scene should carry the filter flag")
	}
	visible := s.VisibleEdges()
	if len(visible) != 2 {
		t.Errorf("visible edges = %d, want 2", len(visible))
	}
	for _, e := range visible {
		if e.Style.Stroke != highlight.HighlightColor {
			t.Errorf("%s stroke = %s", e.ID, e.Style.Stroke)
		}
	}
	n, ok := s.Node("p1")
	if !ok || !n.Style.Highlighted {
		t.Errorf("p1 should be highlighted: %+v", n)
	}
	if n, _ := s.Node("s2"); n.Style.Highlighted {
		t.Error("s2 should not be highlighted")
	}
}

// partial hides one endpoint from the router.
type partial struct {
	*radial.Layout
	missing string
}

func (p partial) Rect(id string) (geom.Rect, bool) {
	if id == p.missing {
		return geom.Rect{}, false
	}
	return p.Layout.Rect(id)
}

func TestRouterSkipsMissingEndpoints(t *testing.T) {
	l := layout(false)
	r := route.DefaultRouter()

	routed := 0
	for _, e := range l.Edges {
		if _, ok := r.Route(e, partial{l, "p2"}); ok {
			routed++
		}
	}
	if routed != 1 {
		t.Errorf("routed = %d, want 1", routed)
	}
}

func TestBounds(t *testing.T) {
	s := Build(layout(false), nil, route.DefaultRouter())
	for _, n := range s.Nodes {
		const tol = 1e-9
		b := s.Bounds
		if n.Rect.X < b.X-tol || n.Rect.Y < b.Y-tol || n.Rect.Right() > b.Right()+tol || n.Rect.Bottom() > b.Bottom()+tol {
			t.Errorf("bounds %v do not contain %s at %v", s.Bounds, n.ID, n.Rect)
		}
	}
}
