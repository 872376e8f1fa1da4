package route

import (
	"testing"

	"github.com/matzehuels/radialflow/pkg/geom"
	"github.com/matzehuels/radialflow/pkg/radial"
)

type boxes map[string]geom.Rect

func (b boxes) Rect(id string) (geom.Rect, bool) {
	r, ok := b[id]
	return r, ok
}

func sideBySide() boxes {
	return boxes{
		"a": geom.NewRect(geom.Pt(0, 0), 40, 40),
		"b": geom.NewRect(geom.Pt(100, 0), 40, 40),
	}
}

func TestRouteShapes(t *testing.T) {
	e := radial.Edge{ID: "a-b", Source: "a", Target: "b"}

	tests := []struct {
		name  string
		shape Shape
		want  string
	}{
		{"bezier", ShapeBezier, "M40,20 C70,20 70,20 100,20"},
		{"straight", ShapeStraight, "M40,20 L100,20"},
		{"smooth step collapses to a line", ShapeSmoothStep, "M40,20 L100,20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRouter()
			r.Shape = tt.shape
			p, ok := r.Route(e, sideBySide())
			if !ok {
				t.Fatal("Route() reported a missing endpoint")
			}
			if p.D != tt.want {
				t.Errorf("D = %q, want %q", p.D, tt.want)
			}
			if p.SourceSide != geom.SideRight || p.TargetSide != geom.SideLeft {
				t.Errorf("sides = %v/%v, want right/left", p.SourceSide, p.TargetSide)
			}
			if first := p.Points[0]; first != p.Source {
				t.Errorf("Points[0] = %v, want source %v", first, p.Source)
			}
			if last := p.Points[len(p.Points)-1]; last != p.Target {
				t.Errorf("last point = %v, want target %v", last, p.Target)
			}
		})
	}
}

func TestRouteMissingEndpoint(t *testing.T) {
	r := DefaultRouter()
	for _, e := range []radial.Edge{
		{ID: "a-x", Source: "a", Target: "x"},
		{ID: "x-b", Source: "x", Target: "b"},
	} {
		if p, ok := r.Route(e, sideBySide()); ok || p != nil {
			t.Errorf("Route(%s) = %v, %v; want nil, false", e.ID, p, ok)
		}
	}
}

func TestRouteModes(t *testing.T) {
	// b sits directly below a
	stacked := boxes{
		"a": geom.NewRect(geom.Pt(0, 0), 40, 40),
		"b": geom.NewRect(geom.Pt(0, 100), 40, 40),
	}
	e := radial.Edge{Source: "a", Target: "b"}

	tests := []struct {
		name         string
		mode         Mode
		source, targ geom.Side
		from, to     geom.Point
	}{
		{"floating", ModeFloating, geom.SideBottom, geom.SideTop, geom.Pt(20, 40), geom.Pt(20, 100)},
		{"dominant", ModeDominant, geom.SideBottom, geom.SideTop, geom.Pt(20, 40), geom.Pt(20, 100)},
		// 90 degrees classifies as top, the target takes the opposite half-plane
		{"angle", ModeAngle, geom.SideTop, geom.SideBottom, geom.Pt(20, 0), geom.Pt(20, 140)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Router{Mode: tt.mode, Shape: ShapeStraight}
			p, ok := r.Route(e, stacked)
			if !ok {
				t.Fatal("Route() reported a missing endpoint")
			}
			if p.SourceSide != tt.source || p.TargetSide != tt.targ {
				t.Errorf("sides = %v/%v, want %v/%v", p.SourceSide, p.TargetSide, tt.source, tt.targ)
			}
			if p.Source != tt.from || p.Target != tt.to {
				t.Errorf("endpoints = %v -> %v, want %v -> %v", p.Source, p.Target, tt.from, tt.to)
			}
		})
	}
}

func TestSmoothStepCorners(t *testing.T) {
	src := geom.NewRect(geom.Pt(0, 0), 40, 40)
	dst := geom.NewRect(geom.Pt(100, 200), 40, 40)

	r := Router{Mode: ModeDominant, Shape: ShapeSmoothStep, BorderRadius: 20}
	p := r.Between(src, dst)

	want := "M20,40 L20,100 Q20,120 40,120 L100,120 Q120,120 120,140 L120,200"
	if p.D != want {
		t.Errorf("D = %q\nwant %q", p.D, want)
	}
	if len(p.Points) != 4 {
		t.Errorf("len(Points) = %d, want 4", len(p.Points))
	}
}

func TestControlOffset(t *testing.T) {
	tests := []struct {
		distance, want float64
	}{
		{60, 30},
		{0, 0},
		{-16, 25}, // 0.25 * 25 * 4
	}
	for _, tt := range tests {
		if got := controlOffset(tt.distance, DefaultCurvature); got != tt.want {
			t.Errorf("controlOffset(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, m := range []Mode{ModeFloating, ModeAngle, ModeDominant} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for _, s := range []Shape{ShapeBezier, ShapeSmoothStep, ShapeStraight} {
		got, err := ParseShape(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShape(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseMode("curvy"); err == nil {
		t.Error("ParseMode(curvy) should fail")
	}
	if _, err := ParseShape("zigzag"); err == nil {
		t.Error("ParseShape(zigzag) should fail")
	}
}

func TestRouteOnLayout(t *testing.T) {
	l := radial.Compute([]radial.Record{
		{Primary: "p1", Refs: []string{"s1"}},
		{Primary: "p2", Refs: []string{"s1"}},
	}, radial.DefaultConfig(1000, 800))

	r := DefaultRouter()
	for _, e := range l.Edges {
		p, ok := r.Route(e, l)
		if !ok {
			t.Fatalf("Route(%s) missed an endpoint", e.ID)
		}
		src, _ := l.Rect(e.Source)
		if got := geom.ResolveSide(src, p.Source); got != p.SourceSide {
			t.Errorf("%s: source side %v, recomputed %v", e.ID, p.SourceSide, got)
		}
	}
}
