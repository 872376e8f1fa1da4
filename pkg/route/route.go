package route

import (
	"fmt"
	"strings"

	"github.com/matzehuels/radialflow/pkg/geom"
	"github.com/matzehuels/radialflow/pkg/radial"
)

// Default drawing parameters.
const (
	DefaultCurvature    = 0.25
	DefaultBorderRadius = 20.0
	DefaultStepOffset   = 20.0
)

// Mode selects how attachment sides are resolved.
type Mode int

const (
	ModeFloating Mode = iota
	ModeAngle
	ModeDominant
)

var modeNames = []string{"floating", "angle", "dominant"}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown route mode %q (want %s)", s, strings.Join(modeNames, ", "))
}

// Shape selects the path geometry.
type Shape int

const (
	ShapeBezier Shape = iota
	ShapeSmoothStep
	ShapeStraight
)

var shapeNames = []string{"bezier", "smoothstep", "straight"}

func (s Shape) String() string {
	if int(s) >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape converts a shape name into a Shape.
func ParseShape(s string) (Shape, error) {
	for i, name := range shapeNames {
		if strings.EqualFold(s, name) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown route shape %q (want %s)", s, strings.Join(shapeNames, ", "))
}

// Lookup resolves node IDs to bounding boxes. *radial.Layout implements it.
type Lookup interface {
	Rect(id string) (geom.Rect, bool)
}

// Path is the routed geometry of one edge.
type Path struct {
	Source     geom.Point
	Target     geom.Point
	SourceSide geom.Side
	TargetSide geom.Side
	D          string       // SVG path data
	Points     []geom.Point // polyline approximation, source first
}

// Router resolves sides and draws paths. The zero value routes floating
// bezier edges with default curvature.
type Router struct {
	Mode         Mode
	Shape        Shape
	BorderRadius float64
	Curvature    float64
}

// DefaultRouter returns a floating bezier router.
func DefaultRouter() Router {
	return Router{
		Mode:         ModeFloating,
		Shape:        ShapeBezier,
		BorderRadius: DefaultBorderRadius,
		Curvature:    DefaultCurvature,
	}
}

// Route computes the path for e. It returns false when either endpoint is
// missing from nodes.
func (r Router) Route(e radial.Edge, nodes Lookup) (*Path, bool) {
	src, ok := nodes.Rect(e.Source)
	if !ok {
		return nil, false
	}
	dst, ok := nodes.Rect(e.Target)
	if !ok {
		return nil, false
	}
	return r.Between(src, dst), true
}

// Between routes from box src to box dst.
func (r Router) Between(src, dst geom.Rect) *Path {
	p := r.endpoints(src, dst)

	switch r.Shape {
	case ShapeStraight:
		p.Points = []geom.Point{p.Source, p.Target}
		p.D = "M" + pt(p.Source) + " L" + pt(p.Target)
	case ShapeSmoothStep:
		radius := r.BorderRadius
		if radius <= 0 {
			radius = DefaultBorderRadius
		}
		p.Points = stepPoints(p.Source, p.SourceSide, p.Target, p.TargetSide, DefaultStepOffset)
		p.D = roundedPolyline(p.Points, radius)
	default:
		curvature := r.Curvature
		if curvature <= 0 {
			curvature = DefaultCurvature
		}
		c1 := control(p.SourceSide, p.Source, p.Target, curvature)
		c2 := control(p.TargetSide, p.Target, p.Source, curvature)
		p.Points = sampleCubic(p.Source, c1, c2, p.Target, 16)
		p.D = "M" + pt(p.Source) + " C" + pt(c1) + " " + pt(c2) + " " + pt(p.Target)
	}
	return p
}

func (r Router) endpoints(src, dst geom.Rect) *Path {
	switch r.Mode {
	case ModeAngle:
		deg := geom.Angle(src.Center(), dst.Center())
		ss := geom.Classify(deg)
		ts := geom.Classify(geom.Normalize(deg + 180))
		return &Path{Source: geom.Anchor(src, ss), Target: geom.Anchor(dst, ts), SourceSide: ss, TargetSide: ts}
	case ModeDominant:
		ss, ts := geom.DominantSides(src, dst)
		return &Path{Source: geom.Anchor(src, ss), Target: geom.Anchor(dst, ts), SourceSide: ss, TargetSide: ts}
	default:
		sp := geom.Intersection(src, dst)
		tp := geom.Intersection(dst, src)
		return &Path{
			Source:     sp,
			Target:     tp,
			SourceSide: geom.ResolveSide(src, sp),
			TargetSide: geom.ResolveSide(dst, tp),
		}
	}
}
