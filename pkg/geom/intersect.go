package geom

import "math"

// edgeTolerance is the slack, in pixels, used by ResolveSide.
const edgeTolerance = 1

// Intersection approximates the point where the line from node's center
// towards other's center crosses node's border.
//
// The direction is normalized by node's half-extents, rotated into diamond
// space, scaled to unit L1 length and projected back. The result lies on the
// inscribed diamond/ellipse blend rather than the exact rectangle edge.
// A zero L1 norm (coincident centers) falls back to a scale of 1, and a node
// with a zero half-extent yields its own center.
func Intersection(node, other Rect) Point {
	w, h := node.HalfExtents()
	c := node.Center()
	if w == 0 || h == 0 {
		return c
	}
	o := other.Center()

	nx := (o.X - c.X) / (2 * w)
	ny := (o.Y - c.Y) / (2 * h)
	xx1 := nx - ny
	yy1 := nx + ny

	l1 := math.Abs(xx1) + math.Abs(yy1)
	a := 1.0
	if l1 != 0 && !math.IsNaN(l1) {
		a = 1 / l1
	}
	xx3 := a * xx1
	yy3 := a * yy1

	return Point{
		X: w*(xx3+yy3) + c.X,
		Y: h*(-xx3+yy3) + c.Y,
	}
}

// ResolveSide reports which side of node the boundary point p is nearest to.
// Coordinates are rounded first; the checks run Left, Right, Top, Bottom with
// a one pixel tolerance so corners resolve to Left or Right. Points matching
// no side default to Top.
func ResolveSide(node Rect, p Point) Side {
	nx := roundHalfUp(node.X)
	ny := roundHalfUp(node.Y)
	px := roundHalfUp(p.X)
	py := roundHalfUp(p.Y)

	switch {
	case px <= nx+edgeTolerance:
		return SideLeft
	case px >= nx+node.Width-edgeTolerance:
		return SideRight
	case py <= ny+edgeTolerance:
		return SideTop
	case py >= ny+node.Height-edgeTolerance:
		return SideBottom
	default:
		return SideTop
	}
}

// Anchor returns the midpoint of the given side of r.
func Anchor(r Rect, side Side) Point {
	switch side {
	case SideLeft:
		return Point{X: r.X, Y: r.Y + r.Height/2}
	case SideRight:
		return Point{X: r.Right(), Y: r.Y + r.Height/2}
	case SideTop:
		return Point{X: r.X + r.Width/2, Y: r.Y}
	case SideBottom:
		return Point{X: r.X + r.Width/2, Y: r.Bottom()}
	default:
		return r.Center()
	}
}

// DominantSides picks facing sides for an edge from src to dst along the
// axis with the larger center delta. Ties go to the vertical axis.
func DominantSides(src, dst Rect) (Side, Side) {
	s, t := src.Center(), dst.Center()
	dx, dy := t.X-s.X, t.Y-s.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return SideRight, SideLeft
		}
		return SideLeft, SideRight
	}
	if dy > 0 {
		return SideBottom, SideTop
	}
	return SideTop, SideBottom
}

// roundHalfUp rounds to the nearest integer with halves going towards +Inf.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
