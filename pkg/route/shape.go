package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/radialflow/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// direction is the outward unit vector of a side in screen space.
func direction(s geom.Side) geom.Point {
	switch s {
	case geom.SideLeft:
		return geom.Pt(-1, 0)
	case geom.SideRight:
		return geom.Pt(1, 0)
	case geom.SideBottom:
		return geom.Pt(0, 1)
	default:
		return geom.Pt(0, -1)
	}
}

// controlOffset grows linearly with the gap when the far point lies in front
// of the side and with its square root when it lies behind.
func controlOffset(distance, curvature float64) float64 {
	if distance >= 0 {
		return 0.5 * distance
	}
	return curvature * 25 * math.Sqrt(-distance)
}

func control(side geom.Side, from, to geom.Point, curvature float64) geom.Point {
	switch side {
	case geom.SideLeft:
		return geom.Pt(from.X-controlOffset(from.X-to.X, curvature), from.Y)
	case geom.SideRight:
		return geom.Pt(from.X+controlOffset(to.X-from.X, curvature), from.Y)
	case geom.SideBottom:
		return geom.Pt(from.X, from.Y+controlOffset(to.Y-from.Y, curvature))
	default:
		return geom.Pt(from.X, from.Y-controlOffset(from.Y-to.Y, curvature))
	}
}

func sampleCubic(p0, p1, p2, p3 geom.Point, steps int) []geom.Point {
	out := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		out = append(out, geom.Pt(
			a*p0.X+b*p1.X+c*p2.X+d*p3.X,
			a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
		))
	}
	return out
}

// stepPoints lays out an orthogonal polyline that leaves and enters the boxes
// perpendicular to their sides.
func stepPoints(s geom.Point, ss geom.Side, t geom.Point, ts geom.Side, offset float64) []geom.Point {
	s1 := r2.Add(s, r2.Scale(offset, direction(ss)))
	t1 := r2.Add(t, r2.Scale(offset, direction(ts)))

	pts := []geom.Point{s, s1}
	if ss.Horizontal() {
		mx := (s1.X + t1.X) / 2
		pts = append(pts, geom.Pt(mx, s1.Y), geom.Pt(mx, t1.Y))
	} else {
		my := (s1.Y + t1.Y) / 2
		pts = append(pts, geom.Pt(s1.X, my), geom.Pt(t1.X, my))
	}
	pts = append(pts, t1, t)
	return simplify(pts)
}

// simplify drops repeated and collinear interior points.
func simplify(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		if n := len(out); n >= 2 {
			a, b := out[n-2], out[n-1]
			if r2.Cross(r2.Sub(b, a), r2.Sub(p, b)) == 0 && r2.Dot(r2.Sub(b, a), r2.Sub(p, b)) >= 0 {
				out[n-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// roundedPolyline renders pts with quadratic corners of at most radius.
func roundedPolyline(pts []geom.Point, radius float64) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M" + pt(pts[0]))
	for i := 1; i < len(pts)-1; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		in := r2.Sub(cur, prev)
		out := r2.Sub(next, cur)
		bend := math.Min(radius, math.Min(r2.Norm(in)/2, r2.Norm(out)/2))
		if bend == 0 {
			b.WriteString(" L" + pt(cur))
			continue
		}
		before := r2.Sub(cur, r2.Scale(bend, r2.Unit(in)))
		after := r2.Add(cur, r2.Scale(bend, r2.Unit(out)))
		b.WriteString(" L" + pt(before) + " Q" + pt(cur) + " " + pt(after))
	}
	if len(pts) > 1 {
		b.WriteString(" L" + pt(pts[len(pts)-1]))
	}
	return b.String()
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // folds -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pt(p geom.Point) string { return num(p.X) + "," + num(p.Y) }
