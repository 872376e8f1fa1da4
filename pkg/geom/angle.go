package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Side is one of the four cardinal sides of a node.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

// Sides lists every side in declaration order.
func Sides() []Side { return []Side{SideTop, SideRight, SideBottom, SideLeft} }

func (s Side) String() string {
	if s < SideTop || s > SideLeft {
		return "unknown"
	}
	return sideNames[s]
}

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Horizontal reports whether s is Left or Right.
func (s Side) Horizontal() bool { return s == SideLeft || s == SideRight }

// Angle returns the angle in degrees of the vector from one point to another,
// normalized to [0, 360). A zero-length vector yields 0.
func Angle(from, to Point) float64 {
	d := r2.Sub(to, from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	deg := math.Atan2(d.Y, d.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	// -ε + 360 can round up to exactly 360.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Normalize folds any finite angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Classify maps a normalized angle to a side using half-open intervals:
// [45,135) Top, [135,225) Left, [225,315) Bottom, everything else Right.
func Classify(deg float64) Side {
	switch {
	case deg >= 45 && deg < 135:
		return SideTop
	case deg >= 135 && deg < 225:
		return SideLeft
	case deg >= 225 && deg < 315:
		return SideBottom
	default:
		return SideRight
	}
}
