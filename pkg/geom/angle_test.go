package geom

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAngle(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     float64
	}{
		{"east", Pt(0, 0), Pt(10, 0), 0},
		{"south (screen down)", Pt(0, 0), Pt(0, 10), 90},
		{"west", Pt(0, 0), Pt(-10, 0), 180},
		{"north (screen up)", Pt(0, 0), Pt(0, -10), 270},
		{"south-east", Pt(5, 5), Pt(15, 15), 45},
		{"north-west", Pt(0, 0), Pt(-1, -1), 225},
		{"zero length", Pt(3, 4), Pt(3, 4), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.from, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
		{359.5, 359.5},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		angle float64
		want  Side
	}{
		{0, SideRight},
		{44.999, SideRight},
		{45, SideTop},
		{90, SideTop},
		{134.999, SideTop},
		{135, SideLeft},
		{180, SideLeft},
		{224.999, SideLeft},
		{225, SideBottom},
		{270, SideBottom},
		{314.999, SideBottom},
		{315, SideRight},
		{359.999, SideRight},
	}
	for _, tt := range tests {
		if got := Classify(tt.angle); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestClassifyPartition(t *testing.T) {
	counts := make(map[Side]int)
	const steps = 36000
	for i := 0; i < steps; i++ {
		s := Classify(float64(i) / 100)
		if s < SideTop || s > SideLeft {
			t.Fatalf("Classify(%v) returned out-of-range side %d", float64(i)/100, s)
		}
		counts[s]++
	}
	// Each quarter of the circle maps to exactly one side.
	for _, s := range Sides() {
		if counts[s] != steps/4 {
			t.Errorf("side %v covers %d samples, want %d", s, counts[s], steps/4)
		}
	}
}

func TestSideOpposite(t *testing.T) {
	for _, s := range Sides() {
		if s.Opposite().Opposite() != s {
			t.Errorf("%v.Opposite().Opposite() = %v", s, s.Opposite().Opposite())
		}
		if s.Opposite() == s {
			t.Errorf("%v.Opposite() returned itself", s)
		}
	}
	if Side(42).String() != "unknown" {
		t.Errorf("out-of-range side should stringify as unknown")
	}
}

func circularDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 360-d)
}

func TestAngleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1e4, 1e4)

	properties.Property("angle is in [0, 360)", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			a := Angle(Pt(x1, y1), Pt(x2, y2))
			return a >= 0 && a < 360
		},
		coord, coord, coord, coord,
	))

	properties.Property("reversed vector is rotated by 180", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			p, q := Pt(x1, y1), Pt(x2, y2)
			if p == q {
				return true
			}
			want := math.Mod(Angle(q, p)+180, 360)
			return circularDiff(Angle(p, q), want) < 1e-9
		},
		coord, coord, coord, coord,
	))

	properties.Property("classify returns a single known side", prop.ForAll(
		func(a float64) bool {
			s := Classify(a)
			return s >= SideTop && s <= SideLeft
		},
		gen.Float64Range(0, 359.999999),
	))

	properties.TestingRun(t)
}
