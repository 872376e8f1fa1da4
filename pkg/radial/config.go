package radial

import "github.com/matzehuels/radialflow/pkg/geom"

// Default viewport-relative outer radii.
const (
	DefaultRadiusXFrac = 0.4
	DefaultRadiusYFrac = 0.3
)

// TierStyle holds the per-tier ring ratio, fill color and node size.
type TierStyle struct {
	Ratio  float64 `toml:"ratio" json:"ratio" validate:"gt=0,lte=1"`
	Color  string  `toml:"color" json:"color" validate:"hexcolor"`
	Width  float64 `toml:"width" json:"width" validate:"gt=0"`
	Height float64 `toml:"height" json:"height" validate:"gt=0"`
}

// Config parameterizes one layout pass.
type Config struct {
	Width  float64 `json:"width"`  // viewport width
	Height float64 `json:"height"` // viewport height

	// Outer ring radii as fractions of the viewport, horizontal and vertical
	// independently so the rings can be ellipses.
	RadiusXFrac float64 `json:"radius_x_frac"`
	RadiusYFrac float64 `json:"radius_y_frac"`

	Core      TierStyle `json:"core"`
	Primary   TierStyle `json:"primary"`
	Secondary TierStyle `json:"secondary"`

	ShowSecondary bool `json:"show_secondary"`
}

// DefaultConfig returns the stock palette and ratios for a viewport.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:       width,
		Height:      height,
		RadiusXFrac: DefaultRadiusXFrac,
		RadiusYFrac: DefaultRadiusYFrac,
		Core:        TierStyle{Ratio: 1.0, Color: "#10b981", Width: 80, Height: 80},
		Primary:     TierStyle{Ratio: 0.7, Color: "#6366f1", Width: 120, Height: 40},
		Secondary:   TierStyle{Ratio: 0.4, Color: "#f59e0b", Width: 100, Height: 30},
	}
}

// Center returns the shared center of all rings.
func (c Config) Center() geom.Point {
	return geom.Pt(c.Width/2, c.Height/2)
}

// Style returns the style of tier t.
func (c Config) Style(t Tier) TierStyle {
	switch t {
	case TierCore:
		return c.Core
	case TierSecondary:
		return c.Secondary
	default:
		return c.Primary
	}
}

// Radii returns the horizontal and vertical radius of tier t's ring.
// A hidden secondary tier shares the primary ring.
func (c Config) Radii(t Tier) (float64, float64) {
	ratio := c.Style(t).Ratio
	if t == TierSecondary && !c.ShowSecondary {
		ratio = c.Primary.Ratio
	}
	rx := c.Width * c.RadiusXFrac
	ry := c.Height * c.RadiusYFrac
	return rx * ratio, ry * ratio
}
