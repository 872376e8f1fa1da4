package radial

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/radialflow/pkg/scene"
)

// RenderPNG rasterises s directly with a 2D canvas. The picture matches
// [RenderSVG] except for fonts, which use a fixed bitmap face.
func RenderPNG(s *scene.Scene, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	w, h := canvasSize(s)

	dc := gg.NewContext(int(float64(w)*r.scale), int(float64(h)*r.scale))
	dc.Scale(r.scale, r.scale)

	bg, err := parseColor(r.background)
	if err != nil {
		return nil, err
	}
	dc.SetColor(bg)
	dc.Clear()

	if r.gridGap > 0 {
		dot, _ := parseColor(DefaultDotColor)
		dc.SetColor(dot)
		for x := 1; x < w; x += r.gridGap {
			for y := 1; y < h; y += r.gridGap {
				dc.DrawCircle(float64(x), float64(y), 1)
			}
		}
		dc.Fill()
	}

	dc.SetDash(5, 5)
	for _, e := range s.VisibleEdges() {
		c, err := parseColor(e.Style.Stroke)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.ID, err)
		}
		dc.SetColor(c)
		dc.SetLineWidth(e.Style.Width)
		for i, p := range e.Path.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.Stroke()
	}
	dc.SetDash()

	dc.SetFontFace(basicfont.Face7x13)
	text, _ := parseColor(DefaultTextColor)
	for _, n := range s.Nodes {
		if n.Style.Glow != "" {
			glow, err := parseColor(n.Style.Glow)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
			g := n.Style.GlowRadius / 2
			dc.SetColor(glow)
			dc.DrawRoundedRectangle(n.Rect.X-g, n.Rect.Y-g, n.Rect.Width+2*g, n.Rect.Height+2*g, NodeCornerRadius+g)
			dc.Fill()
		}

		fill, err := parseColor(n.Color)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(n.Rect.X, n.Rect.Y, n.Rect.Width, n.Rect.Height, NodeCornerRadius)
		dc.Fill()

		if n.Style.BorderWidth > 0 {
			border, err := parseColor(n.Style.Border)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
			dc.SetColor(border)
			dc.SetLineWidth(n.Style.BorderWidth)
			dc.DrawRoundedRectangle(n.Rect.X, n.Rect.Y, n.Rect.Width, n.Rect.Height, NodeCornerRadius)
			dc.Stroke()
		}

		if r.labels {
			c := n.Rect.Center()
			dc.SetColor(text)
			dc.DrawStringAnchored(n.Label, c.X, c.Y, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseColor accepts #rgb, #rrggbb and rgba(r,g,b,a) colours.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutPrefix(s, "rgba("); ok {
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(strings.TrimSuffix(inner, ")"), " ", ""), "%d,%d,%d,%g", &r, &g, &b, &a); err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}
