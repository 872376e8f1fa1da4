package radial

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/radialflow/pkg/scene"
)

const interactionCSS = `
    .rf-edge { transition: stroke-width 0.2s ease, opacity 0.2s ease; }
    .rf-edge.hover { stroke-width: 3; stroke: #ff0000; }
    .rf-node { cursor: pointer; }`

const interactionJS = `
    document.querySelectorAll('.rf-node').forEach(n => {
      const id = n.dataset.id;
      const edges = document.querySelectorAll('.rf-edge[data-source="' + id + '"], .rf-edge[data-target="' + id + '"]');
      n.addEventListener('mouseenter', () => edges.forEach(e => e.classList.add('hover')));
      n.addEventListener('mouseleave', () => edges.forEach(e => e.classList.remove('hover')));
    });`

// Defaults for the drawing.
const (
	DefaultGridGap    = 40
	DefaultBackground = "#f8fafc"
	DefaultDotColor   = "#cbd5e1"
	DefaultTextColor  = "#0f172a"
	NodeCornerRadius  = 6
	LabelFontSize     = 11
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	background  string
	gridGap     int
	labels      bool
	interactive bool
	scale       float64
}

// WithBackground sets the canvas fill.
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }

// WithGrid sets the dot grid spacing; 0 disables the grid.
func WithGrid(gap int) Option { return func(r *renderer) { r.gridGap = gap } }

// WithoutLabels omits node labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithInteraction embeds hover highlighting for standalone SVG viewing.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// WithScale sets the PNG pixel ratio (default 2).
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		background: DefaultBackground,
		gridGap:    DefaultGridGap,
		labels:     true,
		scale:      2,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	return r
}

// RenderSVG draws s as a standalone SVG document: dotted background, dashed
// edge paths in draw order and rounded node boxes with centred labels.
func RenderSVG(s *scene.Scene, opts ...Option) []byte {
	r := newRenderer(opts...)
	w, h := canvasSize(s)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))

	canvas.Def()
	if r.gridGap > 0 {
		canvas.Pattern("rf-dots", 0, 0, r.gridGap, r.gridGap, "user")
		canvas.Circle(1, 1, 1, "fill:"+DefaultDotColor)
		canvas.PatternEnd()
	}
	if r.interactive {
		canvas.Style("text/css", interactionCSS)
	}
	canvas.DefEnd()

	canvas.Rect(0, 0, w, h, "fill:"+r.background)
	if r.gridGap > 0 {
		canvas.Rect(0, 0, w, h, "fill:url(#rf-dots)")
	}

	canvas.Gid("edges")
	for _, e := range s.VisibleEdges() {
		canvas.Path(e.Path.D,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-dasharray:%s", e.Style.Stroke, e.Style.Width, scene.EdgeDash),
			`class="rf-edge"`,
			attr("id", "edge-"+e.ID),
			attr("data-source", e.Source),
			attr("data-target", e.Target),
		)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range s.Nodes {
		x, y := round(n.Rect.X), round(n.Rect.Y)
		nw, nh := round(n.Rect.Width), round(n.Rect.Height)
		if n.Style.Glow != "" {
			g := round(n.Style.GlowRadius / 2)
			canvas.Roundrect(x-g, y-g, nw+2*g, nh+2*g, NodeCornerRadius+g, NodeCornerRadius+g, "fill:"+n.Style.Glow)
		}
		style := "fill:" + n.Color
		if n.Style.BorderWidth > 0 {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%g", n.Style.Border, n.Style.BorderWidth)
		}
		canvas.Roundrect(x, y, nw, nh, NodeCornerRadius, NodeCornerRadius, style,
			`class="rf-node"`, attr("id", "node-"+n.ID), attr("data-id", n.ID))
		if r.labels {
			c := n.Rect.Center()
			canvas.Text(round(c.X), round(c.Y)+LabelFontSize/3, n.Label,
				fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif;text-anchor:middle;pointer-events:none", DefaultTextColor, LabelFontSize))
		}
	}
	canvas.Gend()

	if r.interactive {
		canvas.Script("application/javascript", interactionJS)
	}
	canvas.End()
	return buf.Bytes()
}

// canvasSize covers the viewport and any node drawn past it.
func canvasSize(s *scene.Scene) (int, int) {
	w := math.Max(s.Width, s.Bounds.Right())
	h := math.Max(s.Height, s.Bounds.Bottom())
	return int(math.Ceil(w)), int(math.Ceil(h))
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func round(v float64) int { return int(math.Round(v)) }
