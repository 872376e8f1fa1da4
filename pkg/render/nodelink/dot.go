package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/radialflow/pkg/cluster"
)

// pointsPerInch converts the pixel distances of cluster configs to Graphviz
// inches.
const pointsPerInch = 72

// BaseNodeSize is the default node diameter in pixels.
const BaseNodeSize = 30

// Options configures DOT generation.
type Options struct {
	// Algorithm selects the layout engine and its tuning attributes.
	Algorithm cluster.Algorithm
	// Visibility hides filtered elements. Nil draws everything.
	Visibility *cluster.Visibility
	// Collapsed folds clusters into single nodes.
	Collapsed cluster.Collapsed
	// Overrides restyles individual elements, typically from [cluster.Emphasis].
	Overrides map[string]cluster.StyleOverride
	// Pinned fixes nodes that already have a position, so rendering reuses
	// a previous layout instead of recomputing one.
	Pinned bool
	// EdgeLabels draws "Sim: x" on similarity edges.
	EdgeLabels bool
}

// Engine returns the Graphviz engine the options render with.
func (o Options) Engine() string {
	if o.Pinned {
		return "neato"
	}
	if e := cluster.ConfigFor(o.Algorithm).Engine; e != "" {
		return e
	}
	return "neato"
}

// ToDOT converts elements to an undirected Graphviz graph. Cluster nodes
// become "subgraph cluster_*" blocks holding their members; collapsed
// clusters become a single box and edges into them are redirected.
func ToDOT(elements []cluster.Element, opts Options) string {
	visible := func(id string) bool {
		return opts.Visibility == nil || opts.Visibility.Visible(id)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", opts.Engine())
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10, fontname=\"Helvetica\", penwidth=0];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", cluster.LinkColor)
	if opts.Pinned {
		fmt.Fprintf(&buf, "  inputscale=%d;\n", pointsPerInch)
	} else {
		for _, a := range engineAttrs(cluster.ConfigFor(opts.Algorithm)) {
			fmt.Fprintf(&buf, "  %s;\n", a)
		}
	}
	buf.WriteString("\n")

	members := make(map[string][]cluster.Element)
	redirect := make(map[string]string)
	clusters := make(map[string]bool)
	for _, e := range elements {
		if e.IsCluster() {
			clusters[e.Data.ID] = true
		}
	}
	for _, e := range elements {
		if e.IsNode() && !e.IsCluster() && e.Data.Parent != "" {
			members[e.Data.Parent] = append(members[e.Data.Parent], e)
			if opts.Collapsed[e.Data.Parent] {
				redirect[e.Data.ID] = e.Data.Parent
			}
		}
	}

	for _, e := range elements {
		switch {
		case e.IsEdge():
		case e.IsCluster():
			if !visible(e.Data.ID) {
				continue
			}
			if opts.Collapsed[e.Data.ID] {
				attrs := append(nodeAttrs(e, opts), "shape=box", "style=\"rounded,filled\"")
				fmt.Fprintf(&buf, "  %q [%s];\n", e.Data.ID, strings.Join(attrs, ", "))
				continue
			}
			fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+e.Data.ID)
			fmt.Fprintf(&buf, "    label=%q;\n", e.Data.Label)
			fmt.Fprintf(&buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n    color=\"#bbbbbb\";\n", cluster.ClusterColor)
			for _, m := range members[e.Data.ID] {
				if visible(m.Data.ID) {
					fmt.Fprintf(&buf, "    %q [%s];\n", m.Data.ID, strings.Join(nodeAttrs(m, opts), ", "))
				}
			}
			buf.WriteString("  }\n")
		case !clusters[e.Data.Parent]:
			if visible(e.Data.ID) {
				fmt.Fprintf(&buf, "  %q [%s];\n", e.Data.ID, strings.Join(nodeAttrs(e, opts), ", "))
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range elements {
		if !e.IsEdge() || !visible(e.Data.ID) {
			continue
		}
		src, dst := e.Data.Source, e.Data.Target
		if r, ok := redirect[src]; ok {
			src = r
		}
		if r, ok := redirect[dst]; ok {
			dst = r
		}
		if src == dst && (redirect[e.Data.Source] != "" || redirect[e.Data.Target] != "") {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", src, dst, strings.Join(edgeAttrs(e, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(e cluster.Element, opts Options) []string {
	o := opts.Overrides[e.Data.ID]
	fill := cluster.NodeColor(e.Data.Kind)
	if o.Fill != "" {
		fill = o.Fill
	}
	size := float64(BaseNodeSize)
	if o.Size > 0 {
		size = o.Size
	}
	if o.Scale > 0 {
		size *= o.Scale
	}
	attrs := []string{
		fmt.Sprintf("label=%q", e.Data.Label),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("width=%s", inches(size)),
		fmt.Sprintf("height=%s", inches(size)),
	}
	if o.Size > 0 || o.Scale > 0 {
		attrs = append(attrs, "fixedsize=true")
	}
	if opts.Pinned && e.Position != nil {
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(e.Position.X), num(-e.Position.Y)))
	}
	return attrs
}

func edgeAttrs(e cluster.Element, opts Options) []string {
	o := opts.Overrides[e.Data.ID]
	color := cluster.EdgeColor(e)
	if o.Line != "" {
		color = o.Line
	}
	if o.Opacity > 0 && o.Opacity < 1 {
		color = withAlpha(color, o.Opacity)
	}
	attrs := []string{
		fmt.Sprintf("color=%q", color),
		fmt.Sprintf("penwidth=%s", num(cluster.EdgeWidth(e)+o.Widen)),
	}
	if opts.EdgeLabels && e.IsSimilarity() {
		attrs = append(attrs, fmt.Sprintf("label=%q", cluster.EdgeLabel(e)), "fontsize=8")
	}
	return attrs
}

// engineAttrs translates pixel tuning values into Graphviz attributes.
func engineAttrs(cfg cluster.AlgorithmConfig) []string {
	var attrs []string
	switch cfg.Engine {
	case "neato":
		if cfg.IdealEdgeLength > 0 {
			attrs = append(attrs, fmt.Sprintf("edge [len=%s]", inches(cfg.IdealEdgeLength)))
		}
		if cfg.NodeSeparation > 0 {
			attrs = append(attrs, fmt.Sprintf("sep=\"+%s\"", num(cfg.NodeSeparation/2)))
		}
		attrs = append(attrs, "mode=KK")
	case "sfdp":
		if cfg.IdealEdgeLength > 0 {
			attrs = append(attrs, fmt.Sprintf("K=%s", inches(cfg.IdealEdgeLength)))
		}
		if cfg.NodeRepulsion > 0 {
			attrs = append(attrs, fmt.Sprintf("repulsiveforce=%s", num(cfg.NodeRepulsion/4500)))
		}
	case "circo":
		if cfg.NodeSeparation > 0 {
			attrs = append(attrs, fmt.Sprintf("mindist=%s", inches(cfg.NodeSeparation)))
		}
	case "dot":
		attrs = append(attrs, "rankdir=TB")
		if cfg.NodeSeparation > 0 {
			attrs = append(attrs, fmt.Sprintf("nodesep=%s", inches(cfg.NodeSeparation)))
		}
		if cfg.RankSeparation > 0 {
			attrs = append(attrs, fmt.Sprintf("ranksep=%s", inches(cfg.RankSeparation)))
		}
	}
	return attrs
}

func inches(px float64) string { return num(px / pointsPerInch) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// withAlpha appends an alpha byte to a #rgb or #rrggbb colour. Other colour
// syntaxes are returned unchanged.
func withAlpha(color string, opacity float64) string {
	if !strings.HasPrefix(color, "#") {
		return color
	}
	hex := color[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color
	}
	return fmt.Sprintf("#%s%02x", hex, int(opacity*255+0.5))
}

// RenderSVG renders a DOT graph to SVG with the given Graphviz engine.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	out, err := render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

func render(ctx context.Context, dot, engine string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if engine != "" {
		gv.SetLayout(graphviz.Layout(engine))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
