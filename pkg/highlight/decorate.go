package highlight

// Palette used for decoration.
const (
	EdgeColor          = "#64748b"
	HighlightColor     = "#ff0000"
	EdgeWidth          = 1.5
	HighlightEdgeWidth = 3.0
	BorderWidth        = 2.0
	GlowColor          = "rgba(255,0,0,0.5)"
	GlowRadius         = 10.0
)

// EdgeStyle is the derived appearance of one edge.
type EdgeStyle struct {
	Stroke      string
	Width       float64
	Hidden      bool
	Z           int
	Highlighted bool
}

// NodeStyle is the derived appearance of one node. A zero BorderWidth means
// no border.
type NodeStyle struct {
	Border      string
	BorderWidth float64
	Glow        string
	GlowRadius  float64
	Highlighted bool
}

// DecorateEdge derives the style of edge id. Core edges are lifted to z 1.
func DecorateEdge(s Set, filter bool, id string, core bool) EdgeStyle {
	st := EdgeStyle{Stroke: EdgeColor, Width: EdgeWidth}
	if core {
		st.Z = 1
	}
	if s.HasEdge(id) {
		st.Stroke = HighlightColor
		st.Width = HighlightEdgeWidth
		st.Highlighted = true
		return st
	}
	st.Hidden = filter
	return st
}

// DecorateNode derives the style of node id.
func DecorateNode(s Set, id string) NodeStyle {
	if !s.HasNode(id) {
		return NodeStyle{}
	}
	return NodeStyle{
		Border:      HighlightColor,
		BorderWidth: BorderWidth,
		Glow:        GlowColor,
		GlowRadius:  GlowRadius,
		Highlighted: true,
	}
}
