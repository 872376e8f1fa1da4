// Package render groups the output sinks for both views.
//
// # Overview
//
// Rendering never computes positions. Each sink takes an already placed
// model and turns it into bytes:
//
//   - Radial scenes (in [radial] subpackage): SVG and PNG
//   - Cluster elements (in [nodelink] subpackage): DOT and SVG via Graphviz
//
// # Radial Scenes
//
// The [radial] subpackage draws a [scene.Scene], the routed and decorated
// result of a radial layout pass. Highlighted nodes and edges are marked so
// a rendered selection matches the live one.
//
//	s := scene.Build(layout, tracker, route.DefaultRouter())
//	svg := radial.RenderSVG(s)
//	png, err := radial.RenderPNG(s, radial.WithScale(2))
//
// # Cluster Diagrams
//
// The [nodelink] subpackage converts cluster elements to DOT, one compound
// subgraph per task, and renders it with the embedded Graphviz library. The
// same subpackage hosts the Graphviz-backed layout engine used by the
// force-directed view.
//
//	dot := nodelink.ToDOT(elements, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, "fdp")
//
// [radial]: github.com/matzehuels/radialflow/pkg/render/radial
// [nodelink]: github.com/matzehuels/radialflow/pkg/render/nodelink
// [scene.Scene]: github.com/matzehuels/radialflow/pkg/scene.Scene
package render
