// Package nodelink renders the force-directed cluster graph with Graphviz.
//
// # Overview
//
// The package has two jobs. [Engine] uses Graphviz as a layout engine for
// [cluster.Element] lists: it emits DOT, runs the engine matching the chosen
// [cluster.Algorithm] and copies the computed centres back into the
// elements. [ToDOT] and [RenderSVG] turn a laid-out graph into a picture.
//
// # Usage
//
//	eng := nodelink.NewEngine(1280, 800)
//	if err := eng.Run(ctx, elems, cluster.ForceDirectedQuality); err != nil {
//	    return err
//	}
//	dot := nodelink.ToDOT(elems, nodelink.Options{Pinned: true, EdgeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, "neato")
//
// # Algorithms
//
// Each algorithm maps to a Graphviz engine:
//
//   - force-directed-quality: neato (stress majorisation)
//   - force-directed-fast: sfdp
//   - circular-clustered: circo
//   - layered: dot
//   - force-directed-classic: fdp
//
// [cluster.Random] has no Graphviz counterpart; [Auto] routes it to
// [cluster.RandomEngine].
//
// # DOT Format
//
// Clusters become "subgraph cluster_<id>" blocks so Graphviz draws their
// bounding boxes. With [Options.Pinned] every positioned node gets a fixed
// pos attribute and the graph is drawn by neato without moving anything.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no system installation is required.
package nodelink
