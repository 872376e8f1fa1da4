// Package cluster implements the force-directed variant of radialflow: a
// graph of task and key-value nodes, grouped into compound cluster nodes,
// positioned by an external layout engine.
//
// # Elements
//
// The graph is a flat list of [Element] values in the shape popularised by
// browser graph libraries: nodes and edges share one slice and an element is
// an edge when it names both a source and a target.
//
//	elems := cluster.Generate(cluster.GenOptions{Seed: 7})
//	elems = cluster.Clusterize(elems)
//
// # Layout
//
// Positions are assigned by an [Engine]. Engines mutate [Element.Position]
// in place and never add or remove elements. [RandomEngine] is built in; the
// Graphviz-backed engine lives in the nodelink renderer, which already owns
// the Graphviz runtime.
//
//	eng := cluster.RandomEngine{Width: 800, Height: 600, Seed: 1}
//	err := eng.Run(ctx, elems, cluster.Random)
//
// # Filtering
//
// A [Filter] hides nodes by kind and similarity edges below a threshold. It
// never mutates the element list; [Filter.Apply] returns a [Visibility]
// describing what to draw.
//
// # Emphasis
//
// [Emphasis] computes the transient style overrides shown when a node is
// tapped: the node grows, its neighbours are tinted and its edges glow.
package cluster
