// Package pkg provides the libraries behind radialflow.
//
// # Overview
//
// radialflow lays out documents and the sections they reference on
// concentric rings, routes the edges between them and tracks which nodes a
// user has selected. A second view places tasks and their key-values with a
// force-directed layout. The pkg directory is organized into:
//
//  1. [geom] - Angle, position and boundary geometry
//  2. [radial] - Ring membership and the radial layout engine
//  3. [route] - Edge side resolution and path shapes
//  4. [highlight] - Click and double-click selection tracking
//  5. [scene] - Layout, selection and routes combined for drawing
//  6. [cluster] - Task/key-value elements, filters and layout algorithms
//  7. [render] - SVG, PNG and DOT sinks
//  8. [pipeline] - Orchestration (load, layout, select, render)
//
// # Architecture
//
// The typical data flow of the radial view:
//
//	Records (JSON/YAML)
//	       ↓
//	  [radial] package (membership + layout pass)
//	       ↓
//	  [highlight] package (replay clicks)
//	       ↓
//	  [scene] package (route edges, decorate)
//	       ↓
//	  [render] package (SVG/PNG/JSON)
//
// # Quick Start
//
//	records, _ := io.ImportRecords("docs.json")
//	engine := radial.NewEngine(radial.NewMembership(records), radial.DefaultConfig(1280, 800))
//	tracker := highlight.NewTracker(engine.Layout())
//	tracker.Click("docs1")
//	s := scene.Build(engine.Layout(), tracker, route.DefaultRouter())
//	svg := radial.RenderSVG(s)
//
// # Supporting Packages
//
// [config] loads TOML settings, [cache] stores layouts and artifacts on
// disk or in Redis, [observability] exposes Prometheus counters, [watch]
// debounces file changes and [errors] carries coded errors with user-facing
// messages.
//
// [geom]: github.com/matzehuels/radialflow/pkg/geom
// [radial]: github.com/matzehuels/radialflow/pkg/radial
// [route]: github.com/matzehuels/radialflow/pkg/route
// [highlight]: github.com/matzehuels/radialflow/pkg/highlight
// [scene]: github.com/matzehuels/radialflow/pkg/scene
// [cluster]: github.com/matzehuels/radialflow/pkg/cluster
// [render]: github.com/matzehuels/radialflow/pkg/render
// [pipeline]: github.com/matzehuels/radialflow/pkg/pipeline
// [config]: github.com/matzehuels/radialflow/pkg/config
// [cache]: github.com/matzehuels/radialflow/pkg/cache
// [observability]: github.com/matzehuels/radialflow/pkg/observability
// [watch]: github.com/matzehuels/radialflow/pkg/watch
// [errors]: github.com/matzehuels/radialflow/pkg/errors
package pkg
