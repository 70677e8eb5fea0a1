// Package pkg provides the libraries behind anchorui, a retained-mode
// layout engine for overlay UI.
//
// # Overview
//
// A layout tree is a hierarchy of nodes living inside a resizable
// container. Every node is placed by four anchors (fractions of its
// parent's size) and four pixel offsets from those anchors. When the
// container resizes, the root resnaps to it and every descendant is
// repositioned top-down. The pkg directory is organized into four areas:
//
//  1. [ui] and [geom] - the layout core (nodes, anchors, debug mode)
//  2. [surface] - the visual backend the core pushes geometry and style to
//  3. [scene], [pipeline], [render] - scene files and output formats
//  4. [cache], [httputil], [observability], [errors] - supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	TOML scene file
//	         ↓
//	    [scene] package (parse + validate)
//	         ↓
//	    [ui] package (node tree inside a [surface/dom] container)
//	         ↓
//	    container resizes, debug and visibility toggles
//	         ↓
//	    [render/sink] package (SVG/HTML/PNG/PDF/JSON)
//
// # Quick Start
//
// Build a tree by hand and render it:
//
//	doc := dom.NewDocument(800, 600)
//	root := ui.NewRoot(doc)
//
//	panel := root.AddRect("panel")
//	panel.SetAnchors(0, 0.5, 0, 1)
//	panel.SetOffsets(10, -10, 10, -10)
//
//	doc.Resize(1024, 768) // panel follows
//	svg := sink.RenderSVG(doc)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ScenePath: "hud.toml",
//	    Resizes:   [][2]float64{{1024, 768}},
//	    Formats:   []string{"svg", "png"},
//	})
//
// # Main Packages
//
// ## Layout Core
//
// [ui] - Nodes, the root that tracks its container, anchors and offsets,
// fixed-size placement, debug mode and visibility. Node handles are
// generational; operations on removed nodes are ignored and reported.
//
// [geom] - Boxes, anchors, offsets, origins and the anchor resolution
// formula.
//
// ## Surfaces and Output
//
// [surface] - The interface between the core and a visual backend.
// [surface/dom] is a retained element tree with font measurement and image
// decoding.
//
// [render/sink] - Output formats for a laid-out document.
// [render/treegraph] - The node tree as a Graphviz diagram.
//
// ## Scenes and Orchestration
//
// [scene] - TOML scene files. [pipeline] - Build, resize, render and cache.
//
// ## Infrastructure
//
// [cache] - Artifact cache (file, Redis, null). [httputil] - Remote image
// fetching with an on-disk cache. [observability] - Hooks for anomalies,
// relayouts, pipeline runs, cache and server events. [errors] - Structured
// error codes. [fonts] - Embedded and system fonts.
//
// [ui]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/ui
// [geom]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/geom
// [surface]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/surface
// [surface/dom]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/surface/dom
// [scene]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/render/sink
// [render/treegraph]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/render/treegraph
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/anchorui/pkg/fonts
package pkg
