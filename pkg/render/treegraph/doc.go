// Package treegraph renders a layout tree as a node-link diagram.
//
// # Overview
//
// Each layout node becomes a Graphviz node labelled with its label and id,
// connected to its children in insertion order. Rendering happens in-process
// through go-graphviz, so no Graphviz installation is needed for SVG.
//
// # Usage
//
//	dot := treegraph.ToDOT(root.Node, treegraph.Options{Detailed: true})
//	svg, err := treegraph.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := treegraph.RenderPDF(ctx, dot)
//	png, err := treegraph.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the computed box, anchors and offsets
//
// Hidden nodes are drawn dashed; nodes in debug mode are filled with their
// debug color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package treegraph
