// Package render turns laid-out surface trees into files.
//
// # Overview
//
// The layout core only pushes geometry and style to surfaces; this package
// and its subpackages read an in-memory [dom.Document] back and produce
// visual output:
//
//   - Output sinks for SVG, HTML, PNG, PDF and JSON (in [sink])
//   - Node tree diagrams through Graphviz (in [treegraph])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output always goes this
// way; PNG output is rasterized natively by [sink.RenderPNG] unless
// conversion is requested.
//
//	svg := sink.RenderSVG(doc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Tree Diagrams
//
// The [treegraph] subpackage draws the node tree itself (ids, labels, kinds
// and boxes) as a Graphviz diagram, which helps when debugging deep
// hierarchies.
//
//	dot := treegraph.ToDOT(root.Node, treegraph.Options{Detailed: true})
//	svg, err := treegraph.RenderSVG(ctx, dot)
//
// [dom.Document]: github.com/matzehuels/anchorui/pkg/surface/dom#Document
// [sink]: github.com/matzehuels/anchorui/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/anchorui/pkg/render/sink#RenderPNG
// [treegraph]: github.com/matzehuels/anchorui/pkg/render/treegraph
package render
