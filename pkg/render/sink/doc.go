// Package sink provides output format renderers for laid-out documents.
//
// # Overview
//
// A "sink" transforms a [dom.Document], after the layout engine has pushed
// geometry and style to it, into a final output format:
//
//   - SVG: Scalable vector graphics, one group per element
//   - HTML: Absolutely positioned elements, the markup a browser host shows
//   - PNG: Raster image output, drawn natively with gg
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Element boxes for external tools and tests
//   - Ops: A flat display list for immediate-mode windows
//
// Every sink walks the document depth-first in insertion order, so later
// siblings paint over earlier ones and children over their parents. Debug
// labels are painted after an element's children. Elements whose visibility
// flag is off are skipped together with their subtree; their geometry is
// still present in the JSON output.
//
// # SVG Output
//
//	svg := sink.RenderSVG(doc,
//	    sink.WithBackground(surface.RGBA(255, 255, 255, 1)),
//	    sink.WithEmbeddedImages(),
//	)
//
// # PDF and PNG Output
//
// [RenderPDF] renders SVG first and converts it via [render.ToPDF].
// [RenderPNG] rasterizes directly; [WithSVGConversion] switches it to the
// rsvg-convert path used for PDF.
//
//	pdf, err := sink.RenderPDF(doc)
//	png, err := sink.RenderPNG(doc, sink.WithScale(2))
//
// [dom.Document]: github.com/matzehuels/anchorui/pkg/surface/dom#Document
// [render.ToPDF]: github.com/matzehuels/anchorui/pkg/render#ToPDF
package sink
