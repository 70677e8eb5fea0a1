package sink

import (
	"github.com/matzehuels/anchorui/pkg/render"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the document as PDF via SVG conversion. Images are
// embedded so the PDF does not depend on their source paths.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(doc *dom.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(doc, append([]SVGOption{WithEmbeddedImages()}, r.svgOpts...)...)
	return render.ToPDF(svg)
}
