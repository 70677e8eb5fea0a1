package sink

import (
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

// visit walks the visible elements of doc. enter runs before an element's
// children, leave after them.
func visit(doc *dom.Document, enter, leave func(e *dom.Element)) {
	var rec func(e *dom.Element)
	rec = func(e *dom.Element) {
		if !e.Visible() {
			return
		}
		enter(e)
		for _, c := range e.Children() {
			rec(c)
		}
		leave(e)
	}
	for _, e := range doc.Host().Children() {
		rec(e)
	}
}

// strokeBox is the rectangle a centered stroke of width bw has to follow to
// paint exactly the border area of b. ok is false when nothing is left.
func strokeBox(b geom.Box, bw float64) (geom.Box, bool) {
	inner := geom.Box{
		Left:   b.Left + bw/2,
		Top:    b.Top + bw/2,
		Width:  b.Width - bw,
		Height: b.Height - bw,
	}
	return inner, bw > 0 && inner.Width >= 0 && inner.Height >= 0
}

// lineX returns the x coordinate a text line is anchored at and the
// horizontal anchor as a fraction of the line width.
func lineX(b geom.Box, h geom.HAlign) (x, anchor float64) {
	switch h {
	case geom.HLeft:
		return b.Left, 0
	case geom.HRight:
		return b.Right(), 1
	default:
		return b.CenterX(), 0.5
	}
}

// labelPoint returns the center point of a debug label inside b.
func labelPoint(b geom.Box, l surface.Label) (x, y float64) {
	switch l.Placement {
	case surface.LabelTop:
		return b.CenterX(), b.Top + l.Size
	case surface.LabelLeft:
		return b.Left + l.Size*1.5, b.CenterY()
	default:
		return b.CenterX(), b.CenterY()
	}
}
