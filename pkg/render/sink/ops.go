package sink

import (
	"image"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

// OpKind is the kind of a draw operation.
type OpKind int

const (
	OpFill    OpKind = iota // fill Box with Color
	OpStroke                // stroke Box with Color, line Width
	OpImage                 // draw Image scaled into Box
	OpText                  // draw one line of Text anchored at X, Y
	OpLabel                 // draw a debug label centered at X, Y
	OpClip                  // intersect the clip with Box
	OpUnclip                // restore the clip of the matching OpClip
)

// Op is one draw operation in document coordinates.
type Op struct {
	Kind  OpKind
	ID    uint64
	Box   geom.Box
	Color surface.Color
	Width float64

	Image image.Image

	Text   string
	Font   surface.Font
	X, Y   float64
	Anchor float64 // horizontal anchor as a fraction of the text width
}

// RenderOps flattens doc into draw operations for immediate-mode
// backends. Operations come in painting order, with the same visibility
// and label rules as the other sinks.
func RenderOps(doc *dom.Document) []Op {
	var ops []Op
	visit(doc,
		func(e *dom.Element) { ops = enterOps(ops, e) },
		func(e *dom.Element) { ops = leaveOps(ops, e) })
	return ops
}

func enterOps(ops []Op, e *dom.Element) []Op {
	b := e.Bounds()
	switch e.Kind() {
	case surface.KindImage:
		if img, ok := e.Image(); ok && !b.Degenerate() {
			ops = append(ops, Op{Kind: OpImage, ID: e.ID(), Box: b, Image: img})
		}
	case surface.KindText:
		x, anchor := lineX(b, e.Align())
		y := b.Top
		for _, l := range e.Lines() {
			ops = append(ops, Op{Kind: OpText, ID: e.ID(), Box: b, Text: l.Text, Font: e.Font(),
				Color: e.TextColor(), X: x, Y: y + l.Height/2, Anchor: anchor})
			y += l.Height
		}
	default:
		if b.Degenerate() {
			break
		}
		if bg, ok := e.Background(); ok {
			ops = append(ops, Op{Kind: OpFill, ID: e.ID(), Box: b, Color: bg})
		}
		if bw, c, ok := e.Border(); ok {
			if sb, ok := strokeBox(b, bw); ok {
				ops = append(ops, Op{Kind: OpStroke, ID: e.ID(), Box: sb, Color: c, Width: bw})
			}
		}
	}
	if e.Clip() {
		ops = append(ops, Op{Kind: OpClip, ID: e.ID(), Box: e.ContentBox()})
	}
	return ops
}

func leaveOps(ops []Op, e *dom.Element) []Op {
	if e.Clip() {
		ops = append(ops, Op{Kind: OpUnclip, ID: e.ID()})
	}
	b := e.Bounds()
	for _, l := range e.Labels() {
		x, y := labelPoint(b, l)
		ops = append(ops, Op{Kind: OpLabel, ID: e.ID(), Text: l.Text, X: x, Y: y, Anchor: 0.5,
			Font: surface.Font{Size: l.Size, Weight: 400}, Color: surface.RGBA(0, 0, 0, 1)})
	}
	return ops
}
