package viewer

import (
	"image"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/render/sink"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// painter is the drawing backend a display list is replayed on.
type painter interface {
	fill(b geom.Box, c surface.Color)
	stroke(b geom.Box, width float64, c surface.Color)
	image(id uint64, img image.Image, b geom.Box)
	text(s string, x, y, size, anchor float64, c surface.Color)
	scissor(b geom.Box, on bool)
}

// replay draws ops on p. Clip rectangles nest by intersection; the backend
// only ever sees the innermost one.
func replay(p painter, ops []sink.Op) {
	var clips []geom.Box
	for _, op := range ops {
		switch op.Kind {
		case sink.OpFill:
			p.fill(op.Box, op.Color)
		case sink.OpStroke:
			p.stroke(op.Box, op.Width, op.Color)
		case sink.OpImage:
			p.image(op.ID, op.Image, op.Box)
		case sink.OpText, sink.OpLabel:
			p.text(op.Text, op.X, op.Y, op.Font.Size, op.Anchor, op.Color)
		case sink.OpClip:
			b := op.Box
			if n := len(clips); n > 0 {
				b = intersect(clips[n-1], b)
			}
			clips = append(clips, b)
			p.scissor(b, true)
		case sink.OpUnclip:
			if len(clips) == 0 {
				continue
			}
			clips = clips[:len(clips)-1]
			if n := len(clips); n > 0 {
				p.scissor(clips[n-1], true)
			} else {
				p.scissor(geom.Box{}, false)
			}
		}
	}
}

func intersect(a, b geom.Box) geom.Box {
	l, t := max(a.Left, b.Left), max(a.Top, b.Top)
	r, btm := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	return geom.Box{Left: l, Top: t, Width: max(r-l, 0), Height: max(btm-t, 0)}
}

// hit returns the id of the topmost painted element under (x, y).
func hit(ops []sink.Op, x, y float64) (uint64, bool) {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Kind {
		case sink.OpFill, sink.OpStroke, sink.OpImage:
		default:
			continue
		}
		b := op.Box
		if x >= b.Left && x < b.Right() && y >= b.Top && y < b.Bottom() {
			return op.ID, true
		}
	}
	return 0, false
}
