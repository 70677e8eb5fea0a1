// Package surface defines the drawing substrate the layout core pushes
// geometry and style to.
//
// The layout engine never draws anything itself. For every node it creates a
// [Surface] nested in its parent's surface and, on each layout pass, sets the
// surface's size, position, background, border and visibility. Image and
// text leaves additionally own a content surface ([ImageSurface],
// [TextSurface]) nested inside the node's surface.
//
// The in-memory retained implementation lives in [dom]; output sinks in
// pkg/render/sink read a [dom.Document] back.
//
// [dom]: github.com/matzehuels/anchorui/pkg/surface/dom
// [dom.Document]: github.com/matzehuels/anchorui/pkg/surface/dom#Document
package surface

import "github.com/matzehuels/anchorui/pkg/geom"

// Kind selects what a child surface represents.
type Kind int

const (
	KindBox   Kind = iota // plain rectangle (a div)
	KindImage             // image content
	KindText              // text content
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// LabelPlacement positions a debug label inside its surface.
type LabelPlacement int

const (
	LabelTop    LabelPlacement = iota // centered along the top edge
	LabelLeft                         // at the left edge, vertically centered
	LabelCenter                       // centered in the box
)

// Label is an annotation drawn inside a surface.
type Label struct {
	Text      string
	Placement LabelPlacement
	Size      float64 // font size in pixels
}

// Surface is a retained drawable rectangle.
type Surface interface {
	// ID returns the identity the surface was created with.
	ID() uint64

	SetSize(w, h float64)
	SetPosition(left, top float64)

	SetBackground(c Color)
	ClearBackground()

	SetBorder(width float64, c Color)
	ClearBorder()
	// BorderWidth reads back the left and top border thickness currently
	// applied. Missing or unreadable values are reported as zero.
	BorderWidth() (left, top float64)

	SetVisible(visible bool)

	AddClass(name string)
	RemoveClass(name string)

	// NewChild creates and attaches a child surface of the given kind.
	NewChild(kind Kind, id uint64) Surface
	// AddLabel attaches an annotation; Remove on the result detaches it.
	AddLabel(l Label) Surface
	// Remove detaches the surface, and everything nested in it, from its
	// parent.
	Remove()
}

// Clipper is implemented by surfaces that can hide content overflowing
// their box. Root surfaces are clipped when supported.
type Clipper interface {
	SetClip(clip bool)
}

// ImageSurface is the content surface of an image leaf.
type ImageSurface interface {
	Surface
	SetSource(src string)
	// NaturalSize reports the intrinsic size of the loaded image.
	NaturalSize() (w, h float64, ok bool)
}

// TextSurface is the content surface of a text leaf.
type TextSurface interface {
	Surface
	SetText(text string)
	SetFont(f Font)
	SetAlign(h geom.HAlign)
	SetColor(c Color)
	// SetShift places the text block vertically inside the parent surface.
	SetShift(s geom.Shift)
	// LineHeights measures the rendered line boxes of the current text.
	LineHeights() []float64
}

// Font describes a text face.
type Font struct {
	Family string
	Size   float64 // pixels
	Weight int     // CSS weight, 100..900
}

// DefaultFont is used by text surfaces until a font is set.
var DefaultFont = Font{Family: "Go", Size: 16, Weight: 400}
