package dom

import (
	"fmt"
	"image"
	"slices"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Element is one retained surface. It implements [surface.Surface],
// [surface.ImageSurface], [surface.TextSurface] and [surface.Clipper];
// which parts are meaningful depends on its kind.
type Element struct {
	doc    *Document
	parent *Element
	kind   surface.Kind
	id     uint64
	host   bool

	width, height float64
	left, top     float64

	background    surface.Color
	hasBackground bool
	borderWidth   float64
	border        surface.Color
	hasBorder     bool

	visible bool
	clip    bool
	classes []string

	children []*Element
	labels   []*Element
	label    *surface.Label

	text  string
	font  surface.Font
	align geom.HAlign
	color surface.Color
	shift geom.Shift

	source       string
	img          image.Image
	natW, natH   float64
	imageDecoded bool
}

var (
	_ surface.ImageSurface = (*Element)(nil)
	_ surface.TextSurface  = (*Element)(nil)
	_ surface.Clipper      = (*Element)(nil)
)

// =============================================================================
// surface.Surface
// =============================================================================

func (e *Element) ID() uint64 { return e.id }

func (e *Element) SetSize(w, h float64)          { e.width, e.height = w, h }
func (e *Element) SetPosition(left, top float64) { e.left, e.top = left, top }

func (e *Element) SetBackground(c surface.Color) { e.background, e.hasBackground = c, true }
func (e *Element) ClearBackground()              { e.hasBackground = false }

func (e *Element) SetBorder(width float64, c surface.Color) {
	e.borderWidth, e.border, e.hasBorder = width, c, true
}

func (e *Element) ClearBorder() { e.borderWidth, e.hasBorder = 0, false }

// BorderWidth returns the same thickness for the left and top edges; an
// element without a border reports zero.
func (e *Element) BorderWidth() (float64, float64) {
	b := e.effectiveBorder()
	return b, b
}

func (e *Element) SetVisible(visible bool) { e.visible = visible }
func (e *Element) SetClip(clip bool)       { e.clip = clip }

func (e *Element) AddClass(name string) {
	if !slices.Contains(e.classes, name) {
		e.classes = append(e.classes, name)
	}
}

func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

func (e *Element) NewChild(kind surface.Kind, id uint64) surface.Surface {
	c := &Element{doc: e.doc, parent: e, kind: kind, id: id, visible: true}
	if kind == surface.KindText {
		c.font = surface.DefaultFont
		c.align = geom.HCenter
		c.color = surface.RGBA(0, 0, 0, 1)
	}
	e.children = append(e.children, c)
	return c
}

func (e *Element) AddLabel(l surface.Label) surface.Surface {
	c := &Element{doc: e.doc, parent: e, kind: surface.KindText, visible: true, label: &l}
	e.labels = append(e.labels, c)
	return c
}

func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	p.labels = slices.DeleteFunc(p.labels, func(c *Element) bool { return c == e })
	e.parent = nil
}

// =============================================================================
// surface.TextSurface
// =============================================================================

func (e *Element) SetText(text string)      { e.text = text }
func (e *Element) SetFont(f surface.Font)   { e.font = f }
func (e *Element) SetAlign(h geom.HAlign)   { e.align = h }
func (e *Element) SetColor(c surface.Color) { e.color = c }
func (e *Element) SetShift(s geom.Shift)    { e.shift = s }

// LineHeights measures the text wrapped to the width of the parent's
// padding box.
func (e *Element) LineHeights() []float64 {
	lines := e.Lines()
	out := make([]float64, len(lines))
	for i, l := range lines {
		out[i] = l.Height
	}
	return out
}

// Lines returns the wrapped, measured lines of a text element.
func (e *Element) Lines() []Line {
	if e.text == "" || e.doc == nil {
		return nil
	}
	maxWidth := 0.0
	if e.parent != nil {
		maxWidth = e.parent.contentBox().Width
	}
	return e.doc.measurer.Measure(e.text, e.font, maxWidth)
}

// =============================================================================
// surface.ImageSurface
// =============================================================================

// SetSource assigns the image source and decodes it to learn its natural
// size. Decoding failures are reported as anomalies.
func (e *Element) SetSource(src string) {
	e.source = src
	e.img, e.natW, e.natH, e.imageDecoded = nil, 0, 0, false
	if src == "" || e.doc == nil || !e.doc.loadImages {
		return
	}

	img, err := e.doc.decode(src)
	if err != nil {
		e.doc.layoutHooks().OnAnomaly(observability.AnomalyImageLoad, e.id, err.Error())
		return
	}
	b := img.Bounds()
	e.img, e.natW, e.natH, e.imageDecoded = img, float64(b.Dx()), float64(b.Dy()), true
}

func (e *Element) NaturalSize() (float64, float64, bool) {
	return e.natW, e.natH, e.imageDecoded
}

// =============================================================================
// Accessors
// =============================================================================

func (e *Element) Kind() surface.Kind { return e.kind }

// Parent returns the enclosing element; nil for the host and for removed
// elements.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in insertion order, labels excluded.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Labels returns the annotations attached to the element.
func (e *Element) Labels() []surface.Label {
	out := make([]surface.Label, 0, len(e.labels))
	for _, l := range e.labels {
		out = append(out, *l.label)
	}
	return out
}

func (e *Element) Size() (w, h float64)          { return e.width, e.height }
func (e *Element) Position() (left, top float64) { return e.left, e.top }

func (e *Element) Background() (surface.Color, bool) { return e.background, e.hasBackground }

func (e *Element) Border() (float64, surface.Color, bool) {
	return e.borderWidth, e.border, e.hasBorder
}

// Visible reports the element's own visibility flag.
func (e *Element) Visible() bool { return e.visible }

// Shown reports whether the element and all its ancestors are visible.
func (e *Element) Shown() bool {
	for c := e; c != nil; c = c.parent {
		if !c.visible {
			return false
		}
	}
	return true
}

func (e *Element) Clip() bool               { return e.clip }
func (e *Element) Classes() []string        { return slices.Clone(e.classes) }
func (e *Element) Text() string             { return e.text }
func (e *Element) Font() surface.Font       { return e.font }
func (e *Element) Align() geom.HAlign       { return e.align }
func (e *Element) TextColor() surface.Color { return e.color }
func (e *Element) Shift() geom.Shift        { return e.shift }
func (e *Element) Source() string           { return e.source }

// Image returns the decoded image of an image element.
func (e *Element) Image() (image.Image, bool) { return e.img, e.img != nil }

// IDString returns the markup id, "GUID<id>".
func (e *Element) IDString() string { return fmt.Sprintf("GUID%d", e.id) }

// =============================================================================
// Geometry
// =============================================================================

func (e *Element) effectiveBorder() float64 {
	if !e.hasBorder {
		return 0
	}
	return e.borderWidth
}

// Bounds returns the element's border box in document coordinates.
func (e *Element) Bounds() geom.Box {
	if e.parent == nil {
		if e.host {
			return geom.Box{Width: e.width, Height: e.height}
		}
		return geom.Box{Width: e.width, Height: e.height, Left: e.left, Top: e.top}
	}

	origin := e.parent.contentBox()
	if e.kind == surface.KindText && e.label == nil {
		var h float64
		for _, l := range e.Lines() {
			h += l.Height
		}
		return geom.Box{
			Width:  origin.Width,
			Height: h,
			Left:   origin.Left,
			Top:    origin.Top + e.shift.Resolve(origin.Height),
		}
	}
	return geom.Box{Width: e.width, Height: e.height, Left: origin.Left + e.left, Top: origin.Top + e.top}
}

// contentBox returns the padding box in document coordinates, the
// containing block of absolutely positioned children.
func (e *Element) contentBox() geom.Box {
	b := e.Bounds()
	bw := e.effectiveBorder()
	return geom.Box{
		Width:  b.Width - 2*bw,
		Height: b.Height - 2*bw,
		Left:   b.Left + bw,
		Top:    b.Top + bw,
	}
}

// ContentBox returns the area inside the border in document coordinates.
func (e *Element) ContentBox() geom.Box { return e.contentBox() }
