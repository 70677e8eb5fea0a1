package ui

import (
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

func (n Node) textNode() *node {
	nd := n.get()
	if nd == nil {
		return nil
	}
	if nd.text == nil {
		n.t.anomaly(observability.AnomalyMissingSurface, nd.id, nd.kind.String()+" node has no text content")
		return nil
	}
	return nd
}

// SetText replaces the text content and realigns it.
func (n Node) SetText(text string) {
	nd := n.textNode()
	if nd == nil {
		return
	}
	nd.text.text = text
	if s := nd.text.surf; s != nil {
		s.SetText(text)
	}
	n.t.alignText(nd)
}

// SetFont sets the text face. Size is in pixels, weight uses the CSS scale.
func (n Node) SetFont(family string, size float64, weight int) {
	nd := n.textNode()
	if nd == nil {
		return
	}
	nd.text.font = surface.Font{Family: family, Size: size, Weight: weight}
	if s := nd.text.surf; s != nil {
		s.SetFont(nd.text.font)
	}
	n.t.alignText(nd)
}

// SetAlign aligns the text block inside the box. The horizontal part of o
// selects left, center or right alignment; the vertical part shifts the
// block to the top, middle or bottom of the box.
func (n Node) SetAlign(o geom.Origin) {
	nd := n.textNode()
	if nd == nil {
		return
	}
	if !o.Valid() {
		o = geom.CenterTop
	}
	nd.text.align = o
	n.t.alignText(nd)
}

// SetTextColor sets the text fill.
func (n Node) SetTextColor(c surface.Color) {
	nd := n.textNode()
	if nd == nil {
		return
	}
	nd.text.color = c
	if s := nd.text.surf; s != nil {
		s.SetColor(c)
	}
}

// Text returns the text content.
func (n Node) Text() string {
	if nd := n.lookup(); nd != nil && nd.text != nil {
		return nd.text.text
	}
	return ""
}

// Align returns the text alignment.
func (n Node) Align() geom.Origin {
	if nd := n.lookup(); nd != nil && nd.text != nil {
		return nd.text.align
	}
	return geom.CenterTop
}

// Font returns the text face.
func (n Node) Font() surface.Font {
	if nd := n.lookup(); nd != nil && nd.text != nil {
		return nd.text.font
	}
	return surface.DefaultFont
}

// TextColor returns the text fill.
func (n Node) TextColor() surface.Color {
	if nd := n.lookup(); nd != nil && nd.text != nil {
		return nd.text.color
	}
	return surface.Color{}
}

// TextShift returns the vertical shift computed by the last alignment.
func (n Node) TextShift() geom.Shift {
	if nd := n.lookup(); nd != nil && nd.text != nil {
		return nd.text.shift
	}
	return geom.Shift{}
}
