package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/anchorui/pkg/fonts"
	"github.com/matzehuels/anchorui/pkg/render"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background *surface.Color
	labels     bool
	convert    bool
	svgOpts    []SVGOption

	faces map[surface.Font]font.Face
}

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGBackground fills the canvas before drawing. Without it the PNG is
// transparent where nothing is drawn.
func WithPNGBackground(c surface.Color) PNGOption {
	return func(r *pngRenderer) { r.background = &c }
}

// WithoutPNGLabels suppresses debug labels.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

// WithSVGConversion renders SVG first and rasterizes it with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func WithSVGConversion(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.convert, r.svgOpts = true, opts }
}

// RenderPNG rasterizes the visible elements of doc.
func RenderPNG(doc *dom.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, labels: true, faces: make(map[surface.Font]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.convert {
		return render.ToPNG(RenderSVG(doc, r.svgOpts...), r.scale)
	}

	b := doc.Bounds()
	w, h := int(math.Ceil(b.Width*r.scale)), int(math.Ceil(b.Height*r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render png: empty document %gx%g", b.Width, b.Height)
	}

	dc := gg.NewContext(w, h)
	if r.background != nil {
		dc.SetColor(r.background.NRGBA())
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	visit(doc,
		func(e *dom.Element) { r.enter(dc, e) },
		func(e *dom.Element) { r.leave(dc, e) })

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) enter(dc *gg.Context, e *dom.Element) {
	switch e.Kind() {
	case surface.KindImage:
		r.image(dc, e)
	case surface.KindText:
		r.text(dc, e)
	default:
		r.box(dc, e)
	}
	if e.Clip() {
		cb := e.ContentBox()
		dc.Push()
		dc.DrawRectangle(cb.Left, cb.Top, max(cb.Width, 0), max(cb.Height, 0))
		dc.Clip()
	}
}

func (r *pngRenderer) leave(dc *gg.Context, e *dom.Element) {
	if e.Clip() {
		dc.Pop()
	}
	if !r.labels {
		return
	}
	b := e.Bounds()
	for _, l := range e.Labels() {
		face := r.face(surface.Font{Family: fonts.DefaultFamily, Size: l.Size, Weight: 400})
		if face == nil {
			continue
		}
		x, y := labelPoint(b, l)
		dc.SetFontFace(face)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(l.Text, x, y, 0.5, 0.5)
	}
}

func (r *pngRenderer) box(dc *gg.Context, e *dom.Element) {
	b := e.Bounds()
	if b.Degenerate() {
		return
	}
	if bg, ok := e.Background(); ok {
		dc.SetColor(bg.NRGBA())
		dc.DrawRectangle(b.Left, b.Top, b.Width, b.Height)
		dc.Fill()
	}
	if bw, c, ok := e.Border(); ok {
		if sb, ok := strokeBox(b, bw); ok {
			dc.SetColor(c.NRGBA())
			dc.SetLineWidth(bw)
			dc.DrawRectangle(sb.Left, sb.Top, sb.Width, sb.Height)
			dc.Stroke()
		}
	}
}

func (r *pngRenderer) image(dc *gg.Context, e *dom.Element) {
	img, ok := e.Image()
	if !ok {
		return
	}
	b := e.Bounds()
	w, h := int(math.Round(b.Width)), int(math.Round(b.Height))
	if w <= 0 || h <= 0 {
		return
	}
	dc.DrawImage(imaging.Resize(img, w, h, imaging.Lanczos), int(math.Round(b.Left)), int(math.Round(b.Top)))
}

func (r *pngRenderer) text(dc *gg.Context, e *dom.Element) {
	face := r.face(e.Font())
	if face == nil {
		return
	}
	b := e.Bounds()
	x, anchor := lineX(b, e.Align())

	dc.SetFontFace(face)
	dc.SetColor(e.TextColor().NRGBA())
	y := b.Top
	for _, l := range e.Lines() {
		dc.DrawStringAnchored(l.Text, x, y+l.Height/2, anchor, 0.5)
		y += l.Height
	}
}

func (r *pngRenderer) face(f surface.Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	face, _, err := fonts.NewFace(f.Family, f.Size, f.Weight)
	if err != nil {
		face = nil
	}
	r.faces[f] = face
	return face
}
