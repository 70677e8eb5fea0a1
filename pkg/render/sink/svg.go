package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/anchorui/pkg/fonts"
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

const labelColor = "#000000"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background *surface.Color
	embed      bool
	labels     bool
}

// WithBackground fills the whole canvas before drawing.
func WithBackground(c surface.Color) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// WithEmbeddedImages inlines decoded images as PNG data URIs instead of
// referencing their source.
func WithEmbeddedImages() SVGOption { return func(r *svgRenderer) { r.embed = true } }

// WithoutLabels suppresses debug labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG renders the visible elements of doc as an SVG document the size
// of the document.
func RenderSVG(doc *dom.Document, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	b := doc.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(b.Width), num(b.Height), b.Width, b.Height)
	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" %s/>`+"\n", fillAttrs(*r.background))
	}

	visit(doc,
		func(e *dom.Element) { r.enter(&buf, e) },
		func(e *dom.Element) { r.leave(&buf, e) })

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) enter(buf *bytes.Buffer, e *dom.Element) {
	fmt.Fprintf(buf, `<g id="%s"%s>`+"\n", e.IDString(), classAttr(e.Classes()))

	switch e.Kind() {
	case surface.KindImage:
		r.image(buf, e)
	case surface.KindText:
		r.text(buf, e)
	default:
		r.box(buf, e)
	}

	if e.Clip() {
		cb := e.ContentBox()
		clipID := "clip-" + e.IDString()
		fmt.Fprintf(buf, `<clipPath id="%s"><rect %s/></clipPath>`+"\n", clipID, rectAttrs(cb))
		fmt.Fprintf(buf, `<g clip-path="url(#%s)">`+"\n", clipID)
	}
}

func (r *svgRenderer) leave(buf *bytes.Buffer, e *dom.Element) {
	if e.Clip() {
		buf.WriteString("</g>\n")
	}
	if r.labels {
		b := e.Bounds()
		for _, l := range e.Labels() {
			x, y := labelPoint(b, l)
			fmt.Fprintf(buf, `<text class="debug-label" x="%s" y="%s" font-family="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				num(x), num(y), html.EscapeString(fonts.CSSFamily("")), num(l.Size), labelColor, html.EscapeString(l.Text))
		}
	}
	buf.WriteString("</g>\n")
}

func (r *svgRenderer) box(buf *bytes.Buffer, e *dom.Element) {
	b := e.Bounds()
	if b.Degenerate() {
		return
	}
	if bg, ok := e.Background(); ok {
		fmt.Fprintf(buf, `<rect %s %s/>`+"\n", rectAttrs(b), fillAttrs(bg))
	}
	if bw, c, ok := e.Border(); ok {
		if sb, ok := strokeBox(b, bw); ok {
			fmt.Fprintf(buf, `<rect %s fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
				rectAttrs(sb), c.Hex(), num(c.A), num(bw))
		}
	}
}

func (r *svgRenderer) image(buf *bytes.Buffer, e *dom.Element) {
	b := e.Bounds()
	if b.Degenerate() {
		return
	}
	href := e.Source()
	if img, ok := e.Image(); ok && r.embed {
		var data bytes.Buffer
		if err := imaging.Encode(&data, img, imaging.PNG); err == nil {
			href = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data.Bytes())
		}
	}
	if href == "" {
		return
	}
	fmt.Fprintf(buf, `<image %s href="%s" preserveAspectRatio="none"/>`+"\n", rectAttrs(b), html.EscapeString(href))
}

func (r *svgRenderer) text(buf *bytes.Buffer, e *dom.Element) {
	b := e.Bounds()
	f := e.Font()
	x, anchor := lineX(b, e.Align())

	fmt.Fprintf(buf, `<text font-family="%s" font-size="%s" font-weight="%d" %s text-anchor="%s" dominant-baseline="central">`+"\n",
		html.EscapeString(fonts.CSSFamily(f.Family)), num(f.Size), f.Weight, fillAttrs(e.TextColor()), textAnchor(anchor))
	y := b.Top
	for _, l := range e.Lines() {
		fmt.Fprintf(buf, `<tspan x="%s" y="%s">%s</tspan>`+"\n", num(x), num(y+l.Height/2), html.EscapeString(l.Text))
		y += l.Height
	}
	buf.WriteString("</text>\n")
}

func textAnchor(anchor float64) string {
	switch anchor {
	case 0:
		return "start"
	case 1:
		return "end"
	default:
		return "middle"
	}
}

func rectAttrs(b geom.Box) string {
	return fmt.Sprintf(`x="%s" y="%s" width="%s" height="%s"`, num(b.Left), num(b.Top), num(b.Width), num(b.Height))
}

func fillAttrs(c surface.Color) string {
	if c.A >= 1 {
		return fmt.Sprintf(`fill="%s"`, c.Hex())
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, c.Hex(), num(c.A))
}

func classAttr(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	return ` class="` + html.EscapeString(strings.Join(classes, " ")) + `"`
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100+0, 'f', -1, 64)
}
