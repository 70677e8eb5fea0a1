package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/anchorui/pkg/fonts"
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
)

const htmlCSS = `
    body { margin: 0; }
    .anchorui-host { position: relative; overflow: hidden; }
    .anchorui-host div, .anchorui-host img, .anchorui-host span { position: absolute; box-sizing: border-box; }
    .anchorui-text { left: 0; width: 100%%; white-space: pre-wrap; }
    .anchorui-label { font-family: %s; color: %s; pointer-events: none; white-space: nowrap; }
    .anchorui-label.top { left: 50%%; top: 0; transform: translateX(-50%%); }
    .anchorui-label.left { left: 2px; top: 50%%; transform: translateY(-50%%); }
    .anchorui-label.center { left: 50%%; top: 50%%; transform: translate(-50%%, -50%%); }`

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title   string
	refresh int
	body    bool
}

// WithTitle sets the page title.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithRefresh makes the page reload itself every n seconds.
func WithRefresh(seconds int) HTMLOption { return func(r *htmlRenderer) { r.refresh = seconds } }

// WithFragment emits only the host element, without the page around it.
func WithFragment() HTMLOption { return func(r *htmlRenderer) { r.body = false } }

// RenderHTML renders doc as nested, absolutely positioned elements. Element
// ids are "GUID<id>"; style classes become class attributes. Hidden
// elements are kept with visibility:hidden.
func RenderHTML(doc *dom.Document, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "anchorui", body: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.body {
		buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		if r.refresh > 0 {
			fmt.Fprintf(&buf, "<meta http-equiv=\"refresh\" content=\"%d\">\n", r.refresh)
		}
		fmt.Fprintf(&buf, "<title>%s</title>\n<style>", html.EscapeString(r.title))
		fmt.Fprintf(&buf, htmlCSS, fonts.CSSFamily(""), labelColor)
		buf.WriteString("\n</style>\n</head>\n<body>\n")
	}

	b := doc.Bounds()
	fmt.Fprintf(&buf, `<div class="anchorui-host" style="width:%spx;height:%spx">`+"\n", num(b.Width), num(b.Height))
	for _, e := range doc.Host().Children() {
		r.element(&buf, e, 1)
	}
	buf.WriteString("</div>\n")

	if r.body {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

func (r *htmlRenderer) element(buf *bytes.Buffer, e *dom.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	var style []string
	if !e.Visible() {
		style = append(style, "visibility:hidden")
	}

	switch e.Kind() {
	case surface.KindText:
		style = append(style, textStyle(e)...)
		fmt.Fprintf(buf, `%s<div id="%s" class="anchorui-text" style="%s">%s</div>`+"\n",
			indent, e.IDString(), html.EscapeString(strings.Join(style, ";")), html.EscapeString(e.Text()))
		return
	case surface.KindImage:
		style = append(style, boxStyle(e)...)
		style = append(style, "user-select:none")
		fmt.Fprintf(buf, `%s<img id="%s" src="%s" draggable="false" alt="" style="%s">`+"\n",
			indent, e.IDString(), html.EscapeString(e.Source()), html.EscapeString(strings.Join(style, ";")))
		return
	}

	style = append(style, boxStyle(e)...)
	if bg, ok := e.Background(); ok {
		style = append(style, "background-color:"+bg.CSS())
	}
	if bw, c, ok := e.Border(); ok {
		style = append(style, fmt.Sprintf("border:%spx solid %s", num(bw), c.CSS()))
	}
	if e.Clip() {
		style = append(style, "overflow:hidden")
	}

	fmt.Fprintf(buf, `%s<div id="%s"%s style="%s">`+"\n", indent, e.IDString(), classAttr(e.Classes()), html.EscapeString(strings.Join(style, ";")))
	for _, c := range e.Children() {
		r.element(buf, c, depth+1)
	}
	for _, l := range e.Labels() {
		fmt.Fprintf(buf, `%s  <span class="anchorui-label %s" style="font-size:%spx">%s</span>`+"\n",
			indent, placementClass(l.Placement), num(l.Size), html.EscapeString(l.Text))
	}
	fmt.Fprintf(buf, "%s</div>\n", indent)
}

func boxStyle(e *dom.Element) []string {
	w, h := e.Size()
	left, top := e.Position()
	return []string{
		"left:" + num(left) + "px",
		"top:" + num(top) + "px",
		"width:" + num(max(w, 0)) + "px",
		"height:" + num(max(h, 0)) + "px",
	}
}

func textStyle(e *dom.Element) []string {
	f := e.Font()
	return []string{
		"top:" + e.Shift().CSS(),
		"text-align:" + cssAlign(e.Align()),
		"color:" + e.TextColor().CSS(),
		fmt.Sprintf("font:%d %spx %s", f.Weight, num(f.Size), fonts.CSSFamily(f.Family)),
	}
}

func cssAlign(h geom.HAlign) string {
	switch h {
	case geom.HLeft:
		return "left"
	case geom.HRight:
		return "right"
	default:
		return "center"
	}
}

func placementClass(p surface.LabelPlacement) string {
	switch p {
	case surface.LabelTop:
		return "top"
	case surface.LabelLeft:
		return "left"
	default:
		return "center"
	}
}
