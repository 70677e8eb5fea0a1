package treegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/anchorui/pkg/render"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// Options configures tree diagram generation.
type Options struct {
	// Detailed includes the box, anchors and offsets in node labels.
	// When false, only the label and id are shown.
	Detailed bool
}

// ToDOT converts the subtree rooted at n to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(n ui.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	n.Walk(func(c ui.Node, depth int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", c.IDString(), strings.Join(fmtAttrs(c, depth, opts.Detailed), ", "))
		for _, child := range c.Children() {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", c.IDString(), child.IDString()))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n ui.Node, detailed bool) string {
	head := fmt.Sprintf("%s (%d)", n.Label(), n.ID())
	if !detailed {
		return head
	}
	a, o := n.Anchors(), n.Offsets()
	parts := []string{
		head,
		"kind: " + n.Kind().String(),
		"box: " + n.Box().String(),
		fmt.Sprintf("anchors: %g %g %g %g", a.Left, a.Right, a.Top, a.Bottom),
		fmt.Sprintf("offsets: %g %g %g %g", o.Left, o.Right, o.Top, o.Bottom),
	}
	if n.Kind() == ui.KindText {
		parts = append(parts, fmt.Sprintf("text: %q", n.Text()))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n ui.Node, depth int, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch n.Kind() {
	case ui.KindImage:
		attrs = append(attrs, "shape=component")
	case ui.KindText:
		attrs = append(attrs, "shape=note")
	}
	if depth == 0 {
		attrs = append(attrs, "peripheries=2")
	}

	style := "rounded,filled"
	if !n.Visible() {
		style += ",dashed"
		attrs = append(attrs, "fontcolor=grey40")
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", style))
	if n.Debug() {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", ui.DebugColor(n.ID()).Hex()))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the diagram scales like the other sinks' output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, "pdf", 1)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, "png", scale)
}
