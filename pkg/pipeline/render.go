package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/render/sink"
	"github.com/matzehuels/anchorui/pkg/render/treegraph"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l *Layout, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = RenderFormat(ctx, l, format, opts); err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, l *Layout, format string, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l.Doc), nil
	case FormatHTML:
		return sink.RenderHTML(l.Doc, sink.WithTitle(title(l))), nil
	case FormatPNG:
		return sink.RenderPNG(l.Doc, sink.WithScale(scale))
	case FormatPDF:
		return sink.RenderPDF(l.Doc)
	case FormatJSON:
		return sink.RenderJSON(l.Doc, sink.WithJSONTree(l.Root.Node), sink.WithJSONIndent())
	case FormatDOT:
		return []byte(treegraph.ToDOT(l.Root.Node, treegraph.Options{Detailed: opts.Detailed})), nil
	case FormatTree:
		return treegraph.RenderSVG(ctx, treegraph.ToDOT(l.Root.Node, treegraph.Options{Detailed: opts.Detailed}))
	default:
		return nil, ValidateFormat(format)
	}
}

func title(l *Layout) string {
	if l.Scene != nil && l.Scene.Label != "" {
		return l.Scene.Label
	}
	return "anchorui"
}
