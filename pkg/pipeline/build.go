package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/scene"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// Layout is a built scene: the document container, the layout root inside
// it and the label index of the scene's nodes.
type Layout struct {
	Scene *scene.Scene
	Doc   *dom.Document
	Root  *ui.Root
	Index scene.Index
}

// Resize changes the container size and notifies the layout root.
func (l *Layout) Resize(width, height float64) {
	l.Doc.Resize(width, height)
}

// Node looks up a node by scene label, or by its id string ("GUID3" or
// "3"). The empty name is the root.
func (l *Layout) Node(name string) (ui.Node, error) {
	if name == "" {
		return l.Root.Node, nil
	}
	if n, ok := l.Index[name]; ok && n.Valid() {
		return n, nil
	}
	if id, ok := ui.ParseID(name); ok {
		if n, ok := l.Root.Find(id); ok {
			return n, nil
		}
	}
	return ui.Node{}, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", name)
}

// Build parses the scene of opts and builds it into a fresh document sized
// by opts, the scene, or the defaults, in that order. Resize steps and the
// debug flag are applied before returning.
func Build(ctx context.Context, opts Options) (*Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	s, err := scene.Parse(opts.Scene)
	if err != nil {
		return nil, err
	}
	// The document resolves image sources against opts.BaseDir.
	s.Dir = ""

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, s.Label)
	start := time.Now()

	l, err := build(s, opts)
	count := 0
	if l != nil {
		count = l.Root.Len()
	}
	hooks.OnBuildComplete(ctx, s.Label, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, r := range opts.Resizes {
		l.Resize(r[0], r[1])
	}
	if opts.Debug {
		l.Root.SetDebug(true)
	}
	return l, nil
}

func build(s *scene.Scene, opts Options) (*Layout, error) {
	w, h := opts.Width, opts.Height
	if w == 0 || h == 0 {
		w, h = s.Width, s.Height
	}
	if w == 0 || h == 0 {
		w, h = DefaultWidth, DefaultHeight
	}

	docOpts := []dom.Option{dom.WithBaseDir(opts.BaseDir), dom.WithImageLoading(!opts.NoImages)}
	if opts.Measurer != nil {
		docOpts = append(docOpts, dom.WithMeasurer(opts.Measurer))
	}
	if opts.Fetcher != nil {
		docOpts = append(docOpts, dom.WithFetcher(opts.Fetcher))
	}
	doc := dom.NewDocument(w, h, docOpts...)

	var rootOpts []ui.Option
	if opts.IDs != nil {
		rootOpts = append(rootOpts, ui.WithIDAllocator(opts.IDs))
	}
	if s.Label != "" {
		rootOpts = append(rootOpts, ui.WithLabel(s.Label))
	}
	root := ui.NewRoot(doc, rootOpts...)

	idx, err := scene.Build(root, s)
	if err != nil {
		root.Remove()
		return nil, err
	}
	return &Layout{Scene: s, Doc: doc, Root: root, Index: idx}, nil
}
