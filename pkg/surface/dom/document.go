// Package dom is an in-memory retained surface tree.
//
// A [Document] plays the role of the host page: it is a container for a
// layout root and keeps every property the layout engine pushes to its
// surfaces. Output sinks walk the document to produce SVG, HTML, PNG or
// JSON, and the preview server and window viewer keep one per session.
//
// Element geometry follows absolutely positioned, border-box CSS boxes: a
// child's position is relative to its parent's padding box, so an element's
// document position is its parent's position plus the parent's border plus
// its own left/top. Text content spans the parent's padding box width and is
// shifted vertically by its [geom.Shift].
//
// [geom.Shift]: github.com/matzehuels/anchorui/pkg/geom#Shift
package dom

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Option configures a Document.
type Option func(*Document)

// WithMeasurer sets the text measurer. Defaults to a [FontMeasurer].
func WithMeasurer(m Measurer) Option {
	return func(d *Document) {
		if m != nil {
			d.measurer = m
		}
	}
}

// WithBaseDir resolves relative image sources against dir.
func WithBaseDir(dir string) Option {
	return func(d *Document) { d.baseDir = dir }
}

// WithImageLoading toggles decoding of image sources. When disabled,
// images keep their source but report no natural size.
func WithImageLoading(enabled bool) Option {
	return func(d *Document) { d.loadImages = enabled }
}

// Fetcher downloads remote image sources.
type Fetcher interface {
	Fetch(src string) ([]byte, error)
}

// WithFetcher enables http(s) image sources. Without a fetcher they are
// reported as load anomalies.
func WithFetcher(f Fetcher) Option {
	return func(d *Document) { d.fetcher = f }
}

// WithLayoutHooks routes image-load and font-fallback anomalies of this
// document to h instead of the globally registered hooks. Pass the same
// hooks to the root with ui.WithLayoutHooks to see all events of a tree.
func WithLayoutHooks(h observability.LayoutHooks) Option {
	return func(d *Document) { d.hooks = h }
}

type observer struct {
	key int
	fn  func()
}

// Document is the host container of a layout tree.
type Document struct {
	host          *Element
	width, height float64

	observers []observer
	nextKey   int

	measurer   Measurer
	baseDir    string
	loadImages bool
	fetcher    Fetcher
	hooks      observability.LayoutHooks
}

// NewDocument creates an empty document with the given content size.
func NewDocument(width, height float64, opts ...Option) *Document {
	d := &Document{width: width, height: height, loadImages: true}
	for _, opt := range opts {
		opt(d)
	}
	if d.measurer == nil {
		m := NewFontMeasurer()
		m.hooks = d.hooks
		d.measurer = m
	}
	d.host = &Element{doc: d, kind: surface.KindBox, visible: true, host: true}
	d.host.SetSize(width, height)
	return d
}

func (d *Document) layoutHooks() observability.LayoutHooks {
	if d.hooks != nil {
		return d.hooks
	}
	return observability.Layout()
}

// Surface returns the host element layout roots are created in.
func (d *Document) Surface() surface.Surface { return d.host }

// ContentSize reports the document size.
func (d *Document) ContentSize() (float64, float64) { return d.width, d.height }

// Observe registers fn for resize notifications.
func (d *Document) Observe(fn func()) func() {
	key := d.nextKey
	d.nextKey++
	d.observers = append(d.observers, observer{key: key, fn: fn})
	return func() {
		d.observers = slices.DeleteFunc(d.observers, func(o observer) bool { return o.key == key })
	}
}

// Resize changes the document size and notifies observers synchronously,
// in registration order.
func (d *Document) Resize(width, height float64) {
	d.width, d.height = width, height
	d.host.SetSize(width, height)
	for _, o := range slices.Clone(d.observers) {
		o.fn()
	}
}

// Host returns the top element. Its children are the root surfaces.
func (d *Document) Host() *Element { return d.host }

// Bounds returns the document rectangle.
func (d *Document) Bounds() geom.Box { return geom.Box{Width: d.width, Height: d.height} }

// Walk visits every element below the host depth-first in insertion
// order. Root surfaces have depth 0. Returning false skips the children.
func (d *Document) Walk(fn func(e *Element, depth int) bool) {
	type frame struct {
		e     *Element
		depth int
	}
	var stack []frame
	for i := len(d.host.children) - 1; i >= 0; i-- {
		stack = append(stack, frame{d.host.children[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.e, f.depth) {
			continue
		}
		for i := len(f.e.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.e.children[i], f.depth + 1})
		}
	}
}

// Find returns the element created with id.
func (d *Document) Find(id uint64) (*Element, bool) {
	var found *Element
	d.Walk(func(e *Element, _ int) bool {
		if found != nil {
			return false
		}
		if e.id == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// Len returns the number of elements below the host.
func (d *Document) Len() int {
	n := 0
	d.Walk(func(*Element, int) bool { n++; return true })
	return n
}

func (d *Document) resolve(src string) string {
	if d.baseDir == "" || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(d.baseDir, src)
}

// decode loads an image from a data URI, an http(s) URL through the
// fetcher, or a file path relative to the base directory.
func (d *Document) decode(src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		i := strings.Index(src, ";base64,")
		if i < 0 {
			return nil, fmt.Errorf("data uri %.32q is not base64", src)
		}
		data, err := base64.StdEncoding.DecodeString(src[i+len(";base64,"):])
		if err != nil {
			return nil, fmt.Errorf("data uri: %w", err)
		}
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		if d.fetcher == nil {
			return nil, fmt.Errorf("remote source %q not loaded", src)
		}
		data, err := d.fetcher.Fetch(src)
		if err != nil {
			return nil, err
		}
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	case strings.Contains(src, "://"):
		return nil, fmt.Errorf("unsupported source %q", src)
	}
	return imaging.Open(d.resolve(src), imaging.AutoOrientation(true))
}
