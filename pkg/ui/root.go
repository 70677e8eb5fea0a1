package ui

import (
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Container is the host element a root is bound to.
type Container interface {
	// Surface returns the surface the root surface is created in.
	Surface() surface.Surface
	// ContentSize reports the current content box size.
	ContentSize() (width, height float64)
	// Observe registers fn to be called, without arguments, whenever the
	// content box changes. The returned function unregisters it.
	Observe(fn func()) (cancel func())
}

// Option configures a root at construction.
type Option func(*rootConfig)

type rootConfig struct {
	ids   *IDAllocator
	label string
	hooks observability.LayoutHooks
}

// WithIDAllocator draws the tree's ids from a instead of the process-wide
// [SharedIDAllocator]. Trees sharing one allocator never collide.
func WithIDAllocator(a *IDAllocator) Option {
	return func(c *rootConfig) {
		if a != nil {
			c.ids = a
		}
	}
}

// WithLabel sets the root's debug label.
func WithLabel(label string) Option {
	return func(c *rootConfig) { c.label = label }
}

// WithLayoutHooks routes relayout, resize and anomaly events of this tree
// to h instead of the globally registered hooks.
func WithLayoutHooks(h observability.LayoutHooks) Option {
	return func(c *rootConfig) { c.hooks = h }
}

// Root is the top node of a tree. Its box is snapped to the container's
// content size instead of being derived from anchors.
type Root struct {
	Node
}

// NewRoot creates a tree bound to c. The root snaps to the container's
// current content size and registers for resize notifications.
func NewRoot(c Container, opts ...Option) *Root {
	cfg := rootConfig{label: "root"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = sharedIDs
	}

	t := &tree{ids: cfg.ids, hooks: cfg.hooks, container: c}
	t.root = t.alloc(KindRoot, cfg.label, noSlot)
	r := &Root{Node: t.handle(t.root)}

	n := &t.slots[t.root]
	if c != nil && c.Surface() != nil {
		n.surf = c.Surface().NewChild(surface.KindBox, n.id)
		if cl, ok := n.surf.(surface.Clipper); ok {
			cl.SetClip(true)
		}
	} else {
		t.anomaly(observability.AnomalyMissingSurface, n.id, "container has no surface")
	}

	t.snap()
	t.locate(t.root)

	if c != nil {
		t.cancel = c.Observe(r.HandleResize)
	}
	return r
}

// snap sets the root box to the container's content size at the origin.
func (t *tree) snap() {
	var w, h float64
	if t.container != nil {
		w, h = t.container.ContentSize()
	}
	t.slots[t.root].box = geom.Box{Width: w, Height: h}
}

// HandleResize processes one container resize notification: the root
// resnaps, redraws and relayouts every descendant. Notifications arriving
// while one is being handled are processed in full afterwards, in order.
func (r *Root) HandleResize() {
	if r.get() == nil {
		return
	}
	t := r.t
	if t.resizing {
		t.pending++
		return
	}

	t.resizing = true
	defer func() { t.resizing = false }()
	for {
		t.snap()
		box := t.slots[t.root].box
		t.layoutHooks().OnResize(t.slots[t.root].id, box.Width, box.Height)
		t.locate(t.root)

		if t.pending == 0 || !r.Valid() {
			return
		}
		t.pending--
	}
}

// Resizing reports whether a resize notification is being processed.
func (r *Root) Resizing() bool { return r.t != nil && r.t.resizing }

// Allocator returns the id allocator of the tree.
func (r *Root) Allocator() *IDAllocator {
	if r.t == nil {
		return nil
	}
	return r.t.ids
}

// Len returns the number of live nodes in the tree, the root included.
func (r *Root) Len() int {
	if r.t == nil {
		return 0
	}
	return len(r.t.slots) - len(r.t.free)
}
