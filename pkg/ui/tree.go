package ui

import (
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Kind tags the variant of a node. Post-layout behavior is dispatched on it.
type Kind int

const (
	KindRoot  Kind = iota // bound to a container, box snapped to its size
	KindRect              // plain panel
	KindImage             // panel with image content
	KindText              // panel with text content
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindRect:
		return "rect"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

const noSlot int32 = -1

// tree is the arena shared by every handle of one root.
type tree struct {
	slots []node
	free  []int32
	ids   *IDAllocator
	hooks observability.LayoutHooks

	container Container
	cancel    func()
	root      int32

	resizing bool
	pending  int
}

type style struct {
	background    surface.Color
	hasBackground bool
	borderWidth   float64
	border        surface.Color
	hasBorder     bool
}

type textContent struct {
	id    uint64
	surf  surface.TextSurface
	text  string
	font  surface.Font
	align geom.Origin
	color surface.Color
	shift geom.Shift
}

type imageContent struct {
	id     uint64
	surf   surface.ImageSurface
	source string
}

type node struct {
	id    uint64
	gen   uint32
	live  bool
	kind  Kind
	label string

	parent    int32
	localRoot int32
	children  []int32

	anchors geom.Anchors
	offsets geom.Offsets
	box     geom.Box

	style   style
	debug   bool
	labels  []surface.Surface
	visible bool
	classes []string

	surf  surface.Surface
	text  *textContent
	image *imageContent
}

func (t *tree) layoutHooks() observability.LayoutHooks {
	if t.hooks != nil {
		return t.hooks
	}
	return observability.Layout()
}

func (t *tree) anomaly(kind observability.Anomaly, id uint64, detail string) {
	t.layoutHooks().OnAnomaly(kind, id, detail)
}

// alloc reserves a slot for a new live node. It may grow the arena, so
// pointers into t.slots taken before the call are invalid afterwards.
func (t *tree) alloc(kind Kind, label string, parent int32) int32 {
	id := t.ids.Next()

	var slot int32
	var gen uint32
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
		gen = t.slots[slot].gen
	} else {
		slot = int32(len(t.slots))
		t.slots = append(t.slots, node{})
	}

	t.slots[slot] = node{
		id:        id,
		gen:       gen,
		live:      true,
		kind:      kind,
		label:     label,
		parent:    parent,
		localRoot: parent,
		visible:   true,
	}
	return slot
}

// release frees the subtree rooted at slot. Surfaces are not touched.
func (t *tree) release(slot int32) {
	stack := []int32{slot}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.slots[i]
		stack = append(stack, n.children...)
		*n = node{gen: n.gen + 1}
		t.free = append(t.free, i)
	}
}

func (t *tree) handle(slot int32) Node {
	return Node{t: t, slot: slot, gen: t.slots[slot].gen}
}
