package ui

import (
	"fmt"
	"slices"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Node is a handle to a node of a layout tree. Handles are small values
// and may be copied freely. Operations on a removed node are no-ops.
type Node struct {
	t    *tree
	slot int32
	gen  uint32
}

// lookup resolves the handle without reporting stale access.
func (n Node) lookup() *node {
	if n.t == nil || n.slot < 0 || int(n.slot) >= len(n.t.slots) {
		return nil
	}
	nd := &n.t.slots[n.slot]
	if !nd.live || nd.gen != n.gen {
		return nil
	}
	return nd
}

// get resolves the handle for a mutation and reports stale access.
func (n Node) get() *node {
	nd := n.lookup()
	if nd == nil {
		hooks := observability.Layout()
		if n.t != nil {
			hooks = n.t.layoutHooks()
		}
		hooks.OnAnomaly(observability.AnomalyStaleNode, 0, fmt.Sprintf("slot %d generation %d", n.slot, n.gen))
	}
	return nd
}

// Valid reports whether the handle refers to a live node.
func (n Node) Valid() bool { return n.lookup() != nil }

// =============================================================================
// Factories
// =============================================================================

// AddRect creates a plain panel as the last child of n. The new node has
// all anchors and offsets at zero, which yields an empty box at the parent's
// top-left corner.
func (n Node) AddRect(label string) Node {
	return n.add(KindRect, label, "")
}

// AddImage creates an image panel as the last child of n. The image content
// fills the panel box.
func (n Node) AddImage(source, label string) Node {
	return n.add(KindImage, label, source)
}

// AddText creates a text panel as the last child of n. Text is aligned
// center-top until [Node.SetAlign] is called.
func (n Node) AddText(label string) Node {
	return n.add(KindText, label, "")
}

func (n Node) add(kind Kind, label, source string) Node {
	if n.get() == nil {
		return Node{}
	}
	t := n.t
	slot := t.alloc(kind, label, n.slot)

	parent := &t.slots[n.slot]
	parent.children = append(parent.children, slot)

	child := &t.slots[slot]
	if parent.surf != nil {
		child.surf = parent.surf.NewChild(surface.KindBox, child.id)
	} else {
		t.anomaly(observability.AnomalyMissingSurface, child.id, "parent has no surface")
	}

	switch kind {
	case KindImage:
		t.attachImage(child, source)
	case KindText:
		t.attachText(child)
	}

	t.locate(slot)
	return t.handle(slot)
}

func (t *tree) attachImage(n *node, source string) {
	n.image = &imageContent{id: t.ids.Next(), source: source}
	if n.surf == nil {
		return
	}
	s, ok := n.surf.NewChild(surface.KindImage, n.image.id).(surface.ImageSurface)
	if !ok {
		t.anomaly(observability.AnomalyMissingSurface, n.id, "surface cannot host images")
		return
	}
	s.SetSource(source)
	n.image.surf = s
}

func (t *tree) attachText(n *node) {
	n.text = &textContent{
		id:    t.ids.Next(),
		font:  surface.DefaultFont,
		align: geom.CenterTop,
		color: surface.RGBA(0, 0, 0, 1),
	}
	if n.surf == nil {
		return
	}
	s, ok := n.surf.NewChild(surface.KindText, n.text.id).(surface.TextSurface)
	if !ok {
		t.anomaly(observability.AnomalyMissingSurface, n.id, "surface cannot host text")
		return
	}
	s.SetFont(n.text.font)
	s.SetColor(n.text.color)
	n.text.surf = s
}

// =============================================================================
// Geometry
// =============================================================================

// SetAnchors sets the edge baselines as fractions of the parent box and
// relayouts the subtree. Each pair is stored ordered by min/max; values
// outside [0,1] are kept.
func (n Node) SetAnchors(left, right, top, bottom float64) {
	nd := n.get()
	if nd == nil {
		return
	}
	a := geom.Anchors{Left: left, Right: right, Top: top, Bottom: bottom}
	if a.Inverted() {
		n.t.anomaly(observability.AnomalyInvertedAnchors, nd.id, fmt.Sprintf("%v", a))
	}
	if a.OutOfRange() {
		n.t.anomaly(observability.AnomalyAnchorRange, nd.id, fmt.Sprintf("%v", a))
	}
	nd.anchors = a.Normalize()
	n.t.locate(n.slot)
}

// SetOffsets sets the pixel deltas added to each anchor baseline and
// relayouts the subtree.
func (n Node) SetOffsets(left, right, top, bottom float64) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.offsets = geom.Offsets{Left: left, Right: right, Top: top, Bottom: bottom}
	n.t.locate(n.slot)
}

// SetFixed gives the node a fixed pixel size and pins the given origin of
// its box to the anchor point at plus offset. See [geom.Place].
func (n Node) SetFixed(size geom.Size, at geom.Point, origin geom.Origin, offset geom.Point) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.anchors, nd.offsets = geom.Place(size, at, origin, offset)
	n.t.locate(n.slot)
}

// Locate relayouts the node and its subtree with unchanged inputs.
func (n Node) Locate() {
	if n.get() == nil {
		return
	}
	n.t.locate(n.slot)
}

// =============================================================================
// Style
// =============================================================================

// SetColor sets the background fill. It is shown whenever debug mode is off.
func (n Node) SetColor(c surface.Color) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.style.background, nd.style.hasBackground = c, true
	n.t.restyle(nd)
}

// ClearColor removes the background fill.
func (n Node) ClearColor() {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.style.hasBackground = false
	n.t.restyle(nd)
}

// SetBorder sets the border drawn on the box edge.
func (n Node) SetBorder(width float64, c surface.Color) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.style.borderWidth, nd.style.border, nd.style.hasBorder = width, c, true
	n.t.reborder(nd)
}

// ClearBorder removes the border.
func (n Node) ClearBorder() {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.style.hasBorder = false
	n.t.reborder(nd)
}

// restyle redraws the node's own style. Image content depends on the
// border, so the post-layout step runs again; children are not relaid.
func (t *tree) restyle(n *node) {
	t.drawStyle(n)
	t.postLayout(n)
}

// reborder restyles after a border change. Children of the root are
// positioned inside its border, so the whole tree is relaid in that case.
func (t *tree) reborder(n *node) {
	if n.kind == KindRoot {
		t.locate(t.root)
		return
	}
	t.restyle(n)
}

// AddClass tags the node's surface with a style class.
func (n Node) AddClass(name string) {
	nd := n.get()
	if nd == nil || slices.Contains(nd.classes, name) {
		return
	}
	nd.classes = append(nd.classes, name)
	if nd.surf != nil {
		nd.surf.AddClass(name)
	}
}

// RemoveClass removes a style class from the node's surface.
func (n Node) RemoveClass(name string) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.classes = slices.DeleteFunc(nd.classes, func(c string) bool { return c == name })
	if nd.surf != nil {
		nd.surf.RemoveClass(name)
	}
}

// =============================================================================
// Visibility
// =============================================================================

// Hide suppresses the node's presentation. The node keeps its geometry and
// still takes part in layout.
func (n Node) Hide() { n.setVisible(false) }

// Unhide shows the node again.
func (n Node) Unhide() { n.setVisible(true) }

// ToggleVisibility flips between hidden and shown.
func (n Node) ToggleVisibility() {
	nd := n.get()
	if nd == nil {
		return
	}
	n.setVisible(!nd.visible)
}

func (n Node) setVisible(v bool) {
	nd := n.get()
	if nd == nil {
		return
	}
	nd.visible = v
	if nd.surf != nil {
		nd.surf.SetVisible(v)
	}
}

// =============================================================================
// Accessors
// =============================================================================

// ID returns the node's identity.
func (n Node) ID() uint64 {
	if nd := n.lookup(); nd != nil {
		return nd.id
	}
	return 0
}

// IDString returns the id formatted as "GUID<id>".
func (n Node) IDString() string { return FormatID(n.ID()) }

// ContentID returns the id of the image or text content surface.
func (n Node) ContentID() (uint64, bool) {
	nd := n.lookup()
	switch {
	case nd == nil:
		return 0, false
	case nd.image != nil:
		return nd.image.id, true
	case nd.text != nil:
		return nd.text.id, true
	}
	return 0, false
}

// Label returns the human-readable label given at creation.
func (n Node) Label() string {
	if nd := n.lookup(); nd != nil {
		return nd.label
	}
	return ""
}

// Kind returns the node variant.
func (n Node) Kind() Kind {
	if nd := n.lookup(); nd != nil {
		return nd.kind
	}
	return Kind(-1)
}

// Box returns the box computed by the last relayout pass.
func (n Node) Box() geom.Box {
	if nd := n.lookup(); nd != nil {
		return nd.box
	}
	return geom.Box{}
}

// Anchors returns the stored, normalized anchors.
func (n Node) Anchors() geom.Anchors {
	if nd := n.lookup(); nd != nil {
		return nd.anchors
	}
	return geom.Anchors{}
}

// Offsets returns the stored offsets.
func (n Node) Offsets() geom.Offsets {
	if nd := n.lookup(); nd != nil {
		return nd.offsets
	}
	return geom.Offsets{}
}

// Visible reports whether the node is shown.
func (n Node) Visible() bool {
	nd := n.lookup()
	return nd != nil && nd.visible
}

// Classes returns the style classes in the order they were added.
func (n Node) Classes() []string {
	if nd := n.lookup(); nd != nil {
		return slices.Clone(nd.classes)
	}
	return nil
}

// Children returns handles to the direct children in insertion order.
func (n Node) Children() []Node {
	nd := n.lookup()
	if nd == nil {
		return nil
	}
	out := make([]Node, len(nd.children))
	for i, c := range nd.children {
		out[i] = n.t.handle(c)
	}
	return out
}

// Parent returns the node n is nested under. The root has no parent.
func (n Node) Parent() (Node, bool) {
	nd := n.lookup()
	if nd == nil || nd.parent == noSlot {
		return Node{}, false
	}
	return n.t.handle(nd.parent), true
}

// Walk visits n and its descendants depth-first in insertion order. The
// depth of n is 0. Returning false from fn skips the node's children.
func (n Node) Walk(fn func(c Node, depth int) bool) {
	if n.lookup() == nil {
		return
	}
	type frame struct {
		slot  int32
		depth int
	}
	stack := []frame{{n.slot, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(n.t.handle(f.slot), f.depth) {
			continue
		}
		children := n.t.slots[f.slot].children
		for j := len(children) - 1; j >= 0; j-- {
			stack = append(stack, frame{children[j], f.depth + 1})
		}
	}
}

// Find returns the first node in n's subtree, in walk order, with the
// given id.
func (n Node) Find(id uint64) (Node, bool) {
	var found Node
	var ok bool
	n.Walk(func(c Node, _ int) bool {
		if ok {
			return false
		}
		if c.ID() == id {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

func (n Node) String() string {
	nd := n.lookup()
	if nd == nil {
		return "<removed>"
	}
	return fmt.Sprintf("%s %q (%d) %v", nd.kind, nd.label, nd.id, nd.box)
}
