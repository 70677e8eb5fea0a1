package ui

import (
	"fmt"
	"math"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
)

// locate relayouts the subtree rooted at slot, depth-first in insertion
// order. Every node in the subtree is visited exactly once.
func (t *tree) locate(slot int32) {
	stack := []int32{slot}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t.locateOne(i)

		children := t.slots[i].children
		for j := len(children) - 1; j >= 0; j-- {
			stack = append(stack, children[j])
		}
	}
}

func (t *tree) locateOne(slot int32) {
	n := &t.slots[slot]
	if n.kind != KindRoot {
		parent := &t.slots[n.parent]
		var border geom.Insets
		if t.positionedByRoot(n) {
			border = t.borderOf(parent)
		}
		n.box = geom.Resolve(parent.box, n.anchors, n.offsets, border)
	}

	if n.surf != nil {
		n.surf.SetSize(n.box.Width, n.box.Height)
		n.surf.SetPosition(n.box.Left, n.box.Top)
	}
	t.draw(n)
	t.postLayout(n)

	t.layoutHooks().OnRelayout(n.id, n.box)
}

// positionedByRoot reports whether the node's local root is the tree root.
func (t *tree) positionedByRoot(n *node) bool {
	return n.localRoot != noSlot && t.slots[n.localRoot].kind == KindRoot
}

// borderOf reads back the border currently drawn on n's surface.
func (t *tree) borderOf(n *node) geom.Insets {
	if n.surf == nil {
		return geom.Insets{}
	}
	left, top := n.surf.BorderWidth()
	return geom.Insets{Left: t.finite(n, left), Top: t.finite(n, top)}
}

func (t *tree) finite(n *node, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.anomaly(observability.AnomalyBorderParse, n.id, fmt.Sprintf("border width %v", v))
		return 0
	}
	return v
}

// postLayout runs the step specific to the node's kind once its own box is
// final for the current pass.
func (t *tree) postLayout(n *node) {
	switch n.kind {
	case KindImage:
		t.fitImage(n)
	case KindText:
		t.alignText(n)
	case KindRoot, KindRect:
	}
}

func (t *tree) fitImage(n *node) {
	img := n.image
	if img == nil || img.surf == nil {
		return
	}
	border := t.borderOf(n)
	img.surf.SetSize(n.box.Width, n.box.Height)
	img.surf.SetPosition(-border.Left, -border.Top)
}

func (t *tree) alignText(n *node) {
	txt := n.text
	if txt == nil || txt.surf == nil {
		return
	}
	txt.surf.SetAlign(txt.align.Horizontal())

	var measured float64
	for _, h := range txt.surf.LineHeights() {
		measured += h
	}
	txt.shift = geom.TextShift(txt.align.Vertical(), measured)
	txt.surf.SetShift(txt.shift)
}
