package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/anchorui/pkg/surface"
)

// Debug overlay constants.
const (
	DebugAlpha       = 0.25
	DebugBorderWidth = 1.0
	DebugLabelSize   = 10.0
)

// DebugBorderColor is the border drawn around every node in debug mode.
var DebugBorderColor = surface.RGBA(255, 0, 0, 1)

func debugHash(n uint64) uint8 { return uint8((n * 16807) % 256) }

// DebugColor returns the fill drawn for a node with the given id in debug
// mode. It depends on the id only.
func DebugColor(id uint64) surface.Color {
	return surface.RGBA(debugHash(id), debugHash(id+1), debugHash(id+2), DebugAlpha)
}

// draw applies either the debug overlay or the configured style.
func (t *tree) draw(n *node) {
	t.drawStyle(n)
	t.drawLabels(n)
}

func (t *tree) drawStyle(n *node) {
	s := n.surf
	if s == nil {
		return
	}
	if n.debug {
		s.SetBackground(DebugColor(n.id))
		s.SetBorder(DebugBorderWidth, DebugBorderColor)
		return
	}

	if n.style.hasBackground {
		s.SetBackground(n.style.background)
	} else {
		s.ClearBackground()
	}
	if n.style.hasBorder {
		s.SetBorder(n.style.borderWidth, n.style.border)
	} else {
		s.ClearBorder()
	}
}

// drawLabels replaces the dimension and identity labels. Outside debug mode
// it only removes them.
func (t *tree) drawLabels(n *node) {
	for _, l := range n.labels {
		l.Remove()
	}
	n.labels = n.labels[:0]

	if !n.debug || n.surf == nil {
		return
	}
	n.labels = append(n.labels,
		n.surf.AddLabel(surface.Label{Text: floorString(n.box.Width), Placement: surface.LabelTop, Size: DebugLabelSize}),
		n.surf.AddLabel(surface.Label{Text: floorString(n.box.Height), Placement: surface.LabelLeft, Size: DebugLabelSize}),
		n.surf.AddLabel(surface.Label{Text: fmt.Sprintf("%s (%d)", n.label, n.id), Placement: surface.LabelCenter, Size: DebugLabelSize}),
	)
}

func floorString(v float64) string {
	return strconv.FormatFloat(math.Floor(v), 'f', -1, 64)
}

// SetDebug forces debug mode on or off for the node and every descendant,
// then relayouts the subtree once.
func (n Node) SetDebug(on bool) {
	if n.get() == nil {
		return
	}
	t := n.t
	stack := []int32{n.slot}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.slots[i].debug = on
		stack = append(stack, t.slots[i].children...)
	}
	t.locate(n.slot)
}

// ToggleDebug flips the node's debug mode and forces the new state onto the
// whole subtree.
func (n Node) ToggleDebug() {
	nd := n.get()
	if nd == nil {
		return
	}
	n.SetDebug(!nd.debug)
}

// Debug reports whether the node is in debug mode.
func (n Node) Debug() bool {
	nd := n.lookup()
	return nd != nil && nd.debug
}
