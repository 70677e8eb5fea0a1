package geom

import "fmt"

// Box is the resolved rectangle of a node for the current layout pass.
// Left and Top are relative to the visual parent.
type Box struct {
	Width, Height float64
	Left, Top     float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Top + b.Height/2 }

// Degenerate reports whether the box has no positive area.
func (b Box) Degenerate() bool { return b.Width <= 0 || b.Height <= 0 }

func (b Box) String() string {
	return fmt.Sprintf("%gx%g@(%g,%g)", b.Width, b.Height, b.Left, b.Top)
}

// Anchors are the normalized baselines of the four edges, as fractions of
// the parent size. Left <= Right and Top <= Bottom hold for values built
// with [NewAnchors] or [Anchors.Normalize].
type Anchors struct {
	Left, Right float64
	Top, Bottom float64
}

// Fill anchors every edge to the matching parent edge.
var Fill = Anchors{Left: 0, Right: 1, Top: 0, Bottom: 1}

// NewAnchors builds normalized anchors. Inverted pairs are swapped; values
// outside [0,1] are kept as given.
func NewAnchors(left, right, top, bottom float64) Anchors {
	return Anchors{Left: left, Right: right, Top: top, Bottom: bottom}.Normalize()
}

// Normalize returns a copy with each pair ordered by min/max.
func (a Anchors) Normalize() Anchors {
	return Anchors{
		Left:   min(a.Left, a.Right),
		Right:  max(a.Left, a.Right),
		Top:    min(a.Top, a.Bottom),
		Bottom: max(a.Top, a.Bottom),
	}
}

// Inverted reports whether either pair is out of order.
func (a Anchors) Inverted() bool { return a.Left > a.Right || a.Top > a.Bottom }

// OutOfRange reports whether any anchor lies outside [0,1].
func (a Anchors) OutOfRange() bool {
	for _, v := range [...]float64{a.Left, a.Right, a.Top, a.Bottom} {
		if v < 0 || v > 1 {
			return true
		}
	}
	return false
}

// Collapsed reports whether both pairs collapse to a single point, in which
// case the node size is driven by offsets only.
func (a Anchors) Collapsed() bool { return a.Left == a.Right && a.Top == a.Bottom }

// Offsets are signed pixel deltas added after the anchor fraction.
type Offsets struct {
	Left, Right float64
	Top, Bottom float64
}

// Insets is the border thickness subtracted from a node's position when its
// positioning parent is the tree root.
type Insets struct {
	Left, Top float64
}

// Resolve computes a node's box from its parent's box.
func Resolve(parent Box, a Anchors, o Offsets, border Insets) Box {
	return Box{
		Width:  -o.Left + o.Right + (a.Right-a.Left)*parent.Width,
		Height: -o.Top + o.Bottom + (a.Bottom-a.Top)*parent.Height,
		Left:   a.Left*parent.Width + o.Left - border.Left,
		Top:    a.Top*parent.Height + o.Top - border.Top,
	}
}
