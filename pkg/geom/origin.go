package geom

import (
	"fmt"
	"strings"
)

// HAlign is the horizontal component of an [Origin].
type HAlign int

const (
	HLeft HAlign = iota
	HCenter
	HRight
)

// VAlign is the vertical component of an [Origin].
type VAlign int

const (
	VTop VAlign = iota
	VMiddle
	VBottom
)

// Origin names one of nine alignment points of a box. It selects which
// point of a fixed-size box is pinned for [Place], and how text is aligned
// inside its box.
type Origin int

const (
	LeftTop Origin = iota
	LeftMiddle
	LeftBottom
	CenterTop
	CenterMiddle
	CenterBottom
	RightTop
	RightMiddle
	RightBottom
)

var originNames = [...]string{
	LeftTop:      "left-top",
	LeftMiddle:   "left-middle",
	LeftBottom:   "left-bottom",
	CenterTop:    "center-top",
	CenterMiddle: "center-middle",
	CenterBottom: "center-bottom",
	RightTop:     "right-top",
	RightMiddle:  "right-middle",
	RightBottom:  "right-bottom",
}

// NewOrigin combines a horizontal and a vertical alignment.
func NewOrigin(h HAlign, v VAlign) Origin { return Origin(int(h)*3 + int(v)) }

// Horizontal returns the horizontal component.
func (o Origin) Horizontal() HAlign { return HAlign(int(o) / 3) }

// Vertical returns the vertical component.
func (o Origin) Vertical() VAlign { return VAlign(int(o) % 3) }

// Valid reports whether o is one of the nine defined origins.
func (o Origin) Valid() bool { return o >= LeftTop && o <= RightBottom }

func (o Origin) String() string {
	if !o.Valid() {
		return fmt.Sprintf("origin(%d)", int(o))
	}
	return originNames[o]
}

// ParseOrigin accepts names like "center-middle", "CENTER_MIDDLE" or
// "center middle".
func ParseOrigin(s string) (Origin, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range originNames {
		if name == norm {
			return Origin(i), nil
		}
	}
	return 0, fmt.Errorf("unknown origin %q", s)
}

// Size is a pixel width and height.
type Size struct {
	W, H float64
}

// Point is a pair of coordinates. For anchor points the values are
// fractions of the parent size; for offsets they are pixels.
type Point struct {
	X, Y float64
}

// Place converts a fixed-size placement request into collapsed anchors and
// the offsets that put the requested origin of the box at at+offset.
func Place(size Size, at Point, origin Origin, offset Point) (Anchors, Offsets) {
	a := Anchors{Left: at.X, Right: at.X, Top: at.Y, Bottom: at.Y}

	var o Offsets
	switch origin.Horizontal() {
	case HLeft:
		o.Left, o.Right = offset.X, offset.X+size.W
	case HCenter:
		o.Left, o.Right = offset.X-size.W/2, offset.X+size.W/2
	default:
		o.Left, o.Right = offset.X-size.W, offset.X
	}
	switch origin.Vertical() {
	case VTop:
		o.Top, o.Bottom = offset.Y, offset.Y+size.H
	case VMiddle:
		o.Top, o.Bottom = offset.Y-size.H/2, offset.Y+size.H/2
	default:
		o.Top, o.Bottom = offset.Y-size.H, offset.Y
	}
	return a, o
}
