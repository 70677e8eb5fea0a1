package geom

import (
	"fmt"
	"strconv"
)

// Shift is a vertical position expressed as a fraction of a reference
// height plus a pixel delta, the equivalent of CSS calc(F% + Npx).
type Shift struct {
	Fraction float64
	Pixels   float64
}

// Resolve returns the shift in pixels for a reference height.
func (s Shift) Resolve(height float64) float64 { return s.Fraction*height + s.Pixels }

// CSS renders the shift as a CSS length.
func (s Shift) CSS() string {
	if s.Fraction == 0 {
		return strconv.FormatFloat(s.Pixels, 'f', -1, 64) + "px"
	}
	pct := strconv.FormatFloat(s.Fraction*100, 'f', -1, 64)
	if s.Pixels < 0 {
		return fmt.Sprintf("calc(%s%% - %spx)", pct, strconv.FormatFloat(-s.Pixels, 'f', -1, 64))
	}
	return fmt.Sprintf("calc(%s%% + %spx)", pct, strconv.FormatFloat(s.Pixels, 'f', -1, 64))
}

// TextShift computes where a text block of the measured height starts so
// that it sits at the top, middle or bottom of its box.
func TextShift(v VAlign, measured float64) Shift {
	switch v {
	case VMiddle:
		return Shift{Fraction: 0.5, Pixels: -measured / 2}
	case VBottom:
		return Shift{Fraction: 1, Pixels: -measured}
	default:
		return Shift{}
	}
}
