// Package geom implements the anchor/offset geometry model.
//
// # Overview
//
// Every panel's box is derived from its parent's box. Four anchor fractions
// pick a baseline for each edge as a fraction of the parent size, and four
// pixel offsets are added on top:
//
//	width  = -offsets.Left + offsets.Right  + (anchors.Right  - anchors.Left) * parent.Width
//	height = -offsets.Top  + offsets.Bottom + (anchors.Bottom - anchors.Top)  * parent.Height
//	left   = anchors.Left * parent.Width  + offsets.Left - border.Left
//	top    = anchors.Top  * parent.Height + offsets.Top  - border.Top
//
// The border term is only non-zero when the parent is the tree root, see
// [Resolve]. Nothing is clamped: negative sizes and anchors outside [0,1] are
// passed through unchanged.
//
// # Fixed placement
//
// [Place] converts a fixed pixel size and an [Origin] (one of nine corner,
// edge or center points) into a collapsed anchor point plus offsets:
//
//	a, o := geom.Place(geom.Size{W: 100, H: 50}, geom.Point{X: 0.5, Y: 0.5},
//	    geom.CenterMiddle, geom.Point{})
//	box := geom.Resolve(parent, a, o, geom.Insets{})
//
// # Text shift
//
// [TextShift] turns a vertical alignment and a measured text height into a
// [Shift], a percentage-plus-pixels offset resolved against the height of
// the box the text lives in.
package geom
