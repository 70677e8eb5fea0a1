// Package ui implements a retained-mode anchor/offset layout tree for
// overlay panels.
//
// # Overview
//
// A tree is created with [NewRoot], which binds it to a [Container]. Every
// other node is added through a factory method on an existing node
// ([Node.AddRect], [Node.AddImage], [Node.AddText]); a node is never created
// detached from a tree.
//
// Each node's box is derived from its parent's most recently computed box:
//
//	width  = -offsets.Left + offsets.Right  + (anchors.Right  - anchors.Left) * parent.Width
//	height = -offsets.Top  + offsets.Bottom + (anchors.Bottom - anchors.Top)  * parent.Height
//
// See [geom.Resolve] for the full model, including the border correction
// applied to direct children of the root.
//
// # Relayout
//
// Every mutation (anchors, offsets, fixed placement, debug mode, container
// resize) relayouts the affected subtree synchronously before returning.
// A relayout pass visits nodes depth-first in insertion order; for each node
// it resolves the box, pushes size and position to the node's surface, draws
// the configured style or the debug overlay, and runs the post-layout step of
// the node's [Kind]:
//
//   - [KindImage]: the image content fills the box and is shifted by the
//     negative of the node's border so it covers the border area.
//   - [KindText]: the vertical text shift is recomputed from the measured
//     line heights (see [geom.TextShift]).
//
// A child's box never affects its parent.
//
// # Handles
//
// Nodes live in an arena owned by the tree. A [Node] is a small value handle
// carrying a generation; after [Node.Remove] every handle into the removed
// subtree goes stale and all operations on it become no-ops that report
// [observability.AnomalyStaleNode]. The zero Node is always stale.
//
// # Errors
//
// The layout core has no failure path. Inverted anchors are swapped, anchors
// outside [0,1] are kept, missing surfaces are skipped and unreadable border
// values count as zero. Each case is reported through
// [observability.LayoutHooks.OnAnomaly].
//
// # Concurrency
//
// A tree is not safe for concurrent use; all calls, including resize
// notifications, must come from one goroutine at a time. The [IDAllocator]
// is the only shared state and is safe to share between trees.
//
// [geom.Resolve]: github.com/matzehuels/anchorui/pkg/geom#Resolve
// [geom.TextShift]: github.com/matzehuels/anchorui/pkg/geom#TextShift
// [observability.AnomalyStaleNode]: github.com/matzehuels/anchorui/pkg/observability#AnomalyStaleNode
// [observability.LayoutHooks.OnAnomaly]: github.com/matzehuels/anchorui/pkg/observability#LayoutHooks
package ui
