package ui

import "slices"

// Remove detaches the node from its parent and destroys its subtree. All
// surfaces of the subtree are removed and every handle into it goes stale.
// Ids are not reused. Removing the root also stops resize notifications.
func (n Node) Remove() {
	nd := n.get()
	if nd == nil {
		return
	}
	t := n.t

	if nd.kind == KindRoot && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if nd.parent != noSlot {
		p := &t.slots[nd.parent]
		p.children = slices.DeleteFunc(p.children, func(c int32) bool { return c == n.slot })
	}
	if nd.surf != nil {
		nd.surf.Remove()
	}
	t.release(n.slot)
}
