package ui

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// IDAllocator hands out node and content identities. Ids start at 0, grow
// by one per call and are never reused. It is safe for concurrent use and
// may be shared between trees so ids stay unique across them.
type IDAllocator struct {
	next atomic.Uint64
}

// NewIDAllocator returns an allocator starting at 0.
func NewIDAllocator() *IDAllocator { return &IDAllocator{} }

var sharedIDs = NewIDAllocator()

// SharedIDAllocator returns the process-wide allocator used by every root
// created without [WithIDAllocator].
func SharedIDAllocator() *IDAllocator { return sharedIDs }

// Next returns a fresh id.
func (a *IDAllocator) Next() uint64 { return a.next.Add(1) - 1 }

// Peek returns the id the next call to Next will return.
func (a *IDAllocator) Peek() uint64 { return a.next.Load() }

// FormatID renders an id the way surfaces expose it to markup, "GUID<id>".
func FormatID(id uint64) string { return "GUID" + strconv.FormatUint(id, 10) }

// ParseID accepts "GUID<id>" or a bare decimal id.
func ParseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "GUID"), 10, 64)
	return id, err == nil
}
