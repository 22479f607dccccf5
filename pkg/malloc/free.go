package malloc

import (
	"unsafe"

	"github.com/haborym/bucketalloc/internal/debug"
)

// Free returns a previously allocated pointer to its owning bucket. p must
// be non-nil and must have been returned by Allocate or Reallocate, and not
// already freed; violating that is undefined behavior, not something this
// package detects in general, except for large-class double frees in debug
// builds, see debugcheck.go.
//
// Free binds the calling goroutine to an arena exactly as Allocate does,
// which means p must have been allocated from the arena this goroutine
// binds to: see the package doc for the cross-arena caveat that follows
// from that.
func Free(p unsafe.Pointer) {
	debug.Assert(p != nil, "Free called with a nil pointer")
	ensureInit()

	a := bindArena()
	defer a.mu.Unlock()

	pa := addrOf(p)
	if idx, ok := identifyBucket(a, pa); ok {
		bkt := &a.buckets[idx]
		c := chunk(pa)
		c.setNext(bkt.chunkHead)
		bkt.chunkHead = c
		debug.Log(nil, "Free", "class=%d chunk=%#x", idx, uintptr(c))
		return
	}

	blk := block(pa.add(-overheadSize))
	debugCheckDoubleFree(uintptr(blk))

	bkt := &a.buckets[0]
	bkt.pushFree(blk)
	debug.Log(nil, "Free", "large block=%#x size=%d", uintptr(blk), blk.size())
}

// identifyBucket finds the small bucket whose slab pages contain p, by
// linear scan over each bucket's page list. A miss means p belongs to the
// large class.
func identifyBucket(a *Arena, p addr) (int, bool) {
	for i := 1; i < numClasses; i++ {
		if a.buckets[i].owns(p) {
			return i, true
		}
	}
	return 0, false
}
