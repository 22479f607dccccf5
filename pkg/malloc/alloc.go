package malloc

import (
	"unsafe"

	"github.com/haborym/bucketalloc/internal/debug"
	"github.com/haborym/bucketalloc/internal/pagesource"
)

// Allocate returns a pointer to at least n writable bytes. n must be
// greater than zero; violating that is a precondition error and panics in
// debug builds (undefined behavior otherwise).
//
// Allocate binds the calling goroutine to an arena on first use (see
// tls.go), holds that arena's lock for the duration of this call, selects
// a bucket by size class, and serves the request from the bucket's chunk
// list, its block list, or a freshly mapped slab page / large mapping, in
// that order.
func Allocate(n int) unsafe.Pointer {
	debug.Assert(n > 0, "Allocate called with n=%d", n)
	ensureInit()

	a := bindArena()
	defer a.mu.Unlock()

	if n > maxSmallSize {
		return allocLarge(a, n)
	}
	return allocSmall(a, n)
}

// allocSmall serves a request from a small (fixed chunk-size) bucket.
func allocSmall(a *Arena, n int) unsafe.Pointer {
	size := max(n, wordSize)
	idx := classFor(size)
	bkt := &a.buckets[idx]

	if c, ok := bkt.popChunk(); ok {
		debug.Log(nil, "allocSmall", "class=%d reuse chunk=%#x", idx, uintptr(c))
		return c.ptr()
	}

	if bkt.blockHead != 0 {
		c := bkt.sliceBlock()
		debug.Log(nil, "allocSmall", "class=%d slice block -> chunk=%#x", idx, uintptr(c))
		return c.ptr()
	}

	c := bkt.mapSlabPage()
	debug.Log(nil, "allocSmall", "class=%d new slab -> chunk=%#x", idx, uintptr(c))
	return c.ptr()
}

// allocLarge serves a request from the large class: first-fit over
// previously freed mappings, falling back to a fresh mmap.
func allocLarge(a *Arena, n int) unsafe.Pointer {
	size := max(n, 2*wordSize)
	bkt := &a.buckets[0]

	if blk, ok := bkt.popFit(size); ok {
		debugClearFreed(uintptr(blk))
		debug.Log(nil, "allocLarge", "reuse block=%#x cached_size=%d", uintptr(blk), blk.size())
		return addr(blk).add(overheadSize).ptr()
	}

	// The mapping must hold the size prefix plus the caller's size bytes.
	mapped := pagesource.RoundUpPages(size+overheadSize, pageSize)
	base := pagesource.Map(mapped)
	blk := block(addrOf(base))
	blk.setSize(size) // the user-requested size, not the rounded mapping size.
	debug.Log(nil, "allocLarge", "map %d bytes (rounded %d) -> block=%#x", size, mapped, uintptr(blk))

	return addr(blk).add(overheadSize).ptr()
}
