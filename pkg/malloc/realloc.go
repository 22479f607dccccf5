package malloc

import (
	"unsafe"

	"github.com/haborym/bucketalloc/internal/debug"
)

// Reallocate returns a pointer to at least n bytes, preserving the first
// previous_size(p) bytes of p's contents. If p's current size class already
// covers n, p is returned unchanged. Otherwise a new allocation is made,
// the old contents are copied in (old to new, not the reverse, pinned by
// TestReallocateCopyDirection), and p is freed.
func Reallocate(p unsafe.Pointer, n int) unsafe.Pointer {
	debug.Assert(p != nil, "Reallocate called with a nil pointer")
	debug.Assert(n > 0, "Reallocate called with n=%d", n)
	ensureInit()

	a := bindArena()

	pa := addrOf(p)
	idx, small := identifyBucket(a, pa)

	var prevSize int
	if small {
		prevSize = a.buckets[idx].chunkSize
	} else {
		prevSize = block(pa.add(-overheadSize)).size()
	}

	if prevSize >= n {
		a.mu.Unlock()
		debug.Log(nil, "Reallocate", "in place p=%#x prevSize=%d n=%d", uintptr(pa), prevSize, n)
		return p
	}
	a.mu.Unlock()

	// Growth hint for vector-like usage: amortizes repeated doublings by
	// never growing below a full page, even if n itself is tiny.
	grown := max(n, pageSize)

	q := Allocate(grown)
	copy(unsafe.Slice((*byte)(q), prevSize), unsafe.Slice((*byte)(p), prevSize))
	Free(p)

	debug.Log(nil, "Reallocate", "grew p=%#x prevSize=%d -> q=%#x n=%d (rounded %d)",
		uintptr(pa), prevSize, uintptr(addrOf(q)), n, grown)

	return q
}
