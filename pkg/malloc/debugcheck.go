//go:build debug

package malloc

import (
	"fmt"

	"github.com/haborym/bucketalloc/internal/debug"
	"github.com/haborym/bucketalloc/internal/xsync"
)

// freedLarge tracks the base address of every large block currently sitting
// on a free list, debug builds only. A double free is undefined behavior
// and not required to be detected, but it's cheap to catch opportunistically
// in debug builds, and internal/xsync.Set is a ready-made strongly-typed
// sync.Map wrapper for tracking this kind of set.
var freedLarge xsync.Set[uintptr]

// debugCheckDoubleFree panics if base is already on the large free list.
// Called from Free before pushing the block.
func debugCheckDoubleFree(base uintptr) {
	if freedLarge.Load(base) {
		panic(fmt.Errorf("bucketalloc: double free of large block at %#x", base))
	}
	freedLarge.Store(base)
	debug.Log(nil, "debugCheckDoubleFree", "marked %#x freed", base)
}

// debugClearFreed removes base from the freed set. Called when a cached
// large block is popped back out for reuse, so a later legitimate free of
// the same base is not mistaken for a double free.
func debugClearFreed(base uintptr) {
	freedLarge.Delete(base)
}
