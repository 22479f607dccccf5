package malloc

import (
	"sync"

	"github.com/haborym/bucketalloc/internal/debug"
)

var initOnce = new(sync.Once)

// ensureInit performs the one-time global initialization every arena needs
// before it can serve a request: every bucket's chunkSize is set (0 for
// the large class, 8<<i for i>=1), and every other field keeps its zero
// value (nil lists), which is already what a freshly-zeroed Arena array
// holds. Idempotent and safe to call from any number of goroutines
// concurrently; sync.Once guarantees exactly one execution and that every
// caller observes its effects before proceeding.
func ensureInit() {
	initOnce.Do(func() {
		for i := range arenas {
			for c := 1; c < numClasses; c++ {
				arenas[i].buckets[c].chunkSize = classSize(c)
			}
		}
		debug.Log(nil, "init", "initialized %d arenas x %d classes", numArenas, numClasses)
	})
}
