package malloc

import "sync"

// Arena is a fixed shard of allocator state: numClasses buckets plus the
// mutex that serializes all mutation of them. There are exactly numArenas
// of these, allocated once as a package-level array and never destroyed.
type Arena struct {
	mu      sync.Mutex
	buckets [numClasses]bucket
}

// arenas is the static, process-wide arena array. It is zeroed at program
// start and populated by ensureInit on first use; after that it is
// read-mostly (each arena's own mutex guards further mutation of its own
// bucket sub-tree).
var arenas [numArenas]Arena
