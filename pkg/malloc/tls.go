package malloc

import (
	"time"

	"github.com/timandy/routine"

	"github.com/haborym/bucketalloc/internal/debug"
)

// threadArena holds the arena bound to the calling goroutine. Go has no
// native thread-local storage, so this uses timandy/routine's ThreadLocal,
// keyed by goroutine id rather than OS thread id. Every OS thread in the
// original design becomes a goroutine here, which this binding model
// carries through cleanly since routine keys by goroutine id, not OS
// thread id.
//
// The selected bucket is deliberately not stored here: it stays a local of
// the call rather than durable per-goroutine state, which keeps the
// binding model to just "which arena," with everything else threaded
// through ordinary call arguments.
var threadArena = routine.NewThreadLocal[*Arena]()

// bindArena returns the arena bound to the calling goroutine, locking it
// for the duration of the caller's operation. On a goroutine's first call,
// it scans arenas 0..numArenas-1 and claims the first whose TryLock
// succeeds.
func bindArena() *Arena {
	if a := threadArena.Get(); a != nil {
		a.mu.Lock()
		return a
	}

	a := acquireArena()
	threadArena.Set(a)
	return a
}

// acquireArena performs the first-binding scan, retrying with a bounded
// exponential backoff if every arena is momentarily contended rather than
// busy-spinning or giving up and leaving the goroutine unbound. See
// DESIGN.md for the full rationale.
func acquireArena() *Arena {
	backoff := time.Microsecond
	for attempt := 0; ; attempt++ {
		for i := range arenas {
			if arenas[i].mu.TryLock() {
				debug.Log(nil, "bindArena", "bound to arena %d on attempt %d", i, attempt)
				return &arenas[i]
			}
		}

		time.Sleep(backoff)
		if backoff < 4*time.Millisecond {
			backoff *= 2
		}
	}
}
