// Package malloc implements a multi-arena, size-class (bucket) memory
// allocator backed by raw, anonymous virtual-memory pages instead of the Go
// heap.
//
// # Overview
//
// Allocate, Free, and Reallocate replace the general-purpose allocator for
// callers that want predictable, GC-free memory management: every byte they
// hand back comes from an anonymous mmap, never from Go's own heap, so the
// garbage collector never scans or moves it.
//
// Memory is sharded across a fixed number of arenas, each guarded by its own
// mutex. A goroutine binds to one arena on its first call and keeps using it
// for the rest of its lifetime; within an arena, requests are served from
// one of eleven size classes. Ten small classes (16 through 8192 bytes) are
// served from 1 MiB slab pages sliced into fixed chunks; the eleventh,
// "large", class maps a dedicated span per request and caches it on free for
// reuse by a same-or-smaller future request.
//
// # Usage
//
//	p := malloc.Allocate(128)
//	// ... use the 128 bytes at p ...
//	q := malloc.Reallocate(p, 4096)
//	malloc.Free(q)
//
// # Memory Safety
//
//   - A pointer must be freed (or reallocated) by a goroutine that binds to
//     the same arena it was allocated from. Freeing from an unrelated arena
//     is undefined behavior, see DESIGN.md for the reasoning behind that
//     constraint.
//   - Freeing a pointer twice, or a pointer not returned by Allocate or
//     Reallocate, is undefined behavior; this package does not guarantee
//     detection (it best-effort checks large-class double frees in debug
//     builds only).
//   - Slab pages, once mapped, are never returned to the OS. Large mappings
//     are returned to the OS never either in this design: a freed large
//     block is cached on its bucket's free list for reuse, matching the
//     behavior of the original this package is modeled on.
//
// # Concurrency
//
// Allocate, Free, and Reallocate are safe to call concurrently from any
// number of goroutines. Each arena serializes its own bucket lists behind a
// mutex; different arenas make progress independently. There are exactly
// eight arenas process-wide; if more than eight goroutines are contending
// for first-time binding, the losers retry with a bounded backoff rather
// than spin indefinitely (see bindArena in tls.go).
package malloc
