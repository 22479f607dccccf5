//go:build unix

package pagesource

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/haborym/bucketalloc/internal/debug"
)

// Map requests an anonymous, read-write, private mapping of size bytes and
// returns its base address. size must already be page-aligned; callers
// round up via RoundUpPages before calling.
//
// Map never returns on failure: a failed mmap is resource exhaustion, fatal
// and unrecoverable here, so this panics with a FatalError instead of
// returning one. The mapping backs either a slab page or a large
// allocation; both are retained by the caller (this package never munmaps
// on the allocator's behalf, see bucket.go's pushFree and DESIGN.md).
func Map(size int) unsafe.Pointer {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		panic(FatalError{Op: "mmap", Size: size, Err: err})
	}

	p := unsafe.Pointer(unsafe.SliceData(b))
	debug.Log(nil, "mmap", "mapped %d bytes at %p", size, p)
	return p
}
