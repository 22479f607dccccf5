//go:build !unix

package pagesource

import (
	"unsafe"

	"github.com/haborym/bucketalloc/internal/debug"
)

// Map is unsupported on non-Unix targets: anonymous mmap has no portable
// equivalent here, and this package's page-mapping primitive is inherently
// Unix-shaped (mmap/munmap). Rather than silently degrade, this panics with
// the same "unsupported operation" error used for platform gaps elsewhere
// (internal/debug.Unsupported).
func Map(size int) unsafe.Pointer {
	panic(debug.Unsupported())
}
