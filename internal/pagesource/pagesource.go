// Package pagesource supplies anonymous virtual-memory spans to the
// allocator. It is implemented directly against golang.org/x/sys/unix
// rather than behind an abstraction layer, since there is exactly one real
// way to get anonymous pages from the OS and no need to hide it.
package pagesource

import "fmt"

// RoundUpPages rounds n up to the next multiple of unit and returns that
// multiple (not a page count), matching the original's div_up(size,
// PAGE_SIZE) * PAGE_SIZE idiom for sizing a large mapping.
func RoundUpPages(n, unit int) int {
	return ((n-1)/unit + 1) * unit
}

// FatalError reports that a requested OS mapping could not be satisfied.
// Resource exhaustion has no recoverable path here: allocating a FatalError
// value and panicking with it is the allocator's only failure mode,
// surfaced all the way up through malloc.FatalError.
type FatalError struct {
	Op   string
	Size int
	Err  error
}

func (e FatalError) Error() string {
	return fmt.Sprintf("pagesource: %s of %d bytes failed: %v", e.Op, e.Size, e.Err)
}

func (e FatalError) Unwrap() error { return e.Err }
