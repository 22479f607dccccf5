package malloc

import "unsafe"

// wordSize is the size of a machine word: the minimum payload of any live
// allocation (so that every live allocation can be safely reinterpreted as
// a chunk when freed), and the size of the overhead prefix on large
// allocations.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

const overheadSize = wordSize

// addr is a raw address into memory this package manages directly: either a
// slab page sliced out by the arena's own bucket lists, or a dedicated large
// mapping. It is never memory the Go garbage collector is aware of, which is
// what lets it double as a free-list node: the same bytes the caller was
// just writing into become a link in a singly-linked list the moment they
// are freed.
//
// It is a typed, arithmetic-capable address, the same shape a GC-visible
// arena type would use, but it cannot be built on one: a GC-visible address
// type assumes its pointee is reachable from a Go root so the garbage
// collector can trace and move it, which does not hold here, since every
// addr in this package points into an anonymous mmap the GC never sees.
// Modeling it as a bare uintptr instead of an unsafe.Pointer is deliberate:
// nothing here needs to survive a GC move (there is none to survive), and
// uintptr arithmetic is unrestricted.
type addr uintptr

func addrOf(p unsafe.Pointer) addr { return addr(uintptr(p)) }

func (a addr) ptr() unsafe.Pointer { return unsafe.Pointer(uintptr(a)) }

func (a addr) add(n int) addr { return a + addr(n) }

// sub returns the number of bytes from b to a.
func (a addr) sub(b addr) int { return int(a - b) }

func (a addr) loadUintptr() uintptr   { return *(*uintptr)(a.ptr()) }
func (a addr) storeUintptr(v uintptr) { *(*uintptr)(a.ptr()) = v }

// chunk is a free, fixed-size-class cell. Its size is implicit in the
// owning bucket's chunkSize; the only field it carries is the link to the
// next free chunk, stored in the cell's first word.
type chunk addr

func (c chunk) next() chunk     { return chunk(addr(c).loadUintptr()) }
func (c chunk) setNext(n chunk) { addr(c).storeUintptr(uintptr(n)) }
func (c chunk) ptr() unsafe.Pointer { return addr(c).ptr() }

// block is a free, variable-size span: either an unsliced slab remainder
// (small classes) or a cached large mapping (the large class). Its layout
// is {size, next}, both machine words.
type block addr

func (b block) size() int       { return int(addr(b).loadUintptr()) }
func (b block) setSize(n int)   { addr(b).storeUintptr(uintptr(n)) }
func (b block) next() block     { return block(addr(b).add(wordSize).loadUintptr()) }
func (b block) setNext(n block) { addr(b).add(wordSize).storeUintptr(uintptr(n)) }

// page is the header of a 1 MiB slab mapping: just a link so the owning
// bucket can enumerate all of its slab pages for the free-path containment
// test (see (*bucket).owns).
type page addr

func (p page) next() page     { return page(addr(p).loadUintptr()) }
func (p page) setNext(n page) { addr(p).storeUintptr(uintptr(n)) }
