package malloc

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPropertyNoOverlapSingleGoroutine runs a long random sequence of
// allocate/free operations on one goroutine and checks that every live
// allocation's span is disjoint from every other live allocation's span at
// all times, restricted here to a single arena since that's what one
// goroutine ever sees.
func TestPropertyNoOverlapSingleGoroutine(t *testing.T) {
	resetArenasForTest(t)

	rnd := rand.New(rand.NewSource(1))
	live := map[uintptr]int{} // base -> size

	assertDisjoint := func(start uintptr, size int) {
		end := start + uintptr(size)
		for base, sz := range live {
			other := [2]uintptr{base, base + uintptr(sz)}
			require.Falsef(t, start < other[1] && other[0] < end,
				"new span [%#x,%#x) overlaps existing live span [%#x,%#x)", start, end, other[0], other[1])
		}
	}

	var held []unsafe.Pointer
	for i := 0; i < 5000; i++ {
		if len(held) > 0 && rnd.Intn(3) == 0 {
			idx := rnd.Intn(len(held))
			p := held[idx]
			held[idx] = held[len(held)-1]
			held = held[:len(held)-1]
			delete(live, uintptr(p))
			Free(p)
			continue
		}

		n := 1 + rnd.Intn(20000)
		p := Allocate(n)
		assertDisjoint(uintptr(p), n)
		live[uintptr(p)] = n
		held = append(held, p)
	}

	for _, p := range held {
		Free(p)
	}
}

// TestPropertyFreeListsStayDisjoint checks that, after a random sequence of
// operations, no address appears more than once across the small buckets'
// chunk free lists (block lists are not walked; a corrupted list, e.g. a
// chunk linked into two buckets at once,
// would be the symptom of a slicing or free-path bug).
func TestPropertyFreeListsStayDisjoint(t *testing.T) {
	resetArenasForTest(t)
	ensureInit()

	rnd := rand.New(rand.NewSource(2))

	var held []unsafe.Pointer
	for i := 0; i < 2000; i++ {
		if len(held) > 0 && rnd.Intn(2) == 0 {
			idx := rnd.Intn(len(held))
			p := held[idx]
			held[idx] = held[len(held)-1]
			held = held[:len(held)-1]
			Free(p)
			continue
		}
		n := 1 + rnd.Intn(9000)
		held = append(held, Allocate(n))
	}
	for _, p := range held {
		Free(p)
	}

	a := bindArena()
	defer a.mu.Unlock()

	seen := map[uintptr]int{} // address -> class index it was seen in
	for idx := 1; idx < numClasses; idx++ {
		for c := a.buckets[idx].chunkHead; c != 0; c = c.next() {
			if prior, ok := seen[uintptr(c)]; ok {
				t.Fatalf("address %#x appears on both class %d and class %d free lists", uintptr(c), prior, idx)
			}
			seen[uintptr(c)] = idx
		}
	}

	assert.NotEmpty(t, seen, "expected the churn above to leave at least one chunk on a free list")
}
