package malloc

import (
	"github.com/haborym/bucketalloc/internal/debug"
	"github.com/haborym/bucketalloc/internal/pagesource"
)

// bucket is one size class within one arena. chunkSize == 0 marks the large
// class, which uses only blockHead (as an LRU of cached mappings);
// chunkHead and pageHead are unused for it.
type bucket struct {
	chunkHead chunk
	blockHead block
	pageHead  page
	chunkSize int
}

// popChunk pops the head of the ready-to-hand-out chunk list, if any.
func (b *bucket) popChunk() (chunk, bool) {
	c := b.chunkHead
	if c == 0 {
		return 0, false
	}
	b.chunkHead = c.next()
	return c, true
}

// sliceBlock carves one chunk of b.chunkSize off the front of b.blockHead.
// Precondition: b.blockHead != 0.
func (b *bucket) sliceBlock() chunk {
	debug.Assert(b.blockHead != 0, "sliceBlock called with an empty block list")

	old := b.blockHead
	chunkSize := b.chunkSize
	remainder := old.size() - chunkSize

	switch {
	case remainder < chunkSize:
		// Tail too small to reuse; it is lost for this bucket until the
		// slab page is reclaimed, which this design never does.
		b.blockHead = old.next()

	case remainder == chunkSize:
		tail := chunk(addr(old).add(chunkSize))
		tail.setNext(0) // blockHead carving only runs when chunkHead is empty.
		b.blockHead = old.next()
		b.chunkHead = tail

	default:
		shifted := block(addr(old).add(chunkSize))
		shifted.setSize(remainder)
		shifted.setNext(old.next())
		b.blockHead = shifted
	}

	return chunk(addr(old))
}

// mapSlabPage maps a fresh 1 MiB slab, links it onto pageHead, installs the
// remainder as the sole block, and slices one chunk off it.
//
// Precondition: b.blockHead == 0. Callers only reach this path once both
// the chunk list and the block list are confirmed empty, so a non-empty
// block list here means a caller skipped that check; asserting catches
// that instead of silently leaking the prior block.
func (b *bucket) mapSlabPage() chunk {
	debug.Assert(b.blockHead == 0, "mapSlabPage called with a non-empty block list")

	base := pagesource.Map(slabSize)
	p := page(addrOf(base))
	p.setNext(b.pageHead)
	b.pageHead = p

	blk := block(addr(p).add(wordSize))
	blk.setSize(slabSize - wordSize)
	blk.setNext(0)
	b.blockHead = blk

	debug.Log(nil, "mapSlabPage", "slab=%#x block=%#x size=%d", uintptr(p), uintptr(blk), blk.size())

	return b.sliceBlock()
}

// owns reports whether p lies strictly inside one of this bucket's slab
// pages. Used by the free path to identify the owning bucket by address
// containment; O(pages in this bucket), acceptable because slab pages are
// 1 MiB and slab counts stay small in practice.
func (b *bucket) owns(p addr) bool {
	for pg := b.pageHead; pg != 0; pg = pg.next() {
		start := addr(pg)
		end := start.add(slabSize)
		if p > start && p < end {
			return true
		}
	}
	return false
}

// popFit walks the large class's blockHead first-fit, unlinking and
// returning the first block whose size covers n.
func (b *bucket) popFit(n int) (block, bool) {
	var prev block
	for cur := b.blockHead; cur != 0; cur = cur.next() {
		if cur.size() >= n {
			if prev == 0 {
				b.blockHead = cur.next()
			} else {
				prev.setNext(cur.next())
			}
			return cur, true
		}
		prev = cur
	}
	return 0, false
}

// pushFree pushes blk onto the large class's blockHead, retaining it for
// reuse rather than returning it to the OS.
func (b *bucket) pushFree(blk block) {
	blk.setNext(b.blockHead)
	b.blockHead = blk
}
