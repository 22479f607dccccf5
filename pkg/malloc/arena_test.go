package malloc

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnsureInitIdempotent(t *testing.T) {
	resetArenasForTest(t)

	Convey("Given many goroutines racing to trigger ensureInit", t, func() {
		const n = 32
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				ensureInit()
			}()
		}
		wg.Wait()

		Convey("every arena ends up with exactly the fixed class sizes", func() {
			for i := range arenas {
				for c := 1; c < numClasses; c++ {
					So(arenas[i].buckets[c].chunkSize, ShouldEqual, classSize(c))
				}
				So(arenas[i].buckets[0].chunkSize, ShouldEqual, 0)
			}
		})

		Convey("and calling ensureInit again changes nothing", func() {
			ensureInit()
			for i := range arenas {
				So(arenas[i].buckets[1].chunkSize, ShouldEqual, classSize(1))
			}
		})
	})
}

func TestLargeClassCachesFreedMappings(t *testing.T) {
	resetArenasForTest(t)

	Convey("Given a large allocation that is freed", t, func() {
		p := Allocate(20000)
		Free(p)

		Convey("a same-size request is served from the same cached mapping", func() {
			q := Allocate(20000)
			So(q, ShouldEqual, p)
			Free(q)
		})
	})
}

func TestLargeClassFirstFitSkipsTooSmallHead(t *testing.T) {
	resetArenasForTest(t)

	Convey("Given two cached large blocks of different sizes", t, func() {
		small := Allocate(20000)
		big := Allocate(50000)
		Free(big)
		Free(small)

		Convey("a request too big for the list head falls through to the next fit", func() {
			// Free order puts small at blockHead (most recently freed) and
			// big behind it. A 45000-byte request must skip the too-small
			// head and take big instead.
			q := Allocate(45000)
			So(q, ShouldEqual, big)
			Free(q)
		})
	})
}
