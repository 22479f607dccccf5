package malloc

import (
	"math/rand"
	"sync"
	"testing"
	"unsafe"
)

// TestConcurrentIsolation runs two goroutines each doing random
// allocate/free cycles over sizes in [8, 20000], and checks that no
// two goroutines ever observe overlapping live spans and that nothing
// deadlocks (a hang is caught by go test's own timeout).
func TestConcurrentIsolation(t *testing.T) {
	resetArenasForTest(t)

	const goroutines = 2
	const opsPerGoroutine = 2000

	var mu sync.Mutex
	live := map[uintptr][2]uintptr{} // base -> [start, end)

	checkNoOverlap := func(start, end uintptr) {
		mu.Lock()
		defer mu.Unlock()
		for _, span := range live {
			if start < span[1] && span[0] < end {
				t.Errorf("overlapping live spans: [%#x,%#x) and [%#x,%#x)", start, end, span[0], span[1])
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))

			var held []unsafe.Pointer
			for i := 0; i < opsPerGoroutine; i++ {
				if len(held) > 0 && rnd.Intn(2) == 0 {
					idx := rnd.Intn(len(held))
					p := held[idx]
					held[idx] = held[len(held)-1]
					held = held[:len(held)-1]

					mu.Lock()
					delete(live, uintptr(p))
					mu.Unlock()

					Free(p)
					continue
				}

				n := 8 + rnd.Intn(20000-8+1)
				p := Allocate(n)
				start := uintptr(p)
				end := start + uintptr(n)

				checkNoOverlap(start, end)

				mu.Lock()
				live[start] = [2]uintptr{start, end}
				mu.Unlock()

				held = append(held, p)
			}

			for _, p := range held {
				mu.Lock()
				delete(live, uintptr(p))
				mu.Unlock()
				Free(p)
			}
		}(int64(g + 1))
	}
	wg.Wait()
}
