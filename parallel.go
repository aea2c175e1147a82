package flatfield

import (
	"runtime"
	"sync"
)

// parallelRows splits [0, total) into contiguous chunks and runs fn over
// them concurrently, returning once every chunk is done. Calibration stages
// use the return as their synchronization point: a pass that reads a
// reference profile or flag must not start before the pass that wrote it
// has returned.
func parallelRows(total int, fn func(lo, hi int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}

	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * step
		hi := lo + step
		if hi > total {
			hi = total
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
