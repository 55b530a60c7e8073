// Package parallel splits index ranges across goroutines for the CPU kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how a range of work items is split.
type Config struct {
	Workers int // Maximum goroutines; 1 or less runs on the caller's goroutine.
	Grain   int // Minimum items per goroutine.
}

// DefaultConfig uses one worker per available CPU. The grain keeps small
// tensors on the calling goroutine.
func DefaultConfig() Config {
	return Config{Workers: runtime.GOMAXPROCS(0), Grain: 1 << 14}
}

// Sequential returns a Config that never starts goroutines.
func Sequential() Config {
	return Config{Workers: 1}
}

// Range calls fn on disjoint [start, end) chunks covering [0, n) and returns
// once all of them are done. Chunks may run concurrently, so fn must only
// write to its own part of any shared output.
func (c Config) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	grain := max(c.Grain, 1)
	workers := min(c.Workers, (n+grain-1)/grain)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}

// For calls fn(i) for every i in [0, n).
func (c Config) For(n int, fn func(i int)) {
	c.Range(n, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// WithGrain returns a copy of c using the given grain. Kernels with costly
// items (one GEMM per batch, say) lower it.
func (c Config) WithGrain(grain int) Config {
	c.Grain = grain
	return c
}
