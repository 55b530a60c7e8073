package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_CoversAllIndices(t *testing.T) {
	configs := map[string]Config{
		"Sequential": Sequential(),
		"Default":    DefaultConfig(),
		"FineGrain":  {Workers: 4, Grain: 3},
		"ZeroGrain":  {Workers: 8},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			hits := make([]int, n)
			cfg.Range(n, func(start, end int) {
				for i := start; i < end; i++ {
					hits[i]++
				}
			})
			for i, h := range hits {
				assert.Equal(t, 1, h, "index %d", i)
			}
		})
	}
}

func TestRange_Chunks(t *testing.T) {
	var mu sync.Mutex
	var chunks [][2]int
	Config{Workers: 4, Grain: 10}.Range(35, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		chunks = append(chunks, [2]int{start, end})
	})
	// 35 items, grain 10: at most 4 workers of 9 items.
	assert.Len(t, chunks, 4)

	chunks = nil
	Config{Workers: 4, Grain: 100}.Range(35, func(start, end int) {
		chunks = append(chunks, [2]int{start, end})
	})
	assert.Equal(t, [][2]int{{0, 35}}, chunks)
}

func TestRange_Empty(t *testing.T) {
	called := false
	DefaultConfig().Range(0, func(int, int) { called = true })
	assert.False(t, called)
}

func TestFor(t *testing.T) {
	out := make([]int, 100)
	Config{Workers: 3, Grain: 7}.WithGrain(5).For(len(out), func(i int) {
		out[i] = i * i
	})
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}
