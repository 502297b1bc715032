package threadid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_StableWithinGoroutine(t *testing.T) {
	a := Current()
	b := Current()
	assert.NotZero(t, a)
	assert.Equal(t, a, b)
}

func TestCurrent_DistinctAcrossGoroutines(t *testing.T) {
	const n = 8
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range ids {
		go func(i int) {
			defer wg.Done()
			ids[i] = Current()
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		assert.NotZero(t, id)
		assert.False(t, seen[id], "goroutine id %d reused across concurrent goroutines", id)
		seen[id] = true
	}
}
