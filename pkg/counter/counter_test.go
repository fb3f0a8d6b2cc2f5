package counter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIncreases(t *testing.T) {
	var c Counter
	prev := c.Next()
	assert.Equal(t, uint64(1), prev)
	for i := 0; i < 1000; i++ {
		n := c.Next()
		require.Greater(t, n, prev)
		prev = n
	}
}

func TestNextConcurrentUnique(t *testing.T) {
	var c Counter
	const workers, each = 8, 500

	var wg sync.WaitGroup
	results := make(chan uint64, workers*each)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				results <- c.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]struct{}, workers*each)
	for n := range results {
		_, dup := seen[n]
		require.False(t, dup, "duplicate id %d", n)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, workers*each)
}
