package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	sum := func(lo, hi int) int {
		var s int
		for i := lo; i < hi; i++ {
			s += i
		}
		return s
	}
	add := func(a, b int) int { return a + b }

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0, Reduce(0, sum, add))
	})

	t.Run("Sequential", func(t *testing.T) {
		// Below the parallel threshold.
		assert.Equal(t, 100*99/2, Reduce(100, sum, add))
	})

	t.Run("Parallel", func(t *testing.T) {
		n := 100_000
		assert.Equal(t, n*(n-1)/2, Reduce(n, sum, add))
	})

	t.Run("OrderedMerge", func(t *testing.T) {
		// With a tie-preferring merge the result matches a sequential
		// left-to-right fold: the lowest index of the minimum value wins.
		n := 50_000
		values := make([]int, n)
		for i := range values {
			values[i] = i % 7
		}

		type argMin struct {
			value int
			index int
		}
		got := Reduce(n,
			func(lo, hi int) argMin {
				best := argMin{value: values[lo], index: lo}
				for i := lo + 1; i < hi; i++ {
					if values[i] < best.value {
						best = argMin{value: values[i], index: i}
					}
				}
				return best
			},
			func(a, b argMin) argMin {
				if b.value < a.value {
					return b
				}
				return a
			})

		assert.Equal(t, argMin{value: 0, index: 0}, got)
	})
}

func TestMap(t *testing.T) {
	t.Run("VisitsEveryIndex", func(t *testing.T) {
		n := 10_000
		var visited atomic.Int64
		err := Map(n, func(i int) error {
			visited.Add(int64(i) + 1)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(n)*int64(n+1)/2, visited.Load())
	})

	t.Run("PropagatesError", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := Map(1000, func(i int) error {
			if i == 500 {
				return sentinel
			}
			return nil
		})
		require.ErrorIs(t, err, sentinel)
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, Map(0, func(int) error { return nil }))
	})
}
