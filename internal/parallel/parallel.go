// Package parallel provides fixed-partition fan-out/fan-in helpers for
// data-parallel reductions and maps over index ranges.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelSize is the range length under which the sequential path is
// taken; goroutine fan-out costs more than it saves on tiny inputs.
const minParallelSize = 1024

// Reduce folds body over the range [0, n) in parallel. The range is split
// into contiguous partitions, body computes a partial result per partition
// and merge combines the partials in partition order.
//
// merge must be associative. Because partials are merged strictly in index
// order, the result is identical to a sequential left-to-right fold whenever
// merge prefers its first argument on exact ties, regardless of partition
// boundaries.
func Reduce[T any](n int, body func(lo, hi int) T, merge func(a, b T) T) T {
	workers := runtime.GOMAXPROCS(0)
	if n < minParallelSize || workers < 2 {
		return body(0, n)
	}

	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	partials := make([]T, 0, workers)
	bounds := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		bounds = append(bounds, [2]int{lo, hi})
		var zero T
		partials = append(partials, zero)
	}

	var g errgroup.Group
	for k, b := range bounds {
		g.Go(func() error {
			partials[k] = body(b[0], b[1])
			return nil
		})
	}
	// Workers cannot fail; Wait only synchronizes.
	_ = g.Wait()

	result := partials[0]
	for _, p := range partials[1:] {
		result = merge(result, p)
	}
	return result
}

// Map runs body for every index in [0, n) in parallel and returns the first
// error encountered. Each index is independent; concurrency is bounded by
// GOMAXPROCS.
func Map(n int, body func(i int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if n < 2 || workers < 2 {
		for i := 0; i < n; i++ {
			if err := body(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return body(i)
		})
	}
	return g.Wait()
}
