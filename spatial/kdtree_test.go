package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo/util"
)

func TestKDTree(t *testing.T) {
	t.Run("Nearest", func(t *testing.T) {
		tree := NewKDTree([][]float64{
			{0, 0},
			{10, 0},
			{0, 10},
			{10, 10},
		})
		require.Equal(t, 4, tree.Len())

		assert.Equal(t, 0, tree.Nearest([]float64{1, 1}))
		assert.Equal(t, 1, tree.Nearest([]float64{9, 2}))
		assert.Equal(t, 2, tree.Nearest([]float64{-1, 12}))
		assert.Equal(t, 3, tree.Nearest([]float64{10, 10}))
	})

	t.Run("CopiesInput", func(t *testing.T) {
		vertices := [][]float64{{0}, {1}}
		tree := NewKDTree(vertices)

		vertices[0][0] = 100
		assert.Equal(t, 0, tree.Nearest([]float64{-1}))
	})

	t.Run("AgreesWithBruteForce", func(t *testing.T) {
		rng := util.NewRNG(7)
		vertices := rng.GenerateRandomVertices(300, 4)
		tree := NewKDTree(vertices)

		queries := rng.GenerateRandomVertices(30, 4)
		for _, q := range queries {
			best, bestDist := -1, 0.0
			for i, v := range vertices {
				var d float64
				for k := range q {
					diff := q[k] - v[k]
					d += diff * diff
				}
				if best < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}

			got := tree.Nearest(q)
			var gotDist float64
			for k := range q {
				diff := q[k] - vertices[got][k]
				gotDist += diff * diff
			}
			assert.InDelta(t, bestDist, gotDist, 1e-12)
		}
	})
}
