package meshgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func unitInterval(t *testing.T) *Mesh {
	t.Helper()

	m, err := NewWithSimplices(
		[][]float64{{0}, {1}},
		[][]int{{0, 1}},
	)
	require.NoError(t, err)
	return m
}

func unitTetrahedron(t *testing.T) *Mesh {
	t.Helper()

	m, err := NewWithSimplices(
		[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]int{{0, 1, 2, 3}},
	)
	require.NoError(t, err)
	return m
}

func TestSimplexVolume(t *testing.T) {
	t.Run("Interval", func(t *testing.T) {
		m := unitInterval(t)

		v, err := m.SimplexVolume(0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, v, 1e-15)
	})

	t.Run("Triangle", func(t *testing.T) {
		m := unitTriangle(t)

		v, err := m.SimplexVolume(0)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, v, 1e-15)
	})

	t.Run("Tetrahedron", func(t *testing.T) {
		m := unitTetrahedron(t)

		v, err := m.SimplexVolume(0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0/6.0, v, 1e-12)
	})

	t.Run("Degenerate", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}},
			[][]int{{0, 1, 2, 3}},
		)
		require.NoError(t, err)

		v, err := m.SimplexVolume(0)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, v, 1e-12)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		m := unitTriangle(t)

		_, err := m.SimplexVolume(1)
		var oor *ErrOutOfRange
		require.ErrorAs(t, err, &oor)
	})
}

func TestVolume(t *testing.T) {
	t.Run("TwoTriangles", func(t *testing.T) {
		// Unit square split along the diagonal.
		m, err := NewWithSimplices(
			[][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			[][]int{{0, 1, 2}, {1, 3, 2}},
		)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, m.ComputeVolume(), 1e-15)
		assert.InDelta(t, 1.0, m.Volume(), 1e-15)
	})

	t.Run("NoSimplices", func(t *testing.T) {
		m, err := NewFromVertices([][]float64{{0, 0}})
		require.NoError(t, err)

		assert.InDelta(t, 0.0, m.Volume(), 1e-15)
		assert.True(t, m.IsNumericallyEmpty())
	})

	t.Run("NotNumericallyEmpty", func(t *testing.T) {
		m := unitTriangle(t)
		assert.False(t, m.IsNumericallyEmpty())
	})
}

func TestComputeWeights(t *testing.T) {
	t.Run("SumsToVolume", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			[][]int{{0, 1, 2}, {1, 3, 2}},
		)
		require.NoError(t, err)

		weights := m.ComputeWeights()
		require.Len(t, weights, 4)
		assert.InDelta(t, m.Volume(), floats.Sum(weights), 1e-12)
	})

	t.Run("EqualShares", func(t *testing.T) {
		m := unitTriangle(t)

		weights := m.ComputeWeights()
		require.Len(t, weights, 3)
		for _, w := range weights {
			assert.InDelta(t, 0.5/3, w, 1e-15)
		}
	})
}

func TestP1GramMatrix(t *testing.T) {
	t.Run("NoSimplices", func(t *testing.T) {
		m, err := NewFromVertices([][]float64{{0, 0}})
		require.NoError(t, err)
		assert.Nil(t, m.P1GramMatrix())
	})

	t.Run("UnitTriangle", func(t *testing.T) {
		m := unitTriangle(t)

		gram := m.P1GramMatrix()
		require.NotNil(t, gram)

		rows, cols := gram.Dims()
		assert.Equal(t, 3, rows)
		assert.Equal(t, 3, cols)

		// Off-diagonal entries are volume/(dim+2)!, diagonal doubled.
		assert.InDelta(t, 0.5/24, gram.At(0, 1), 1e-15)
		assert.InDelta(t, 0.5/12, gram.At(0, 0), 1e-15)
		assert.InDelta(t, 2*gram.At(0, 1), gram.At(0, 0), 1e-15)
	})

	t.Run("SharedVertexAccumulates", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0}, {1}, {2}},
			[][]int{{0, 1}, {1, 2}},
		)
		require.NoError(t, err)

		gram := m.P1GramMatrix()
		require.NotNil(t, gram)

		// The middle vertex belongs to both intervals.
		assert.InDelta(t, 2*gram.At(0, 0), gram.At(1, 1), 1e-15)
		assert.InDelta(t, 0.0, gram.At(0, 2), 1e-15)
	})
}

func TestIsRegular(t *testing.T) {
	t.Run("RegularGrid", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0}, {1}, {2}, {3}},
			[][]int{{0, 1}, {1, 2}, {2, 3}},
		)
		require.NoError(t, err)
		assert.True(t, m.IsRegular())
	})

	t.Run("IrregularGrid", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0}, {1}, {2.5}},
			[][]int{{0, 1}, {1, 2}},
		)
		require.NoError(t, err)
		assert.False(t, m.IsRegular())
	})

	t.Run("SingleSimplex", func(t *testing.T) {
		m := unitInterval(t)
		assert.True(t, m.IsRegular())
	})

	t.Run("NotOneDimensional", func(t *testing.T) {
		m := unitTriangle(t)
		assert.False(t, m.IsRegular())
	})
}
