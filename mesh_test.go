package meshgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle(t *testing.T) *Mesh {
	t.Helper()

	m, err := NewWithSimplices(
		[][]float64{{0, 0}, {1, 0}, {0, 1}},
		[][]int{{0, 1, 2}},
	)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New(0)
		var ide *ErrInvalidDimension
		require.ErrorAs(t, err, &ide)
		assert.Equal(t, 0, ide.Dimension)
	})

	t.Run("EmptyMesh", func(t *testing.T) {
		m, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 3, m.Dimension())
		assert.Equal(t, 0, m.NumVertices())
		assert.Equal(t, 0, m.NumSimplices())
		assert.True(t, m.IsValid())
	})

	t.Run("NoVertices", func(t *testing.T) {
		_, err := NewFromVertices(nil)
		require.ErrorIs(t, err, ErrEmptyMesh)
	})

	t.Run("RaggedVertices", func(t *testing.T) {
		_, err := NewFromVertices([][]float64{{0, 0}, {1}})
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)
	})
}

func TestMeshAccessors(t *testing.T) {
	m := unitTriangle(t)

	t.Run("Vertex", func(t *testing.T) {
		v, err := m.Vertex(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0}, v)
	})

	t.Run("VertexOutOfRange", func(t *testing.T) {
		_, err := m.Vertex(3)
		var oor *ErrOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, "vertex", oor.Kind)
		assert.Equal(t, 3, oor.Index)
		assert.Equal(t, 3, oor.Bound)
	})

	t.Run("Simplex", func(t *testing.T) {
		s, err := m.Simplex(0)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, s)
	})

	t.Run("SimplexOutOfRange", func(t *testing.T) {
		_, err := m.Simplex(1)
		var oor *ErrOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, "simplex", oor.Kind)
	})

	t.Run("Bounds", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0}, m.LowerBound())
		assert.Equal(t, []float64{1, 1}, m.UpperBound())
	})
}

func TestCheckValidity(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m := unitTriangle(t)
		require.NoError(t, m.CheckValidity())
		assert.True(t, m.IsValid())
	})

	t.Run("WrongArity", func(t *testing.T) {
		m, err := NewFromVertices([][]float64{{0, 0}, {1, 0}})
		require.NoError(t, err)
		m.SetSimplices([][]int{{0, 1}})

		require.ErrorIs(t, m.CheckValidity(), ErrInvalidSimplex)
		assert.False(t, m.IsValid())
	})

	t.Run("UnknownVertex", func(t *testing.T) {
		m, err := NewFromVertices([][]float64{{0, 0}, {1, 0}})
		require.NoError(t, err)
		m.SetSimplices([][]int{{0, 1, 7}})

		require.ErrorIs(t, m.CheckValidity(), ErrInvalidSimplex)
	})
}

func TestEqual(t *testing.T) {
	a := unitTriangle(t)
	b := unitTriangle(t)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetVertex(0, []float64{0.5, 0}))
	assert.False(t, a.Equal(b))

	c := unitTriangle(t)
	c.SetSimplices([][]int{{2, 1, 0}})
	assert.False(t, a.Equal(c))

	assert.False(t, a.Equal(nil))
}

func TestCacheInvalidation(t *testing.T) {
	t.Run("SetSimplicesIdenticalKeepsCaches", func(t *testing.T) {
		m := unitTriangle(t)
		before := m.VerticesToSimplices()

		m.SetSimplices([][]int{{0, 1, 2}})
		after := m.VerticesToSimplices()

		assert.Same(t, before[0], after[0])
	})

	t.Run("SetSimplicesDifferentResetsCaches", func(t *testing.T) {
		m := unitTriangle(t)
		before := m.VerticesToSimplices()

		m.SetSimplices([][]int{{2, 1, 0}})
		after := m.VerticesToSimplices()

		assert.NotSame(t, before[0], after[0])
	})

	t.Run("SetVerticesResetsKDTree", func(t *testing.T) {
		m := unitTriangle(t)
		m.BuildKDTree()
		require.True(t, m.HasKDTree())

		require.NoError(t, m.SetVertices([][]float64{{0, 0}, {2, 0}, {0, 2}}))
		assert.False(t, m.HasKDTree())
	})

	t.Run("SetVertexInvalidatesVolume", func(t *testing.T) {
		m, err := NewWithSimplices(
			[][]float64{{0}, {1}},
			[][]int{{0, 1}},
		)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, m.Volume(), 1e-15)

		require.NoError(t, m.SetVertex(1, []float64{2}))
		assert.InDelta(t, 2.0, m.Volume(), 1e-15)
	})
}

func TestSnapshotRestore(t *testing.T) {
	m := unitTriangle(t)
	m.BuildKDTree()
	_ = m.VerticesToSimplices()
	volume := m.Volume()

	restored, err := Restore(m.Snapshot())
	require.NoError(t, err)

	assert.True(t, m.Equal(restored))
	assert.True(t, restored.HasKDTree())
	assert.InDelta(t, volume, restored.Volume(), 1e-15)

	lower, upper, err := restored.SimplexBoundingBox(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, lower)
	assert.Equal(t, []float64{1, 1}, upper)
}
