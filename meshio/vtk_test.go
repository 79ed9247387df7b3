package meshio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
)

func TestVTKString(t *testing.T) {
	t.Run("Triangle", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[][]int{{0, 1, 2}},
		)
		require.NoError(t, err)

		out, err := VTKString(m, func(o *Options) { o.Title = "triangle" })
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "# vtk DataFile Version 3.0\ntriangle\nASCII\n"))
		assert.Contains(t, out, "DATASET UNSTRUCTURED_GRID\n")
		assert.Contains(t, out, "POINTS 3 float\n")
		// 2D coordinates are padded to three components.
		assert.Contains(t, out, "1 0 0.0\n")
		assert.Contains(t, out, "CELLS 1 4\n3 0 1 2\n")
		assert.Contains(t, out, "CELL_TYPES 1\n5\n")
	})

	t.Run("Interval", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0}, {0.5}},
			[][]int{{0, 1}},
		)
		require.NoError(t, err)

		out, err := VTKString(m)
		require.NoError(t, err)

		assert.Contains(t, out, "0.5 0.0 0.0\n")
		assert.Contains(t, out, "CELLS 1 3\n2 0 1\n")
		assert.Contains(t, out, "CELL_TYPES 1\n3\n")
	})

	t.Run("Tetrahedron", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[][]int{{0, 1, 2, 3}},
		)
		require.NoError(t, err)

		out, err := VTKString(m)
		require.NoError(t, err)

		assert.Contains(t, out, "CELLS 1 5\n4 0 1 2 3\n")
		assert.Contains(t, out, "CELL_TYPES 1\n10\n")
	})

	t.Run("CollapsedSimplices", func(t *testing.T) {
		// Repeated leading indices collapse the cell arity: a "triangle"
		// on a single vertex exports as a point cell.
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0}, {1, 0}},
			[][]int{{0, 0, 0}, {1, 1, 1}},
		)
		require.NoError(t, err)

		out, err := VTKString(m)
		require.NoError(t, err)

		assert.Contains(t, out, "CELLS 2 4\n1 0\n1 1\n")
		assert.Contains(t, out, "CELL_TYPES 2\n1\n1\n")
	})

	t.Run("PointCloud", func(t *testing.T) {
		m, err := meshgo.NewFromVertices([][]float64{{0, 0}, {1, 1}})
		require.NoError(t, err)

		out, err := VTKString(m)
		require.NoError(t, err)

		assert.Contains(t, out, "CELLS 2 4\n1 0\n1 1\n")
		assert.Contains(t, out, "CELL_TYPES 2\n1\n1\n")
	})

	t.Run("DimensionCap", func(t *testing.T) {
		m, err := meshgo.NewFromVertices([][]float64{{0, 0, 0, 0}})
		require.NoError(t, err)

		_, err = VTKString(m)
		var id *meshgo.ErrInvalidDimension
		require.ErrorAs(t, err, &id)
	})
}

func TestExportVTK(t *testing.T) {
	m, err := meshgo.NewWithSimplices(
		[][]float64{{0, 0}, {1, 0}, {0, 1}},
		[][]int{{0, 1, 2}},
	)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, ExportVTK(&sb, m))

	want, err := VTKString(m)
	require.NoError(t, err)
	assert.Equal(t, want, sb.String())
}
