package plotsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/render"
)

func TestRender(t *testing.T) {
	t.Run("TriangleScene", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[][]int{{0, 1, 2}},
		)
		require.NoError(t, err)

		scene, err := render.Draw(m, render.WithTitle("triangle"))
		require.NoError(t, err)

		p, err := Render(scene)
		require.NoError(t, err)
		assert.Equal(t, "triangle", p.Title.Text)
	})

	t.Run("TetrahedronScene", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[][]int{{0, 1, 2, 3}},
		)
		require.NoError(t, err)

		scene, err := render.Draw(m, render.WithShading(true))
		require.NoError(t, err)

		_, err = Render(scene)
		require.NoError(t, err)
	})

	t.Run("PolygonArrayScene", func(t *testing.T) {
		m, err := meshgo.NewWithSimplices(
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[][]int{{0, 1, 2, 3}},
		)
		require.NoError(t, err)

		scene, err := render.Draw(m, render.WithEdges(false))
		require.NoError(t, err)
		require.NotNil(t, scene.Array)

		_, err = Render(scene)
		require.NoError(t, err)
	})
}
