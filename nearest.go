package meshgo

import (
	"math"
	"time"

	"github.com/hupe1980/meshgo/internal/parallel"
)

type nearestCandidate struct {
	dist2 float64
	index int
}

// NearestVertexIndex returns the index of the vertex closest to point under
// Euclidean distance.
//
// When the kd-tree is built (see BuildKDTree) the query is delegated to it.
// Otherwise a brute-force parallel scan over vertex ranges is performed;
// exact distance ties resolve to the lowest vertex index.
func (m *Mesh) NearestVertexIndex(point []float64) (index int, err error) {
	start := time.Now()
	defer func() { m.opts.metrics.RecordNearest(time.Since(start), err) }()

	if len(point) != m.dimension {
		return 0, &ErrDimensionMismatch{Expected: m.dimension, Actual: len(point)}
	}
	if len(m.vertices) == 0 {
		return 0, ErrEmptyMesh
	}

	if m.tree != nil {
		return m.tree.Nearest(point), nil
	}

	best := parallel.Reduce(len(m.vertices),
		func(lo, hi int) nearestCandidate {
			best := nearestCandidate{dist2: math.MaxFloat64}
			for i := lo; i < hi; i++ {
				d2 := squaredDistance(point, m.vertices[i])
				if d2 < best.dist2 {
					best = nearestCandidate{dist2: d2, index: i}
				}
			}
			return best
		},
		func(a, b nearestCandidate) nearestCandidate {
			// Strict < keeps the first-found minimum on exact ties.
			if b.dist2 < a.dist2 {
				return b
			}
			return a
		})

	return best.index, nil
}

// NearestVertex returns the coordinates of the vertex closest to point.
func (m *Mesh) NearestVertex(point []float64) ([]float64, error) {
	index, err := m.NearestVertexIndex(point)
	if err != nil {
		return nil, err
	}
	return m.Vertex(index)
}

// NearestVertexIndices returns the nearest vertex index for every query
// point. Points are processed independently in parallel; the result order
// matches the input order.
func (m *Mesh) NearestVertexIndices(points [][]float64) ([]int, error) {
	for _, p := range points {
		if len(p) != m.dimension {
			return nil, &ErrDimensionMismatch{Expected: m.dimension, Actual: len(p)}
		}
	}

	indices := make([]int, len(points))
	err := parallel.Map(len(points), func(i int) error {
		index, err := m.NearestVertexIndex(points[i])
		if err != nil {
			return err
		}
		indices[i] = index
		return nil
	})
	if err != nil {
		return nil, err
	}

	return indices, nil
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i, x := range a {
		d := x - b[i]
		sum += d * d
	}
	return sum
}
