package meshgo

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/mat"
)

// SimplexMatrix returns the (dimension+1)x(dimension+1) matrix of the given
// simplex: vertex coordinates as columns with an added row of ones for
// affine normalization.
func (m *Mesh) SimplexMatrix(index int) (*mat.Dense, error) {
	if index < 0 || index >= len(m.simplices) {
		return nil, newSimplexRangeError(index, len(m.simplices))
	}
	return m.simplexMatrix(index), nil
}

func (m *Mesh) simplexMatrix(index int) *mat.Dense {
	d := m.dimension
	a := mat.NewDense(d+1, d+1, nil)
	for j, vi := range m.simplices[index] {
		v := m.vertices[vi]
		for i := 0; i < d; i++ {
			a.Set(i, j, v[i])
		}
		a.Set(d, j, 1)
	}
	return a
}

// CheckPointInSimplex reports whether point lies in the given simplex.
func (m *Mesh) CheckPointInSimplex(point []float64, index int) (bool, error) {
	inside, _, err := m.CheckPointInSimplexWithCoordinates(point, index)
	return inside, err
}

// CheckPointInSimplexWithCoordinates reports whether point lies in the given
// simplex and returns its barycentric coordinates. The point is inside iff
// every coordinate lies in [0, 1].
//
// The coordinates are obtained by a linear-system solve, not an explicit
// inverse. They are returned whenever the solve ran, inside or not; a
// bounding-box rejection or a degenerate simplex yields nil coordinates.
func (m *Mesh) CheckPointInSimplexWithCoordinates(point []float64, index int) (bool, []float64, error) {
	if len(point) != m.dimension {
		return false, nil, &ErrDimensionMismatch{Expected: m.dimension, Actual: len(point)}
	}
	if index < 0 || index >= len(m.simplices) {
		return false, nil, newSimplexRangeError(index, len(m.simplices))
	}
	inside, coords := m.checkPointInSimplex(point, index)
	return inside, coords, nil
}

// checkPointInSimplex assumes point and index were validated by the caller.
func (m *Mesh) checkPointInSimplex(point []float64, index int) (bool, []float64) {
	// Cheap necessary condition, skipped when boxes are not cached.
	if m.lowerBox != nil {
		for k, x := range point {
			if x < m.lowerBox[index][k] || x > m.upperBox[index][k] {
				return false, nil
			}
		}
	}

	var lu mat.LU
	lu.Factorize(m.simplexMatrix(index))

	rhs := make([]float64, m.dimension+1)
	copy(rhs, point)
	rhs[m.dimension] = 1

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(len(rhs), rhs)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			// Degenerate simplex, the point cannot be located.
			return false, nil
		}
	}

	coords := make([]float64, m.dimension+1)
	for i := range coords {
		coords[i] = x.AtVec(i)
	}
	for _, c := range coords {
		if c < 0 || c > 1 {
			return false, coords
		}
	}
	return true, coords
}

// Contains reports whether point lies in some simplex of the mesh.
//
// The query proceeds in three stages: rejection against the overall
// bounding box, then the simplices incident to the nearest vertex, then an
// exhaustive scan. The last stage handles points whose containing simplex
// does not touch the nearest vertex, as happens with thin or obtuse
// simplices.
func (m *Mesh) Contains(point []float64) (contained bool, err error) {
	start := time.Now()
	defer func() { m.opts.metrics.RecordContains(time.Since(start), err) }()

	if len(point) != m.dimension {
		return false, &ErrDimensionMismatch{Expected: m.dimension, Actual: len(point)}
	}

	lower, upper := m.LowerBound(), m.UpperBound()
	if lower == nil {
		return false, nil
	}
	for k, x := range point {
		if x < lower[k] || x > upper[k] {
			return false, nil
		}
	}

	nearest, err := m.NearestVertexIndex(point)
	if err != nil {
		return false, err
	}

	incidence := m.VerticesToSimplices()
	it := incidence[nearest].Iterator()
	for it.HasNext() {
		if inside, _ := m.checkPointInSimplex(point, int(it.Next())); inside {
			return true, nil
		}
	}

	for i := range m.simplices {
		if inside, _ := m.checkPointInSimplex(point, i); inside {
			return true, nil
		}
	}
	return false, nil
}

// Location is the result of Locate.
type Location struct {
	// VertexIndex is the index of the nearest vertex.
	VertexIndex int
	// SimplexIndex is the index of the simplex containing the query point,
	// valid only when Found is true.
	SimplexIndex int
	// Coordinates holds the barycentric coordinates of the query point in
	// the found simplex, empty when Found is false.
	Coordinates []float64
	// Found reports whether a containing simplex incident to the nearest
	// vertex exists.
	Found bool
}

// Locate returns the nearest vertex and, when one of its incident simplices
// contains the point, that simplex together with the point's barycentric
// coordinates.
//
// Unlike Contains, Locate does not fall back to an exhaustive scan: a point
// whose containing simplex does not touch the nearest vertex is reported as
// not found. Callers needing the full answer combine Locate with Contains.
func (m *Mesh) Locate(point []float64) (Location, error) {
	if len(point) != m.dimension {
		return Location{}, &ErrDimensionMismatch{Expected: m.dimension, Actual: len(point)}
	}

	nearest, err := m.NearestVertexIndex(point)
	if err != nil {
		return Location{}, err
	}
	loc := Location{VertexIndex: nearest}

	incidence := m.VerticesToSimplices()
	it := incidence[nearest].Iterator()
	for it.HasNext() {
		index := int(it.Next())
		if inside, coords := m.checkPointInSimplex(point, index); inside {
			loc.SimplexIndex = index
			loc.Coordinates = coords
			loc.Found = true
			break
		}
	}
	return loc, nil
}
