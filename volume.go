package meshgo

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/meshgo/internal/parallel"
)

// SimplexVolume returns the volume of the given simplex.
//
// 1D and 2D use closed forms. In general dimension the volume is
// |det M| / n! computed through the log-absolute-determinant of the simplex
// matrix and a log-gamma subtraction, which stays finite for
// high-dimensional or ill-scaled simplices.
func (m *Mesh) SimplexVolume(index int) (float64, error) {
	if index < 0 || index >= len(m.simplices) {
		return 0, newSimplexRangeError(index, len(m.simplices))
	}
	return m.simplexVolume(index), nil
}

func (m *Mesh) simplexVolume(index int) float64 {
	simplex := m.simplices[index]

	switch m.dimension {
	case 1:
		x0 := m.vertices[simplex[0]][0]
		x1 := m.vertices[simplex[1]][0]
		return math.Abs(x1 - x0)
	case 2:
		v0 := m.vertices[simplex[0]]
		v1 := m.vertices[simplex[1]]
		v2 := m.vertices[simplex[2]]
		return 0.5 * math.Abs((v2[0]-v0[0])*(v1[1]-v0[1])-(v0[0]-v1[0])*(v2[1]-v0[1]))
	}

	logAbsDet, _ := mat.LogDet(m.simplexMatrix(index))
	logFactorial, _ := math.Lgamma(float64(m.dimension) + 1)
	return math.Exp(logAbsDet - logFactorial)
}

// ComputeVolume sums the per-simplex volumes with a parallel reduction over
// simplex ranges and refreshes the volume memo.
func (m *Mesh) ComputeVolume() float64 {
	start := time.Now()
	defer func() { m.opts.metrics.RecordVolume(time.Since(start)) }()

	volume := parallel.Reduce(len(m.simplices),
		func(lo, hi int) float64 {
			var sum float64
			for i := lo; i < hi; i++ {
				sum += m.simplexVolume(i)
			}
			return sum
		},
		func(a, b float64) float64 { return a + b })

	m.volume = volume
	m.volumeValid = true
	m.opts.logger.LogVolume(volume, len(m.simplices))

	return volume
}

// Volume returns the memoized total volume, recomputing it after any mesh
// mutation.
func (m *Mesh) Volume() float64 {
	if !m.volumeValid {
		return m.ComputeVolume()
	}
	return m.volume
}

// IsNumericallyEmpty reports whether the total volume is below the
// configured small-volume threshold.
func (m *Mesh) IsNumericallyEmpty() bool {
	return m.Volume() <= m.opts.smallVolume
}

// P1GramMatrix assembles the mass matrix of the piecewise-linear P1 basis:
// for each simplex an analytic elementary Gram matrix, scaled by the simplex
// volume and scatter-added into a vertex-by-vertex matrix.
//
// A simplex-free mesh yields a nil matrix.
func (m *Mesh) P1GramMatrix() *mat.SymDense {
	if len(m.simplices) == 0 {
		return nil
	}

	simplexSize := m.dimension + 1
	// Off-diagonal entries are 1/(dim+2)!, diagonal entries are doubled.
	offDiagonal := 1.0 / math.Gamma(float64(simplexSize)+2)

	elementary := make([]float64, simplexSize*simplexSize)
	for j := 0; j < simplexSize; j++ {
		for k := 0; k < simplexSize; k++ {
			elementary[j*simplexSize+k] = offDiagonal
		}
		elementary[j*simplexSize+j] *= 2
	}

	numVertices := len(m.vertices)
	gram := make([]float64, numVertices*numVertices)
	for i := range m.simplices {
		simplex := m.simplices[i]
		delta := m.simplexVolume(i)
		for j := 0; j < simplexSize; j++ {
			row := simplex[j]
			for k := 0; k < simplexSize; k++ {
				gram[row*numVertices+simplex[k]] += delta * elementary[j*simplexSize+k]
			}
		}
	}

	return mat.NewSymDense(numVertices, gram)
}

// ComputeWeights returns per-vertex integration weights: each simplex donates
// an equal 1/(dimension+1) share of its volume to each of its vertices. A
// weighted sum of vertex values then approximates the volume integral of a
// piecewise-linear function, and the weights sum to the total volume.
func (m *Mesh) ComputeWeights() []float64 {
	volumes := make([]float64, len(m.simplices))
	for i := range m.simplices {
		volumes[i] = m.simplexVolume(i)
	}

	incidence := m.VerticesToSimplices()

	weights := make([]float64, len(m.vertices))
	for i, simplices := range incidence {
		var weight float64
		it := simplices.Iterator()
		for it.HasNext() {
			weight += volumes[it.Next()]
		}
		weights[i] = weight
	}
	if len(weights) > 0 {
		floats.Scale(1/(float64(m.dimension)+1), weights)
	}
	return weights
}

// IsRegular reports whether the mesh has constant simplex spacing. Only 1D
// meshes can be regular; meshes with at most one simplex trivially are.
func (m *Mesh) IsRegular() bool {
	if m.dimension != 1 {
		return false
	}
	if len(m.simplices) <= 1 {
		return true
	}

	step := m.vertices[m.simplices[0][1]][0] - m.vertices[m.simplices[0][0]][0]
	for _, simplex := range m.simplices[1:] {
		spacing := m.vertices[simplex[1]][0] - m.vertices[simplex[0]][0]
		if math.Abs(spacing-step) >= m.opts.vertexEpsilon {
			return false
		}
	}
	return true
}
