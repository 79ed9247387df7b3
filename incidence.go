package meshgo

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// VerticesToSimplices returns, for each vertex, the set of simplex indices
// containing it. The map is built lazily in a single pass over all simplices,
// together with the per-simplex bounding boxes, and memoized until the
// vertex or simplex set changes.
//
// The returned bitmaps are shared with the mesh and must not be modified.
func (m *Mesh) VerticesToSimplices() []*roaring.Bitmap {
	m.ensureIncidence()
	return m.incidence
}

// SimplexBoundingBox returns the axis-aligned lower and upper corners of the
// given simplex, building the bounding-box cache if needed.
func (m *Mesh) SimplexBoundingBox(index int) (lower, upper []float64, err error) {
	if index < 0 || index >= len(m.simplices) {
		return nil, nil, newSimplexRangeError(index, len(m.simplices))
	}
	m.ensureIncidence()
	return m.lowerBox[index], m.upperBox[index], nil
}

func (m *Mesh) ensureIncidence() {
	if m.incidence != nil {
		return
	}

	numVertices := len(m.vertices)
	numSimplices := len(m.simplices)

	incidence := make([]*roaring.Bitmap, numVertices)
	for i := range incidence {
		incidence[i] = roaring.New()
	}

	lower := make([][]float64, numSimplices)
	upper := make([][]float64, numSimplices)
	for i, simplex := range m.simplices {
		lo := make([]float64, m.dimension)
		hi := make([]float64, m.dimension)
		for k := range lo {
			lo[k] = math.MaxFloat64
			hi[k] = -math.MaxFloat64
		}
		for _, v := range simplex {
			incidence[v].Add(uint32(i))
			for k, x := range m.vertices[v] {
				if x < lo[k] {
					lo[k] = x
				}
				if x > hi[k] {
					hi[k] = x
				}
			}
		}
		lower[i] = lo
		upper[i] = hi
	}

	m.incidence = incidence
	m.lowerBox = lower
	m.upperBox = upper

	m.opts.logger.LogCacheRebuild("incidence", numSimplices)
}
