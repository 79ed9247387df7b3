package meshgo

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/meshgo/spatial"
)

// Mesh is a piecewise-linear domain made of n-dimensional vertices and
// simplices. A simplex in dimension n references exactly n+1 vertex indices.
//
// The vertex and simplex sets are the single source of truth. The kd-tree,
// the vertex-to-simplex incidence map, the per-simplex bounding boxes and
// the memoized total volume are derived from them lazily and invalidated by
// the mutating setters.
//
// Concurrent reads (containment, nearest-vertex, volume queries) are safe
// once the derived caches are populated. First-touch lazy population is not
// synchronized: callers running queries concurrently must either serialize
// the very first access or populate the caches up front via
// VerticesToSimplices, BuildKDTree and Volume.
type Mesh struct {
	dimension int
	vertices  [][]float64
	simplices [][]int

	tree *spatial.KDTree

	incidence []*roaring.Bitmap
	lowerBox  [][]float64
	upperBox  [][]float64

	volume      float64
	volumeValid bool

	opts options
}

// New creates an empty mesh of the given dimension.
func New(dimension int, optFns ...Option) (*Mesh, error) {
	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Mesh{
		dimension: dimension,
		opts:      opts,
	}, nil
}

// NewFromVertices creates a simplex-free mesh from a vertex set. The mesh
// dimension is taken from the first vertex.
func NewFromVertices(vertices [][]float64, optFns ...Option) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	m, err := New(len(vertices[0]), optFns...)
	if err != nil {
		return nil, err
	}
	if err := m.SetVertices(vertices); err != nil {
		return nil, err
	}

	return m, nil
}

// NewWithSimplices creates a mesh from a vertex set and a simplex set.
// The simplex set is not validated eagerly; use CheckValidity.
func NewWithSimplices(vertices [][]float64, simplices [][]int, optFns ...Option) (*Mesh, error) {
	m, err := NewFromVertices(vertices, optFns...)
	if err != nil {
		return nil, err
	}
	m.SetSimplices(simplices)

	return m, nil
}

// Dimension returns the fixed spatial dimension of the mesh.
func (m *Mesh) Dimension() int { return m.dimension }

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumSimplices returns the number of simplices.
func (m *Mesh) NumSimplices() int { return len(m.simplices) }

// Vertices returns the vertex set. The returned slices are shared with the
// mesh and must not be modified; use SetVertices or SetVertex instead.
func (m *Mesh) Vertices() [][]float64 { return m.vertices }

// Simplices returns the simplex set. The returned slices are shared with the
// mesh and must not be modified; use SetSimplices instead.
func (m *Mesh) Simplices() [][]int { return m.simplices }

// Vertex returns a copy of the vertex at the given index.
func (m *Mesh) Vertex(index int) ([]float64, error) {
	if index < 0 || index >= len(m.vertices) {
		return nil, newVertexRangeError(index, len(m.vertices))
	}
	return slices.Clone(m.vertices[index]), nil
}

// Simplex returns a copy of the simplex at the given index.
func (m *Mesh) Simplex(index int) ([]int, error) {
	if index < 0 || index >= len(m.simplices) {
		return nil, newSimplexRangeError(index, len(m.simplices))
	}
	return slices.Clone(m.simplices[index]), nil
}

// SetVertices replaces the whole vertex set and resets every derived cache:
// the kd-tree, the incidence map, the bounding boxes and the volume memo.
func (m *Mesh) SetVertices(vertices [][]float64) error {
	for i, v := range vertices {
		if len(v) != m.dimension {
			return &ErrDimensionMismatch{
				Expected: m.dimension,
				Actual:   len(v),
				cause:    fmt.Errorf("vertex %d", i),
			}
		}
	}

	m.vertices = make([][]float64, len(vertices))
	for i, v := range vertices {
		m.vertices[i] = slices.Clone(v)
	}

	m.tree = nil
	m.invalidateTopology()
	m.volumeValid = false

	return nil
}

// SetVertex replaces a single vertex. Only the volume memo is invalidated:
// the kd-tree, the incidence map and the bounding boxes are intentionally
// kept, so positional queries are stale until the vertex set is replaced
// wholesale. Connectivity-level caches are consistent only with respect to
// the simplex set.
func (m *Mesh) SetVertex(index int, vertex []float64) error {
	if index < 0 || index >= len(m.vertices) {
		return newVertexRangeError(index, len(m.vertices))
	}
	if len(vertex) != m.dimension {
		return &ErrDimensionMismatch{Expected: m.dimension, Actual: len(vertex)}
	}

	m.vertices[index] = slices.Clone(vertex)
	m.volumeValid = false

	return nil
}

// SetSimplices replaces the whole simplex set. Replacing the set with an
// identical one (by value) is a no-op, so already-built caches survive.
// Otherwise the incidence map, the bounding boxes and the volume memo are
// reset; the vertex kd-tree is untouched.
func (m *Mesh) SetSimplices(simplices [][]int) {
	if simplexSetsEqual(m.simplices, simplices) {
		return
	}

	m.simplices = make([][]int, len(simplices))
	for i, s := range simplices {
		m.simplices[i] = slices.Clone(s)
	}

	m.invalidateTopology()
	m.volumeValid = false
}

func (m *Mesh) invalidateTopology() {
	m.incidence = nil
	m.lowerBox = nil
	m.upperBox = nil
}

// BuildKDTree builds the vertex kd-tree to speed up nearest-vertex queries.
// Without it, nearest-vertex queries fall back to a parallel linear scan.
func (m *Mesh) BuildKDTree() {
	if len(m.vertices) == 0 {
		m.opts.logger.Debug("kd-tree build skipped, mesh has no vertex")
		return
	}
	m.tree = spatial.NewKDTree(m.vertices)
	m.opts.logger.WithVertices(len(m.vertices)).Debug("kd-tree built")
}

// HasKDTree reports whether the vertex kd-tree is currently built.
func (m *Mesh) HasKDTree() bool { return m.tree != nil }

// CheckValidity verifies that every simplex has exactly dimension+1 entries,
// each referencing an existing vertex. Duplicate vertices, degenerate
// simplices and improper overlaps are not detected.
//
// Routine queries do not validate eagerly; on an invalid mesh they may
// produce undefined results.
func (m *Mesh) CheckValidity() error {
	for i, simplex := range m.simplices {
		if len(simplex) != m.dimension+1 {
			return fmt.Errorf("%w: mesh has dimension %d but simplex %d has size %d",
				ErrInvalidSimplex, m.dimension, i, len(simplex))
		}
		for _, v := range simplex {
			if v < 0 || v >= len(m.vertices) {
				return fmt.Errorf("%w: mesh has %d vertices but simplex %d refers to vertex %d",
					ErrInvalidSimplex, len(m.vertices), i, v)
			}
		}
	}
	return nil
}

// IsValid reports whether CheckValidity returns no error.
func (m *Mesh) IsValid() bool { return m.CheckValidity() == nil }

// Equal reports whether both meshes hold equal vertex and simplex sets by
// value. Derived caches are not compared.
func (m *Mesh) Equal(other *Mesh) bool {
	if m == other {
		return true
	}
	if other == nil || m.dimension != other.dimension {
		return false
	}
	if len(m.vertices) != len(other.vertices) {
		return false
	}
	for i := range m.vertices {
		if !slices.Equal(m.vertices[i], other.vertices[i]) {
			return false
		}
	}
	return simplexSetsEqual(m.simplices, other.simplices)
}

// LowerBound returns the per-axis minimum over all vertices, or nil for a
// vertex-free mesh.
func (m *Mesh) LowerBound() []float64 {
	return m.bound(func(a, b float64) bool { return a < b })
}

// UpperBound returns the per-axis maximum over all vertices, or nil for a
// vertex-free mesh.
func (m *Mesh) UpperBound() []float64 {
	return m.bound(func(a, b float64) bool { return a > b })
}

func (m *Mesh) bound(better func(a, b float64) bool) []float64 {
	if len(m.vertices) == 0 {
		return nil
	}
	bound := slices.Clone(m.vertices[0])
	for _, v := range m.vertices[1:] {
		for k, x := range v {
			if better(x, bound[k]) {
				bound[k] = x
			}
		}
	}
	return bound
}

func simplexSetsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
