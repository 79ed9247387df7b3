package meshgo

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Snapshot is the serializable state of a mesh: the vertex and simplex sets
// together with the derived caches, so a restored mesh does not rebuild them
// from scratch. The binary encoding lives in the meshio package.
type Snapshot struct {
	Dimension int
	Vertices  [][]float64
	Simplices [][]int

	// Derived state. Incidence, LowerBoxes and UpperBoxes are either all
	// present or all nil.
	Incidence  []*roaring.Bitmap
	LowerBoxes [][]float64
	UpperBoxes [][]float64

	Volume      float64
	VolumeValid bool

	// TreeBuilt records whether the kd-tree was built; the tree itself is
	// reconstructed on restore.
	TreeBuilt bool
}

// Snapshot captures the current mesh state, including derived caches in
// whatever build state they are in. The snapshot shares no memory with the
// mesh; the incidence bitmaps are deep-cloned.
func (m *Mesh) Snapshot() *Snapshot {
	s := &Snapshot{
		Dimension:   m.dimension,
		Vertices:    cloneMatrix(m.vertices),
		Simplices:   cloneIndexMatrix(m.simplices),
		Volume:      m.volume,
		VolumeValid: m.volumeValid,
		TreeBuilt:   m.tree != nil,
	}
	if m.incidence != nil {
		s.Incidence = make([]*roaring.Bitmap, len(m.incidence))
		for i, b := range m.incidence {
			s.Incidence[i] = b.Clone()
		}
		s.LowerBoxes = cloneMatrix(m.lowerBox)
		s.UpperBoxes = cloneMatrix(m.upperBox)
	}
	return s
}

// Restore reconstructs a mesh from a snapshot, reinstating the derived
// caches without recomputation. The kd-tree is rebuilt when the snapshot
// recorded one.
func Restore(s *Snapshot, optFns ...Option) (*Mesh, error) {
	m, err := New(s.Dimension, optFns...)
	if err != nil {
		return nil, err
	}
	if err := m.SetVertices(s.Vertices); err != nil {
		return nil, err
	}
	m.SetSimplices(s.Simplices)

	if s.Incidence != nil {
		m.incidence = make([]*roaring.Bitmap, len(s.Incidence))
		for i, b := range s.Incidence {
			m.incidence[i] = b.Clone()
		}
		m.lowerBox = cloneMatrix(s.LowerBoxes)
		m.upperBox = cloneMatrix(s.UpperBoxes)
	}

	m.volume = s.Volume
	m.volumeValid = s.VolumeValid

	if s.TreeBuilt {
		m.BuildKDTree()
	}
	return m, nil
}

func cloneMatrix(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

func cloneIndexMatrix(rows [][]int) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = append([]int(nil), r...)
	}
	return out
}
