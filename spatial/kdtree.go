// Package spatial provides a nearest-vertex index over a fixed set of
// n-dimensional points, keyed by the point's position in the original set.
package spatial

import "gonum.org/v1/gonum/spatial/kdtree"

// Vertex is a coordinate point tagged with its index in the vertex set.
type Vertex struct {
	Coords kdtree.Point
	Index  int
}

// Compare returns the signed distance of v from the plane through c along d.
func (v Vertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return v.Coords[d] - c.(Vertex).Coords[d]
}

// Dims returns the number of coordinate dimensions.
func (v Vertex) Dims() int { return len(v.Coords) }

// Distance returns the squared Euclidean distance between v and c.
func (v Vertex) Distance(c kdtree.Comparable) float64 {
	return v.Coords.Distance(c.(Vertex).Coords)
}

// vertexSet satisfies kdtree.Interface.
type vertexSet []Vertex

func (s vertexSet) Index(i int) kdtree.Comparable { return s[i] }
func (s vertexSet) Len() int                      { return len(s) }
func (s vertexSet) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}
func (s vertexSet) Pivot(d kdtree.Dim) int {
	return plane{vertexSet: s, Dim: d}.Pivot()
}

// plane is a helper for vertexSet.Pivot.
type plane struct {
	kdtree.Dim
	vertexSet
}

func (p plane) Less(i, j int) bool {
	return p.vertexSet[i].Coords[p.Dim] < p.vertexSet[j].Coords[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.vertexSet = p.vertexSet[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.vertexSet[i], p.vertexSet[j] = p.vertexSet[j], p.vertexSet[i]
}

// KDTree answers nearest-vertex queries over a fixed vertex set.
type KDTree struct {
	tree *kdtree.Tree
}

// NewKDTree builds a kd-tree over the given vertices. The vertices are
// copied; later mutations of the input are not reflected in the tree.
func NewKDTree(vertices [][]float64) *KDTree {
	set := make(vertexSet, len(vertices))
	for i, v := range vertices {
		coords := make(kdtree.Point, len(v))
		copy(coords, v)
		set[i] = Vertex{Coords: coords, Index: i}
	}
	return &KDTree{tree: kdtree.New(set, true)}
}

// Len returns the number of indexed vertices.
func (t *KDTree) Len() int { return t.tree.Len() }

// Nearest returns the index of the vertex closest to point under Euclidean
// distance. The tree must contain at least one vertex.
func (t *KDTree) Nearest(point []float64) int {
	got, _ := t.tree.Nearest(Vertex{Coords: kdtree.Point(point)})
	return got.(Vertex).Index
}
