// Package meshgo provides an embedded simplicial mesh engine for Go.
//
// A mesh is a piecewise-linear domain: an ordered set of n-dimensional
// vertices and an ordered set of simplices, each referencing dimension+1
// vertex indices. On top of this structure the package answers spatial
// queries (nearest vertex, point containment, barycentric localization) and
// integration queries (per-simplex and total volume, P1 mass matrix,
// per-vertex quadrature weights).
//
// # Quick Start
//
//	vertices := [][]float64{{0, 0}, {1, 0}, {0, 1}}
//	simplices := [][]int{{0, 1, 2}}
//
//	m, _ := meshgo.NewWithSimplices(vertices, simplices)
//
//	inside, _ := m.Contains([]float64{0.25, 0.25}) // true
//	volume := m.Volume()                           // 0.5
//	weights := m.ComputeWeights()                  // sums to 0.5
//
// # Derived Caches
//
// The vertex kd-tree, the vertex-to-simplex incidence map, the per-simplex
// bounding boxes and the memoized total volume are built lazily on first use
// and invalidated by the mutating setters. Nearest-vertex queries use the
// kd-tree when built and otherwise fall back to a parallel linear scan;
// total-volume computation is a parallel reduction over simplex ranges.
//
// # Subpackages
//
//   - render: depth-sorted 3D scene emission (painter's algorithm, backface
//     culling, Phong shading) plus 1D/2D outlines.
//   - meshio: FreeFEM MSH import, legacy VTK export and binary snapshot
//     persistence.
//   - spatial: the kd-tree used for nearest-vertex queries.
package meshgo
