// Package render turns a mesh into a drawable scene.
//
// The 3D path is a painter's-algorithm pipeline: rotate vertices, enumerate
// the triangular faces of every tetrahedron, cull inner faces and optionally
// backfaces, sort the survivors by depth and emit them back-to-front, with
// optional per-face Phong shading. 1D and 2D meshes are emitted as vertex
// clouds plus simplex outlines. The scene is pure data; plotting sinks such
// as render/plotsink turn it into an actual picture.
package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/meshgo"
)

// Draw emits a scene for a mesh of dimension 1, 2 or 3.
func Draw(m *meshgo.Mesh, optFns ...Option) (*Scene, error) {
	switch m.Dimension() {
	case 1:
		return Draw1D(m, optFns...)
	case 2:
		return Draw2D(m, optFns...)
	case 3:
		return Draw3D(m, optFns...)
	default:
		return nil, &meshgo.ErrInvalidDimension{Dimension: m.Dimension()}
	}
}

// Draw1D emits the vertices of a 1D mesh as a cloud on the x axis and its
// simplices as segments.
func Draw1D(m *meshgo.Mesh, optFns ...Option) (*Scene, error) {
	opts := resolveOptions(optFns)

	if m.Dimension() != 1 {
		return nil, &meshgo.ErrInvalidDimension{Dimension: m.Dimension()}
	}
	if err := m.CheckValidity(); err != nil {
		return nil, err
	}
	if m.NumVertices() == 0 {
		return nil, meshgo.ErrEmptyMesh
	}

	scene := &Scene{Title: opts.Title}

	vertices := m.Vertices()
	for i, simplex := range m.Simplices() {
		curve := Curve{
			XY: [][2]float64{
				{vertices[simplex[0]][0], 0},
				{vertices[simplex[1]][0], 0},
			},
			Color: RGB{B: 1},
		}
		if i == 0 {
			curve.Legend = countLegend(m.NumSimplices(), "element")
		}
		scene.Curves = append(scene.Curves, curve)
	}

	cloud := Cloud{
		XY:     make([][2]float64, len(vertices)),
		Color:  RGB{R: 1},
		Legend: countLegend(len(vertices), "node"),
	}
	for i, v := range vertices {
		cloud.XY[i] = [2]float64{v[0], 0}
	}
	scene.Clouds = append(scene.Clouds, cloud)

	return scene, nil
}

// Draw2D emits the vertices of a 2D mesh as a cloud and its triangles as
// closed outlines.
func Draw2D(m *meshgo.Mesh, optFns ...Option) (*Scene, error) {
	opts := resolveOptions(optFns)

	if m.Dimension() != 2 {
		return nil, &meshgo.ErrInvalidDimension{Dimension: m.Dimension()}
	}
	if err := m.CheckValidity(); err != nil {
		return nil, err
	}
	if m.NumVertices() == 0 {
		return nil, meshgo.ErrEmptyMesh
	}

	scene := &Scene{Title: opts.Title}

	vertices := m.Vertices()
	for i, simplex := range m.Simplices() {
		curve := Curve{
			XY: [][2]float64{
				{vertices[simplex[0]][0], vertices[simplex[0]][1]},
				{vertices[simplex[1]][0], vertices[simplex[1]][1]},
				{vertices[simplex[2]][0], vertices[simplex[2]][1]},
				{vertices[simplex[0]][0], vertices[simplex[0]][1]},
			},
			Color: RGB{B: 1},
		}
		if i == 0 {
			curve.Legend = countLegend(m.NumSimplices(), "element")
		}
		scene.Curves = append(scene.Curves, curve)
	}

	cloud := Cloud{
		XY:     make([][2]float64, len(vertices)),
		Color:  RGB{R: 1},
		Legend: countLegend(len(vertices), "node"),
	}
	for i, v := range vertices {
		cloud.XY[i] = [2]float64{v[0], v[1]}
	}
	scene.Clouds = append(scene.Clouds, cloud)

	return scene, nil
}

// faceDepth pairs a projected triangle with its depth along the view axis.
type faceDepth struct {
	depth    float64
	vertices [3]int
}

// tetraFaces enumerates the four triangular faces of a tetrahedron by
// position in the simplex tuple.
var tetraFaces = [4][3]int{
	{0, 1, 2},
	{0, 2, 3},
	{0, 3, 1},
	{1, 3, 2},
}

// Draw3D emits the boundary faces of a validated tetrahedral mesh as filled
// triangles, back-to-front.
func Draw3D(m *meshgo.Mesh, optFns ...Option) (*Scene, error) {
	opts := resolveOptions(optFns)

	if m.Dimension() != 3 {
		return nil, &meshgo.ErrInvalidDimension{Dimension: m.Dimension()}
	}
	if err := m.CheckValidity(); err != nil {
		return nil, err
	}
	if err := checkRotation(opts.Rotation); err != nil {
		return nil, err
	}
	if m.NumVertices() == 0 {
		return nil, meshgo.ErrEmptyMesh
	}

	visu := transformVertices(m.Vertices(), opts.Rotation)
	incidence := m.VerticesToSimplices()

	// Enumerate candidate faces, dropping inner faces and, optionally,
	// faces oriented away from the viewer.
	faces := make([]faceDepth, 0, 4*m.NumSimplices())
	for _, simplex := range m.Simplices() {
		for _, face := range tetraFaces {
			i0 := simplex[face[0]]
			i1 := simplex[face[1]]
			i2 := simplex[face[2]]
			if opts.BackfaceCulling && !isVisible(visu[i0], visu[i1], visu[i2]) {
				continue
			}
			if isInnerFace(incidence[i0], incidence[i1], incidence[i2]) {
				continue
			}
			faces = append(faces, faceDepth{
				depth:    visu[i0][2] + visu[i1][2] + visu[i2][2],
				vertices: [3]int{i0, i1, i2},
			})
		}
	}

	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth < faces[j].depth })

	rho := opts.Shrink
	if rho < 0 || rho > 1 {
		rho = math.Min(1, math.Max(0, rho))
		opts.Logger.Warn("shrink factor clamped",
			"rho", opts.Shrink,
			"clamped", rho,
		)
	}

	scene := &Scene{Title: opts.Title}
	if !opts.DrawEdges {
		scene.Array = &PolygonArray{
			XY:      make([][2]float64, 0, 3*len(faces)),
			Arity:   3,
			Palette: make([]RGB, 0, len(faces)),
		}
	}

	// Greatest depth first, so closer faces paint over farther ones.
	for i := len(faces) - 1; i >= 0; i-- {
		v := faces[i].vertices
		face := shrinkFace(visu[v[0]], visu[v[1]], visu[v[2]], rho)

		faceColor := opts.FaceColor
		edgeColor := opts.EdgeColor
		if opts.Shading {
			faceColor, edgeColor = shadeFace(visu[v[0]], visu[v[1]], visu[v[2]], &opts)
		}

		if opts.DrawEdges {
			scene.Polygons = append(scene.Polygons, Polygon{
				XY:   face[:],
				Fill: faceColor,
				Edge: edgeColor,
			})
		} else {
			scene.Array.XY = append(scene.Array.XY, face[:]...)
			scene.Array.Palette = append(scene.Array.Palette, faceColor)
		}
	}

	return scene, nil
}

func resolveOptions(optFns []Option) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = meshgo.NoopLogger()
	}
	return opts
}

func checkRotation(r *mat.Dense) error {
	if r == nil {
		return nil
	}
	rows, cols := r.Dims()
	if rows != 3 || cols != 3 {
		return fmt.Errorf("%w: matrix is %dx%d, want 3x3", meshgo.ErrInvalidRotation, rows, cols)
	}

	var diff mat.Dense
	diff.Mul(r, r.T())
	for i := 0; i < 3; i++ {
		diff.Set(i, i, diff.At(i, i)-1)
	}
	if mat.Norm(&diff, 2) > 1e-5 {
		return meshgo.ErrInvalidRotation
	}
	return nil
}

// transformVertices rotates the vertices around their centroid. A nil or
// diagonal rotation leaves the vertices untouched.
func transformVertices(vertices [][]float64, r *mat.Dense) [][3]float64 {
	visu := make([][3]float64, len(vertices))
	if r == nil || isDiagonal(r) {
		for i, v := range vertices {
			visu[i] = [3]float64{v[0], v[1], v[2]}
		}
		return visu
	}

	var center [3]float64
	for _, v := range vertices {
		for k := 0; k < 3; k++ {
			center[k] += v[k]
		}
	}
	for k := 0; k < 3; k++ {
		center[k] /= float64(len(vertices))
	}

	for i, v := range vertices {
		var shifted [3]float64
		for k := 0; k < 3; k++ {
			shifted[k] = v[k] - center[k]
		}
		for row := 0; row < 3; row++ {
			visu[i][row] = center[row] +
				r.At(row, 0)*shifted[0] +
				r.At(row, 1)*shifted[1] +
				r.At(row, 2)*shifted[2]
		}
	}
	return visu
}

func isDiagonal(r *mat.Dense) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && r.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// isInnerFace reports whether a face is shared by two simplices, detected by
// intersecting the incident-simplex sets of its three vertices.
func isInnerFace(s0, s1, s2 *roaring.Bitmap) bool {
	return roaring.FastAnd(s0, s1, s2).GetCardinality() > 1
}

// isVisible reports whether a face is oriented toward the viewer, by the
// sign of the projected signed area.
func isVisible(v0, v1, v2 [3]float64) bool {
	return (v1[0]-v0[0])*(v2[1]-v0[1]) <= (v1[1]-v0[1])*(v2[0]-v0[0])
}

func shrinkFace(v0, v1, v2 [3]float64, rho float64) [3][2]float64 {
	if rho >= 1 {
		return [3][2]float64{
			{v0[0], v0[1]},
			{v1[0], v1[1]},
			{v2[0], v2[1]},
		}
	}

	cx := (v0[0] + v1[0] + v2[0]) / 3
	cy := (v0[1] + v1[1] + v2[1]) / 3
	return [3][2]float64{
		{cx + rho*(v0[0]-cx), cy + rho*(v0[1]-cy)},
		{cx + rho*(v1[0]-cx), cy + rho*(v1[1]-cy)},
		{cx + rho*(v2[0]-cx), cy + rho*(v2[1]-cy)},
	}
}

// shadeFace computes the Phong face and edge colors. The light source sits
// behind the viewer; the shading is constant per face.
func shadeFace(v0, v1, v2 [3]float64, opts *Options) (face, edge RGB) {
	ab := [3]float64{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	ac := [3]float64{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}

	n := [3]float64{
		ab[1]*ac[2] - ab[2]*ac[1],
		ab[2]*ac[0] - ab[0]*ac[2],
		ab[0]*ac[1] - ab[1]*ac[0],
	}
	norm := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	for k := range n {
		n[k] /= norm
	}
	// Flip the normal if it points away from the viewer.
	if n[2] < 0 {
		for k := range n {
			n[k] = -n[k]
		}
	}

	cosTheta := n[2]
	// Reflected ray; unit by construction.
	cosPhi := math.Abs(2*cosTheta*n[2] - 1)

	diffuse := opts.Diffuse * cosTheta
	specular := opts.Specular * math.Pow(cosPhi, opts.Shininess)

	ambient := RGB{
		R: opts.Ambient * opts.AmbientColor.R,
		G: opts.Ambient * opts.AmbientColor.G,
		B: opts.Ambient * opts.AmbientColor.B,
	}
	light := RGB{
		R: specular * opts.LightColor.R,
		G: specular * opts.LightColor.G,
		B: specular * opts.LightColor.B,
	}

	face = RGB{
		R: ambient.R + diffuse*opts.FaceColor.R + light.R,
		G: ambient.G + diffuse*opts.FaceColor.G + light.G,
		B: ambient.B + diffuse*opts.FaceColor.B + light.B,
	}
	edge = RGB{
		R: ambient.R + diffuse*opts.EdgeColor.R + light.R,
		G: ambient.G + diffuse*opts.EdgeColor.G + light.G,
		B: ambient.B + diffuse*opts.EdgeColor.B + light.B,
	}
	return face, edge
}

func countLegend(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
