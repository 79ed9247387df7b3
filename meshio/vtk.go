package meshio

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/meshgo"
)

// VTK cell type codes by vertices per cell.
const (
	vtkCellVertex      = 1
	vtkCellLine        = 3
	vtkCellTriangle    = 5
	vtkCellTetrahedron = 10
)

// VTKString renders the mesh in the legacy ASCII VTK unstructured-grid
// format. Vertices of dimension below 3 are padded with zero coordinates;
// the cell type is derived from the arity of the first simplex, all
// simplices being assumed homogeneous. A simplex-free mesh is exported as a
// cloud of point cells. The export dimension is capped at 3.
//
// Coordinates are written with 16 significant digits.
func VTKString(m *meshgo.Mesh, optFns ...func(*Options)) (string, error) {
	opts := resolveOptions(optFns)

	if m.Dimension() > 3 {
		return "", &meshgo.ErrInvalidDimension{Dimension: m.Dimension()}
	}

	var sb strings.Builder

	// File version and identifier, header, format, data set.
	sb.WriteString("# vtk DataFile Version 3.0\n")
	sb.WriteString(opts.Title)
	sb.WriteString("\nASCII\n\n")
	sb.WriteString("DATASET UNSTRUCTURED_GRID\n")

	vertices := m.Vertices()
	fmt.Fprintf(&sb, "POINTS %d float\n", len(vertices))
	for _, v := range vertices {
		for j := 0; j < 3; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if j < len(v) {
				sb.WriteString(strconv.FormatFloat(v[j], 'g', 16, 64))
			} else {
				sb.WriteString("0.0")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	simplices := m.Simplices()
	if len(simplices) == 0 {
		// No simplex: treat the vertices as isolated point cells.
		fmt.Fprintf(&sb, "CELLS %d %d\n", len(vertices), 2*len(vertices))
		for i := range vertices {
			fmt.Fprintf(&sb, "1 %d\n", i)
		}
		fmt.Fprintf(&sb, "\nCELL_TYPES %d\n", len(vertices))
		for range vertices {
			sb.WriteString("1\n")
		}
		return sb.String(), nil
	}

	// Assume homogeneous simplices: the arity of the first one, collapsing
	// leading repeated indices, decides the cell type for all.
	first := simplices[0]
	verticesPerSimplex := 1
	last := first[0]
	for verticesPerSimplex <= m.Dimension() && verticesPerSimplex < len(first) &&
		first[verticesPerSimplex] != last {
		last = first[verticesPerSimplex]
		verticesPerSimplex++
	}

	fmt.Fprintf(&sb, "CELLS %d %d\n", len(simplices), (verticesPerSimplex+1)*len(simplices))
	for _, s := range simplices {
		sb.WriteString(strconv.Itoa(verticesPerSimplex))
		for j := 0; j < verticesPerSimplex; j++ {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(s[j]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	var cellType int
	switch verticesPerSimplex {
	case 1:
		cellType = vtkCellVertex
	case 2:
		cellType = vtkCellLine
	case 3:
		cellType = vtkCellTriangle
	case 4:
		cellType = vtkCellTetrahedron
	}
	fmt.Fprintf(&sb, "CELL_TYPES %d\n", len(simplices))
	for range simplices {
		fmt.Fprintf(&sb, "%d\n", cellType)
	}

	return sb.String(), nil
}

// ExportVTK writes the mesh to w in the legacy ASCII VTK format.
func ExportVTK(w io.Writer, m *meshgo.Mesh, optFns ...func(*Options)) error {
	opts := resolveOptions(optFns)

	content, err := VTKString(m, optFns...)
	if err != nil {
		opts.Logger.LogExport(m.NumVertices(), m.NumSimplices(), err)
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		opts.Logger.LogExport(m.NumVertices(), m.NumSimplices(), err)
		return err
	}

	opts.Logger.LogExport(m.NumVertices(), m.NumSimplices(), nil)
	return nil
}

// ExportVTKFile writes the mesh to a file in the legacy ASCII VTK format.
func ExportVTKFile(path string, m *meshgo.Mesh, optFns ...func(*Options)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open VTK file: %w", err)
	}

	if err := ExportVTK(f, m, optFns...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
