package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/meshgo"
)

// maxMSHCount bounds the header counts so a malformed file cannot drive an
// oversized allocation.
const maxMSHCount = 1 << 30

// ImportMSH reads a FreeFEM 2D mesh: a three-integer header (vertex count,
// triangle count and a boundary-element count that is ignored), then one
// line per vertex with two coordinates and an ignored scratch field, then
// one line per triangle with three 1-based vertex indices (converted to
// 0-based) and an ignored scratch field.
//
// An empty input yields an empty 2D mesh with an informational log, not an
// error.
func ImportMSH(r io.Reader, optFns ...func(*Options)) (*meshgo.Mesh, error) {
	opts := resolveOptions(optFns)

	br := bufio.NewReader(r)

	var numVertices, numSimplices, scratch int
	if _, err := fmt.Fscan(br, &numVertices); err != nil {
		if errors.Is(err, io.EOF) {
			opts.Logger.Info("mesh file is empty")
			return meshgo.New(2, opts.MeshOptions...)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, err := fmt.Fscan(br, &numSimplices, &scratch); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if numVertices < 0 || numVertices > maxMSHCount {
		return nil, fmt.Errorf("read header: vertex count %d out of range", numVertices)
	}
	if numSimplices < 0 || numSimplices > maxMSHCount {
		return nil, fmt.Errorf("read header: simplex count %d out of range", numSimplices)
	}

	vertices := make([][]float64, numVertices)
	var scratchF float64
	for i := range vertices {
		v := make([]float64, 2)
		if _, err := fmt.Fscan(br, &v[0], &v[1], &scratchF); err != nil {
			return nil, fmt.Errorf("read vertex %d: %w", i, err)
		}
		vertices[i] = v
	}

	simplices := make([][]int, numSimplices)
	for i := range simplices {
		s := make([]int, 3)
		if _, err := fmt.Fscan(br, &s[0], &s[1], &s[2], &scratch); err != nil {
			return nil, fmt.Errorf("read simplex %d: %w", i, err)
		}
		for k := range s {
			s[k]--
		}
		simplices[i] = s
	}

	mesh, err := meshgo.New(2, opts.MeshOptions...)
	if err != nil {
		return nil, err
	}
	if err := mesh.SetVertices(vertices); err != nil {
		return nil, err
	}
	mesh.SetSimplices(simplices)

	opts.Logger.LogImport(numVertices, numSimplices, nil)
	return mesh, nil
}

// ImportMSHFile reads a FreeFEM 2D mesh from a file.
func ImportMSHFile(path string, optFns ...func(*Options)) (*meshgo.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh file: %w", err)
	}
	defer f.Close()

	return ImportMSH(f, optFns...)
}
