package util

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomVertices generates random vertex coordinates in [0, 1) using
// the given RNG.
func (r *RNG) GenerateRandomVertices(num int, dimension int) [][]float64 {
	vertices := make([][]float64, num)
	for i := range vertices {
		vertices[i] = make([]float64, dimension)
		for j := range vertices[i] {
			vertices[i][j] = r.rand.Float64()
		}
	}

	return vertices
}
