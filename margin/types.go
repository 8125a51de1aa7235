// Package margin implements the curvature-guided margin-line algorithm:
// mesh adjacency, per-vertex curvature estimation, the greedy ridge walk,
// and index-stride downsampling. It has no knowledge of JSON, file paths,
// or process boundaries — those live in the engine package.
package margin

import (
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/pointcloud"
)

// Mesh holds vertex positions, triangle indices, and the derived
// vertex-adjacency list for a triangulated surface.
type Mesh struct {
	Positions []r3.Vector
	Triangles [][3]int
	Adjacency [][]int

	kdTree   *pointcloud.KDTree
	posIndex map[r3.Vector]int
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

// CurvatureField holds per-vertex curvature scalars and principal directions.
// All six slices have length equal to the mesh's vertex count.
type CurvatureField struct {
	Mean     []float64
	Gaussian []float64
	K1       []float64
	K2       []float64
	D1       []r3.Vector
	D2       []r3.Vector
}

// Marginline is the ordered polyline produced by the walker, together with
// the set of vertices excluded from further growth.
type Marginline struct {
	Path    []int
	Visited map[int]struct{}
}

// seedMarginline returns a Marginline initialized with a single seed vertex,
// with Visited containing only that seed (the walker widens it on each step).
func seedMarginline(seed int) *Marginline {
	return &Marginline{
		Path:    []int{seed},
		Visited: map[int]struct{}{seed: {}},
	}
}
