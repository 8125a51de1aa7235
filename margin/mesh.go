package margin

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
)

// ParseSeed validates that coords has exactly three elements (x, y, z) and
// returns them as a vector. Used by callers decoding a seed point from an
// untyped numeric array, e.g. a JSON request payload.
func ParseSeed(coords []float64) (r3.Vector, error) {
	if len(coords) != 3 {
		return r3.Vector{}, fmt.Errorf("%w: got %d elements", ErrInvalidSeed, len(coords))
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// NewMesh builds a Mesh from raw positions and triangle indices and derives
// its adjacency list. It returns ErrEmptyMesh if either slice is empty, and
// ErrParseModel if a triangle references an out-of-range vertex index.
func NewMesh(positions []r3.Vector, triangles [][3]int) (*Mesh, error) {
	if len(positions) == 0 || len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	for _, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(positions) {
				return nil, ErrParseModel
			}
		}
	}

	m := &Mesh{
		Positions: positions,
		Triangles: triangles,
	}
	m.BuildAdjacency()
	return m, nil
}

// BuildAdjacency derives m.Adjacency from m.Triangles: every triangle
// contributes its three edges in both directions. The result is symmetric
// and duplicate-free per vertex by construction.
func (m *Mesh) BuildAdjacency() {
	accum := make([]map[int]struct{}, len(m.Positions))
	for i := range accum {
		accum[i] = make(map[int]struct{})
	}

	addEdge := func(a, b int) {
		accum[a][b] = struct{}{}
		accum[b][a] = struct{}{}
	}

	for _, tri := range m.Triangles {
		addEdge(tri[0], tri[1])
		addEdge(tri[1], tri[2])
		addEdge(tri[2], tri[0])
	}

	adjacency := make([][]int, len(accum))
	for i, set := range accum {
		neighbors := make([]int, 0, len(set))
		for n := range set {
			neighbors = append(neighbors, n)
		}
		sort.Ints(neighbors)
		adjacency[i] = neighbors
	}
	m.Adjacency = adjacency
}

// NearestVertex returns the index of the vertex closest in Euclidean distance
// to p, breaking ties toward the smallest index. A KD-tree (lazily built and
// cached on the mesh) narrows the search; the final tie-break is exact.
func (m *Mesh) NearestVertex(p r3.Vector) int {
	if len(m.Positions) == 0 {
		return -1
	}

	kd := m.kdTreeCached()
	k := 8
	if k > len(m.Positions) {
		k = len(m.Positions)
	}
	neighbors := kd.KNearestNeighbors(p, k, true)

	bestIdx := -1
	bestDist := -1.0
	for _, nb := range neighbors {
		idx, ok := m.posIndex[nb.P]
		if !ok {
			continue
		}
		dist := nb.P.Sub(p).Norm2()
		if bestIdx < 0 || dist < bestDist || (dist == bestDist && idx < bestIdx) {
			bestIdx = idx
			bestDist = dist
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}

	// Fallback: KD-tree returned nothing useful (degenerate mesh); brute force.
	bestIdx = 0
	bestDist = m.Positions[0].Sub(p).Norm2()
	for i := 1; i < len(m.Positions); i++ {
		d := m.Positions[i].Sub(p).Norm2()
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return bestIdx
}

func (m *Mesh) kdTreeCached() *pointcloud.KDTree {
	if m.kdTree != nil {
		return m.kdTree
	}
	cloud := pointcloud.NewBasicEmpty()
	m.posIndex = make(map[r3.Vector]int, len(m.Positions))
	for i, p := range m.Positions {
		//nolint:errcheck
		cloud.Set(p, nil)
		// Keep the smallest index on duplicate positions, matching the
		// tie-break rule NearestVertex promises.
		if _, dup := m.posIndex[p]; !dup {
			m.posIndex[p] = i
		}
	}
	m.kdTree = pointcloud.ToKDTree(cloud)
	return m.kdTree
}

// ring expands a BFS neighborhood of the given vertex out to `rings` hops,
// excluding the seed vertex itself. Used by the curvature estimator to widen
// beyond the bare 1-ring when CurvatureConfig.NeighborRings > 1.
func (m *Mesh) ring(seed int, rings int) []int {
	if rings < 1 {
		rings = 1
	}
	visited := map[int]struct{}{seed: {}}
	frontier := []int{seed}
	var result []int

	for hop := 0; hop < rings; hop++ {
		var next []int
		for _, v := range frontier {
			for _, n := range m.Adjacency[v] {
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				result = append(result, n)
				next = append(next, n)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return result
}
