package margin

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Compute estimates per-vertex mean, Gaussian, and principal curvature for
// every vertex of mesh. For each vertex it gathers a k-ring neighborhood
// (width cfg.NeighborRings), fits a local tangent-plane quadric through it,
// and eigendecomposes the quadric's shape operator for the principal
// curvatures and directions. The local normal is oriented against the
// triangle winding, so on an outward-wound mesh convex regions have positive
// curvature.
//
// A cotangent-Laplacian estimate of the mean-curvature normal is also
// assembled per vertex, purely to cross-check the quadric-fit Mean value: its
// magnitude is compared with |Mean|, and disagreements beyond
// cfg.ValidationTolAbs are reported as warnings, never as errors, and never
// substituted for the quadric-fit result.
func Compute(mesh *Mesh, cfg CurvatureConfig) (*CurvatureField, []string, error) {
	if mesh == nil {
		return nil, nil, ErrNilMesh
	}
	n := mesh.NumVertices()
	if n == 0 {
		return nil, nil, ErrEmptyMesh
	}

	rings := cfg.NeighborRings
	if rings < 1 {
		rings = 1
	}
	minPts := cfg.MinNeighborPoints
	if minPts < 5 {
		minPts = 5
	}

	for v := 0; v < n; v++ {
		if len(mesh.Adjacency[v]) == 0 {
			return nil, nil, fmt.Errorf("%w: vertex %d has no incident triangles", ErrDegenerateGeometry, v)
		}
	}

	// Mixed Voronoi area per vertex: the Voronoi-cell share of each
	// non-obtuse incident triangle, or half / a quarter of an obtuse
	// triangle's area depending on whether the obtuse angle is at the vertex.
	// Area-weighted vertex normals from the triangle winding are gathered in
	// the same pass, only to orient each vertex's PCA normal below.
	voronoiArea := make([]float64, n)
	windingNormal := make([]r3.Vector, n)
	for _, tri := range mesh.Triangles {
		p := [3]r3.Vector{mesh.Positions[tri[0]], mesh.Positions[tri[1]], mesh.Positions[tri[2]]}
		area := triangleArea(p[0], p[1], p[2])
		faceNormal := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		for k := 0; k < 3; k++ {
			o, a, b := p[k], p[(k+1)%3], p[(k+2)%3]
			windingNormal[tri[k]] = windingNormal[tri[k]].Add(faceNormal)
			switch {
			case triangleAngle(o, a, b) > math.Pi/2:
				voronoiArea[tri[k]] += area / 2
			case triangleAngle(a, b, o) > math.Pi/2 || triangleAngle(b, o, a) > math.Pi/2:
				voronoiArea[tri[k]] += area / 4
			default:
				voronoiArea[tri[k]] += (b.Sub(o).Norm2()*cotangent(a, o, b) + a.Sub(o).Norm2()*cotangent(b, o, a)) / 8
			}
		}
	}
	for v := 0; v < n; v++ {
		if voronoiArea[v] <= 0 {
			return nil, nil, fmt.Errorf("%w: vertex %d has zero-area 1-ring", ErrDegenerateGeometry, v)
		}
	}

	// Cotangent-Laplacian mean-curvature-normal estimate, purely for
	// internal cross-validation of the quadric-fit Mean below. The summed
	// cotangent vector has magnitude 4·A·|H|, so laplacianHN holds |H|.
	laplacianVec := make([]r3.Vector, n)
	for _, tri := range mesh.Triangles {
		idx := [3]int{tri[0], tri[1], tri[2]}
		pos := [3]r3.Vector{mesh.Positions[idx[0]], mesh.Positions[idx[1]], mesh.Positions[idx[2]]}
		for k := 0; k < 3; k++ {
			i := idx[k]
			j := idx[(k+1)%3]
			cot := cotangent(pos[(k+2)%3], pos[k], pos[(k+1)%3])
			d := mesh.Positions[j].Sub(mesh.Positions[i])
			laplacianVec[i] = laplacianVec[i].Add(d.Mul(cot))
			laplacianVec[j] = laplacianVec[j].Sub(d.Mul(cot))
		}
	}
	laplacianHN := make([]float64, n)
	for v := 0; v < n; v++ {
		laplacianHN[v] = laplacianVec[v].Norm() / (4 * voronoiArea[v])
	}

	field := &CurvatureField{
		Mean:     make([]float64, n),
		Gaussian: make([]float64, n),
		K1:       make([]float64, n),
		K2:       make([]float64, n),
		D1:       make([]r3.Vector, n),
		D2:       make([]r3.Vector, n),
	}

	// Per-vertex incident-angle accumulation for Gaussian angle-defect,
	// gathered once rather than rescanning all triangles per vertex.
	angleSum := make([]float64, n)
	for _, tri := range mesh.Triangles {
		for k := 0; k < 3; k++ {
			o := mesh.Positions[tri[k]]
			a := mesh.Positions[tri[(k+1)%3]]
			b := mesh.Positions[tri[(k+2)%3]]
			angleSum[tri[k]] += triangleAngle(o, a, b)
		}
	}

	var warnings []string

	for v := 0; v < n; v++ {
		neighborIdx := mesh.ring(v, rings)
		if len(neighborIdx) < minPts {
			neighborIdx = mesh.ring(v, rings+1)
		}
		if len(neighborIdx) < 5 {
			return nil, nil, fmt.Errorf("%w: vertex %d has insufficient neighbors (%d)", ErrDegenerateGeometry, v, len(neighborIdx))
		}

		neighbors := make([]r3.Vector, len(neighborIdx))
		for i, idx := range neighborIdx {
			neighbors[i] = mesh.Positions[idx]
		}
		center := mesh.Positions[v]

		frame, err := estimateNormalFrame(center, neighbors)
		if err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", v, err)
		}
		// Point the normal against the triangle winding (inward on an
		// outward-wound mesh), so convex regions get positive curvature.
		if frame.normal.Dot(windingNormal[v]) > 0 {
			frame.normal = frame.normal.Mul(-1)
		}
		coeffs, err := fitQuadric(center, frame, neighbors)
		if err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", v, err)
		}
		k1, k2, d1, d2, err := principalFromQuadric(frame, coeffs)
		if err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", v, err)
		}

		field.K1[v] = k1
		field.K2[v] = k2
		field.D1[v] = d1
		field.D2[v] = d2
		field.Mean[v] = 0.5 * (k1 + k2)
		field.Gaussian[v] = (2*math.Pi - angleSum[v]) / voronoiArea[v]

		if math.Abs(math.Abs(field.Mean[v])-laplacianHN[v]) > tolAbs(cfg) {
			warnings = append(warnings, fmt.Sprintf(
				"vertex %d: quadric-fit mean curvature %.6g disagrees with cotangent-Laplacian estimate %.6g by more than %.6g",
				v, field.Mean[v], laplacianHN[v], tolAbs(cfg)))
		}
	}

	return field, warnings, nil
}

func tolAbs(cfg CurvatureConfig) float64 {
	if cfg.ValidationTolAbs <= 0 {
		return 1e-2
	}
	return cfg.ValidationTolAbs
}
