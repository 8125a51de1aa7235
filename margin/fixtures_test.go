package margin

import (
	"math"

	"github.com/golang/geo/r3"
)

// buildSphereMesh builds a UV-sphere mesh of the given radius with nLat
// latitude rings and nLon longitude steps, sharing the pole vertices.
func buildSphereMesh(t testingT, radius float64, nLat, nLon int) *Mesh {
	t.Helper()

	var positions []r3.Vector
	north := len(positions)
	positions = append(positions, r3.Vector{X: 0, Y: 0, Z: radius})

	type ring struct{ start int }
	rings := make([]ring, nLat-1)
	for i := 1; i < nLat; i++ {
		phi := math.Pi * float64(i) / float64(nLat)
		rings[i-1] = ring{start: len(positions)}
		for j := 0; j < nLon; j++ {
			theta := 2 * math.Pi * float64(j) / float64(nLon)
			positions = append(positions, r3.Vector{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Sin(phi) * math.Sin(theta),
				Z: radius * math.Cos(phi),
			})
		}
	}
	south := len(positions)
	positions = append(positions, r3.Vector{X: 0, Y: 0, Z: -radius})

	var triangles [][3]int

	// North cap.
	firstRing := rings[0].start
	for j := 0; j < nLon; j++ {
		a := firstRing + j
		b := firstRing + (j+1)%nLon
		triangles = append(triangles, [3]int{north, a, b})
	}

	// Body quads split into triangles.
	for r := 0; r+1 < len(rings); r++ {
		top := rings[r].start
		bot := rings[r+1].start
		for j := 0; j < nLon; j++ {
			j2 := (j + 1) % nLon
			t0, t1 := top+j, top+j2
			b0, b1 := bot+j, bot+j2
			triangles = append(triangles, [3]int{t0, b0, b1})
			triangles = append(triangles, [3]int{t0, b1, t1})
		}
	}

	// South cap.
	lastRing := rings[len(rings)-1].start
	for j := 0; j < nLon; j++ {
		a := lastRing + j
		b := lastRing + (j+1)%nLon
		triangles = append(triangles, [3]int{south, b, a})
	}

	mesh, err := NewMesh(positions, triangles)
	if err != nil {
		t.Fatalf("buildSphereMesh: %v", err)
	}
	return mesh
}

// buildPlaneMesh builds a flat rectangular grid mesh in the z=0 plane,
// (nx+1) x (ny+1) vertices spaced `spacing` apart.
func buildPlaneMesh(t testingT, nx, ny int, spacing float64) *Mesh {
	t.Helper()

	var positions []r3.Vector
	idx := func(i, j int) int { return i*(ny+1) + j }
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			positions = append(positions, r3.Vector{X: float64(i) * spacing, Y: float64(j) * spacing, Z: 0})
		}
	}

	var triangles [][3]int
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			a := idx(i, j)
			b := idx(i+1, j)
			c := idx(i+1, j+1)
			d := idx(i, j+1)
			triangles = append(triangles, [3]int{a, b, c})
			triangles = append(triangles, [3]int{a, c, d})
		}
	}

	mesh, err := NewMesh(positions, triangles)
	if err != nil {
		t.Fatalf("buildPlaneMesh: %v", err)
	}
	return mesh
}

// buildTorusMesh builds a torus mesh with major radius R and minor radius r.
func buildTorusMesh(t testingT, rMajor, rMinor float64, nMajor, nMinor int) *Mesh {
	t.Helper()

	var positions []r3.Vector
	idx := func(i, j int) int { return i*nMinor + j }
	for i := 0; i < nMajor; i++ {
		theta := 2 * math.Pi * float64(i) / float64(nMajor)
		for j := 0; j < nMinor; j++ {
			phi := 2 * math.Pi * float64(j) / float64(nMinor)
			radial := rMajor + rMinor*math.Cos(phi)
			positions = append(positions, r3.Vector{
				X: radial * math.Cos(theta),
				Y: radial * math.Sin(theta),
				Z: rMinor * math.Sin(phi),
			})
		}
	}

	var triangles [][3]int
	for i := 0; i < nMajor; i++ {
		i2 := (i + 1) % nMajor
		for j := 0; j < nMinor; j++ {
			j2 := (j + 1) % nMinor
			a := idx(i, j)
			b := idx(i2, j)
			c := idx(i2, j2)
			d := idx(i, j2)
			triangles = append(triangles, [3]int{a, b, c})
			triangles = append(triangles, [3]int{a, c, d})
		}
	}

	mesh, err := NewMesh(positions, triangles)
	if err != nil {
		t.Fatalf("buildTorusMesh: %v", err)
	}
	return mesh
}

// testingT is the subset of *testing.T used by fixture builders, so they
// can be called from both top-level tests and helpers without an import cycle.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
