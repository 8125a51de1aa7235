package margin

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/krasin/stl"
)

// LoadMesh reads a PLY or STL file into a Mesh, deriving adjacency. The
// format is selected by the file's extension (case-insensitive). A missing
// file yields the wrapped os.Open error, any other extension
// ErrUnsupportedFormat, a parse failure ErrParseModel, and an empty mesh
// ErrEmptyMesh; the engine package reports all of these as ErrInvalidModel.
func LoadMesh(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	var positions []r3.Vector
	var triangles [][3]int

	switch ext {
	case ".ply":
		positions, triangles, err = decodePLY(f)
	case ".stl":
		positions, triangles, err = decodeSTL(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseModel, err)
	}

	return NewMesh(positions, triangles)
}

// decodePLY reads vertex positions and face indices via goply, which already
// exposes the shared vertex/index structure a PLY file encodes, and
// fan-triangulates any face wider than a triangle.
func decodePLY(r io.Reader) ([]r3.Vector, [][3]int, error) {
	ply := goply.New(bufio.NewReader(r))

	vertexElems := ply.Elements("vertex")
	faceElems := ply.Elements("face")
	if len(vertexElems) == 0 || len(faceElems) == 0 {
		return nil, nil, fmt.Errorf("PLY file has no vertex or face elements")
	}

	positions := make([]r3.Vector, len(vertexElems))
	for i, v := range vertexElems {
		x, okx := asFloat(v["x"])
		y, oky := asFloat(v["y"])
		z, okz := asFloat(v["z"])
		if !okx || !oky || !okz {
			return nil, nil, fmt.Errorf("vertex %d missing x/y/z", i)
		}
		positions[i] = r3.Vector{X: x, Y: y, Z: z}
	}

	var triangles [][3]int
	for i, face := range faceElems {
		raw, ok := face["vertex_indices"].([]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("face %d missing vertex_indices", i)
		}
		idx := make([]int, len(raw))
		for j, v := range raw {
			n, ok := asInt(v)
			if !ok {
				return nil, nil, fmt.Errorf("face %d has a non-integer index", i)
			}
			idx[j] = n
		}
		tri, err := fanTriangulateInts(idx)
		if err != nil {
			return nil, nil, err
		}
		triangles = append(triangles, tri...)
	}

	return positions, triangles, nil
}

// decodeSTL reads triangles from an ASCII or binary STL file via krasin/stl,
// then welds the format's independent per-facet vertices into a shared
// vertex/index structure.
func decodeSTL(r io.Reader) ([]r3.Vector, [][3]int, error) {
	tris, err := stl.Read(r)
	if err != nil {
		return nil, nil, err
	}
	if len(tris) == 0 {
		return nil, nil, fmt.Errorf("no facets found")
	}

	positions := make([]r3.Vector, 0, len(tris)*3)
	triangles := make([][3]int, 0, len(tris))
	for _, tr := range tris {
		var idx [3]int
		for v := 0; v < 3; v++ {
			p := tr.V[v]
			positions = append(positions, r3.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
			idx[v] = len(positions) - 1
		}
		triangles = append(triangles, idx)
	}

	return weldVertices(positions, triangles)
}

// asFloat coerces a goply property value (float32 or float64 depending on
// the PLY header's declared type) to float64.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// asInt coerces a goply face-index value (any of the integer types a PLY
// "list" property can declare) to int.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case uint32:
		return int(n), true
	case int32:
		return int(n), true
	case uint8:
		return int(n), true
	case int8:
		return int(n), true
	case uint16:
		return int(n), true
	case int16:
		return int(n), true
	case uint:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// weldVertices merges coincident vertices (STL stores an independent vertex
// triple per facet, with no shared-index structure) so BuildAdjacency sees a
// real mesh graph instead of N disjoint triangles.
func weldVertices(positions []r3.Vector, triangles [][3]int) ([]r3.Vector, [][3]int, error) {
	const weldEps = 1e-9
	type key struct{ x, y, z int64 }
	quantize := func(v float64) int64 { return int64(math.Round(v / weldEps)) }

	index := make(map[key]int, len(positions))
	welded := make([]r3.Vector, 0, len(positions))
	remap := make([]int, len(positions))

	for i, p := range positions {
		k := key{quantize(p.X), quantize(p.Y), quantize(p.Z)}
		if idx, ok := index[k]; ok {
			remap[i] = idx
			continue
		}
		idx := len(welded)
		index[k] = idx
		welded = append(welded, p)
		remap[i] = idx
	}

	weldedTriangles := make([][3]int, len(triangles))
	for i, tri := range triangles {
		weldedTriangles[i] = [3]int{remap[tri[0]], remap[tri[1]], remap[tri[2]]}
	}
	return welded, weldedTriangles, nil
}

// fanTriangulateInts fan-triangulates an N-gon face (N >= 3) around its
// first vertex, matching how most mesh libraries expand polygonal PLY faces.
func fanTriangulateInts(idx []int) ([][3]int, error) {
	if len(idx) < 3 {
		return nil, fmt.Errorf("face has fewer than 3 vertices")
	}
	var tris [][3]int
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
	}
	return tris, nil
}
