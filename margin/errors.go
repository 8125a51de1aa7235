package margin

import "errors"

var (
	// ErrEmptyMesh is returned when a mesh has zero vertices or zero triangles.
	ErrEmptyMesh = errors.New("mesh has no vertices or no triangles")

	// ErrUnsupportedFormat is returned when a model file extension is not ".ply" or ".stl".
	ErrUnsupportedFormat = errors.New("unsupported model format")

	// ErrParseModel is returned when a model file cannot be parsed.
	ErrParseModel = errors.New("failed to parse model file")

	// ErrDegenerateGeometry is returned when a vertex's neighborhood cannot support
	// curvature assembly (zero-area 1-ring, isolated vertex).
	ErrDegenerateGeometry = errors.New("degenerate geometry: cannot assemble curvature")

	// ErrSingularMatrix is returned when a local least-squares fit is singular.
	ErrSingularMatrix = errors.New("singular matrix in curvature fit")

	// ErrInvalidSeed is returned when a seed coordinate is not a 3-vector.
	ErrInvalidSeed = errors.New("seed point must be a 3-vector")

	// ErrNilMesh is returned when a nil mesh is passed to an operation that requires one.
	ErrNilMesh = errors.New("mesh is nil")
)
