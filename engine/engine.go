package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"go.viam.com/rdk/logging"

	"github.com/akio-tanaka/geimetry-engine/margin"
)

// Engine runs the margin-line pipeline for a single request.
type Engine struct {
	cfg    margin.Config
	logger logging.Logger

	req  *Request
	mesh *margin.Mesh
	curv *margin.CurvatureField
}

// New creates an Engine with the given configuration and logger. A nil
// logger gets a default logger named "geometry-engine".
func New(cfg margin.Config, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogger("geometry-engine")
	}
	return &Engine{cfg: cfg, logger: logger}
}

// OutputPath returns the output.json path: beside the request loaded by
// Initialize, or beside requestPath when no request has been loaded.
func (e *Engine) OutputPath(requestPath string) string {
	if e.req != nil {
		return e.req.OutputPath()
	}
	return filepath.Join(filepath.Dir(requestPath), "output.json")
}

// Mesh returns the mesh loaded by Initialize, or nil if Initialize has not
// yet succeeded. Exposed for the optional debug viewer.
func (e *Engine) Mesh() *margin.Mesh {
	return e.mesh
}

// Curvature returns the curvature field computed by Run, or nil if Run has
// not yet completed. Exposed for the optional debug viewer.
func (e *Engine) Curvature() *margin.CurvatureField {
	return e.curv
}

// Initialize loads the request JSON and mesh file and builds adjacency.
// Failures here are ErrInvalidInput or ErrInvalidModel; the caller should
// write output.json and stop without calling Run.
func (e *Engine) Initialize(path string) error {
	req, err := LoadRequest(path)
	if err != nil {
		return err
	}
	e.req = req
	e.logger.Infof("request is loaded: seed=%v num_samples=%d", req.SeedPoint, req.NumSamples)

	mesh, err := margin.LoadMesh(req.ModelPath())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	e.mesh = mesh
	e.logger.Infof("model is loaded: %d vertices, %d triangles", mesh.NumVertices(), len(mesh.Triangles))
	e.logger.Info("adjacency list is created")

	return nil
}

// Run executes curvature estimation, the margin-line walk, and downsampling,
// and packages the result. Curvature failures are reported as
// ErrInvalidModel, an unresolvable seed as ErrInvalidInput, and any other
// failure (Run before Initialize, an already-done context) as ErrUnknown.
func (e *Engine) Run(ctx context.Context) Result {
	marginline, err := e.run(ctx)
	if err != nil {
		e.logger.Errorf("run failed: %v", err)
		return newResult(err, nil)
	}
	return newResult(nil, marginline)
}

func (e *Engine) run(ctx context.Context) (*MarginlineResult, error) {
	if e.req == nil || e.mesh == nil {
		return nil, fmt.Errorf("%w: Initialize must succeed before Run", ErrUnknown)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	curv, warnings, err := margin.Compute(e.mesh, e.cfg.Curvature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	e.curv = curv
	for _, w := range warnings {
		e.logger.Warn(w)
	}
	e.logger.Info("done to calculate curvatures")

	seed := e.mesh.NearestVertex(e.req.SeedPoint)
	if seed < 0 {
		return nil, fmt.Errorf("%w: could not resolve seed to a mesh vertex", ErrInvalidInput)
	}

	ml := margin.Walk(e.mesh, curv, seed, e.cfg.Walk)
	e.logger.Infof("margin line traced: %d points", len(ml.Path))

	dsCfg := e.cfg.Downsample
	dsCfg.NumSamples = e.req.NumSamples
	dsCfg.TailTrimThreshold = e.req.TailTrimThreshold
	sampled := margin.Downsample(ml.Path, dsCfg)
	points := margin.DownsamplePositions(e.mesh, sampled)

	return &MarginlineResult{
		NumOriginalPoints: len(ml.Path),
		NumSamples:        len(points),
		Points:            points,
	}, nil
}
