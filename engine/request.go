package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"

	"github.com/akio-tanaka/geimetry-engine/margin"
)

// ModelSpec identifies the mesh file accompanying a request. The file itself
// is expected alongside the request JSON, named "model" + Type.
type ModelSpec struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	SubType string `json:"subType"`
	Data    string `json:"data"`
}

// MarginlineParams are the loosely-typed parameters of a "marginline"
// operation, decoded via mapstructure so unrecognized or numerically loose
// fields (e.g. an int arriving as a JSON float) don't fail decoding.
type MarginlineParams struct {
	Type                       string    `mapstructure:"type"`
	Seed                       []float64 `mapstructure:"seed"`
	NumSamples                 int       `mapstructure:"num_samples"`
	ThresholdToRemoveLastPoint float64   `mapstructure:"threshold_to_remove_last_point"`
}

// Request is the decoded and validated form of the input JSON.
type Request struct {
	Model             ModelSpec
	OperationType     string
	SeedPoint         r3.Vector
	NumSamples        int
	TailTrimThreshold float64

	// dir is the directory the request file lives in; the mesh file and
	// output.json are resolved relative to it.
	dir string
}

type rawRequest struct {
	Model     ModelSpec              `json:"model"`
	Operation map[string]interface{} `json:"operation"`
}

// LoadRequest reads and validates the request JSON at path.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading request file: %v", ErrInvalidInput, err)
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing request JSON: %v", ErrInvalidInput, err)
	}

	opType, _ := raw.Operation["type"].(string)
	if opType != "marginline" {
		return nil, fmt.Errorf("%w: unsupported operation type %q", ErrInvalidInput, opType)
	}

	rawParams, ok := raw.Operation["marginline"]
	if !ok {
		return nil, fmt.Errorf("%w: operation missing \"marginline\" payload", ErrInvalidInput)
	}

	var params MarginlineParams
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: building request decoder: %v", ErrUnknown, err)
	}
	if err := decoder.Decode(rawParams); err != nil {
		return nil, fmt.Errorf("%w: decoding marginline parameters: %v", ErrInvalidInput, err)
	}

	seed, err := margin.ParseSeed(params.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if params.NumSamples <= 0 {
		return nil, fmt.Errorf("%w: num_samples must be positive", ErrInvalidInput)
	}
	if raw.Model.Type == "" {
		return nil, fmt.Errorf("%w: model.type is required", ErrInvalidInput)
	}

	return &Request{
		Model:             raw.Model,
		OperationType:     opType,
		SeedPoint:         seed,
		NumSamples:        params.NumSamples,
		TailTrimThreshold: params.ThresholdToRemoveLastPoint,
		dir:               filepath.Dir(path),
	}, nil
}

// ModelPath returns the path to the mesh file described by the request,
// which lives alongside the request JSON as "model" + the declared extension.
func (r *Request) ModelPath() string {
	return filepath.Join(r.dir, "model"+r.Model.Type)
}

// OutputPath returns the path output.json is written to for this request.
func (r *Request) OutputPath() string {
	return filepath.Join(r.dir, "output.json")
}
