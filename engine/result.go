package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
)

// MarginlineResult is the "marginline" payload of a successful result.
type MarginlineResult struct {
	NumOriginalPoints int         `json:"num_original_points"`
	NumSamples        int         `json:"num_samples"`
	Points            []r3.Vector `json:"points"`
}

// Result is the top-level output record, written as output.json.
type Result struct {
	ReturnCode ReturnCode  `json:"return_code"`
	Message    string      `json:"message"`
	Result     resultBody  `json:"result"`
}

type resultBody struct {
	Type       string            `json:"type"`
	Marginline *MarginlineResult `json:"marginline,omitempty"`
}

// MarshalJSON serializes Points as [x,y,z] triples rather than the default
// object encoding r3.Vector would otherwise produce.
func (r MarginlineResult) MarshalJSON() ([]byte, error) {
	points := make([][3]float64, len(r.Points))
	for i, p := range r.Points {
		points[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return json.Marshal(struct {
		NumOriginalPoints int          `json:"num_original_points"`
		NumSamples        int          `json:"num_samples"`
		Points            [][3]float64 `json:"points"`
	}{
		NumOriginalPoints: r.NumOriginalPoints,
		NumSamples:        r.NumSamples,
		Points:            points,
	})
}

// newResult packages a pipeline outcome (nil marginline on failure) into a Result.
func newResult(err error, marginline *MarginlineResult) Result {
	code, msg := classify(err)
	body := resultBody{Type: "marginline", Marginline: marginline}
	return Result{ReturnCode: code, Message: msg, Result: body}
}

// FailureResult packages an Initialize-time failure into a Result with no
// marginline payload.
func FailureResult(err error) Result {
	return newResult(err, nil)
}

// SaveOutput writes r as output.json at path.
func SaveOutput(path string, r Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
