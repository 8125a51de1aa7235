package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeRequestFile(t *testing.T, operation map[string]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")

	payload := map[string]interface{}{
		"model": map[string]interface{}{
			"id":      "abc123",
			"name":    "lower-molar",
			"type":    ".stl",
			"subType": "",
			"data":    "",
		},
		"operation": operation,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling fixture request: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture request: %v", err)
	}
	return path
}

func validMarginlineOperation() map[string]interface{} {
	return map[string]interface{}{
		"type": "marginline",
		"marginline": map[string]interface{}{
			"type":                           "marginline",
			"seed":                           []float64{1, 2, 3},
			"num_samples":                    50,
			"threshold_to_remove_last_point": 0.5,
		},
	}
}

func TestLoadRequest_Valid(t *testing.T) {
	path := writeRequestFile(t, validMarginlineOperation())

	req, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest failed: %v", err)
	}
	if req.NumSamples != 50 {
		t.Errorf("expected NumSamples 50, got %d", req.NumSamples)
	}
	if req.SeedPoint.X != 1 || req.SeedPoint.Y != 2 || req.SeedPoint.Z != 3 {
		t.Errorf("unexpected seed point: %v", req.SeedPoint)
	}
	if req.TailTrimThreshold != 0.5 {
		t.Errorf("expected TailTrimThreshold 0.5, got %v", req.TailTrimThreshold)
	}
	if got, want := req.ModelPath(), filepath.Join(filepath.Dir(path), "model.stl"); got != want {
		t.Errorf("ModelPath() = %q, want %q", got, want)
	}
}

func TestLoadRequest_WeaklyTypedNumbers(t *testing.T) {
	// num_samples arrives as a JSON float (25.0 decodes to float64 via
	// encoding/json's map[string]interface{}); WeaklyTypedInput must still
	// coerce it into the int field.
	op := map[string]interface{}{
		"type": "marginline",
		"marginline": map[string]interface{}{
			"seed":        []float64{0, 0, 0},
			"num_samples": 25.0,
		},
	}
	path := writeRequestFile(t, op)

	req, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest failed: %v", err)
	}
	if req.NumSamples != 25 {
		t.Errorf("expected NumSamples 25, got %d", req.NumSamples)
	}
}

func TestLoadRequest_WrongOperationType(t *testing.T) {
	op := map[string]interface{}{"type": "something-else"}
	path := writeRequestFile(t, op)

	if _, err := LoadRequest(path); err == nil {
		t.Fatal("expected an error for a non-marginline operation type")
	}
}

func TestLoadRequest_MissingMarginlinePayload(t *testing.T) {
	op := map[string]interface{}{"type": "marginline"}
	path := writeRequestFile(t, op)

	if _, err := LoadRequest(path); err == nil {
		t.Fatal("expected an error for a missing marginline payload")
	}
}

func TestLoadRequest_SeedNotThreeVector(t *testing.T) {
	op := map[string]interface{}{
		"type": "marginline",
		"marginline": map[string]interface{}{
			"seed":        []float64{1, 2},
			"num_samples": 10,
		},
	}
	path := writeRequestFile(t, op)

	if _, err := LoadRequest(path); err == nil {
		t.Fatal("expected an error for a 2-element seed")
	}
}

func TestLoadRequest_NonPositiveNumSamples(t *testing.T) {
	op := map[string]interface{}{
		"type": "marginline",
		"marginline": map[string]interface{}{
			"seed":        []float64{0, 0, 0},
			"num_samples": 0,
		},
	}
	path := writeRequestFile(t, op)

	if _, err := LoadRequest(path); err == nil {
		t.Fatal("expected an error for num_samples <= 0")
	}
}

func TestLoadRequest_MissingFile(t *testing.T) {
	if _, err := LoadRequest(filepath.Join(t.TempDir(), "does-not-exist.json")); err == nil {
		t.Fatal("expected an error for a missing request file")
	}
}

func TestLoadRequest_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture request: %v", err)
	}
	if _, err := LoadRequest(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
