package margin

import "testing"

func TestDownsample_ShorterThanTargetReturnsUnchanged(t *testing.T) {
	path := []int{1, 2, 3}
	out := Downsample(path, DownsampleConfig{NumSamples: 10})
	if len(out) != len(path) {
		t.Fatalf("expected unchanged path of length %d, got %d", len(path), len(out))
	}
	for i := range path {
		if out[i] != path[i] {
			t.Errorf("index %d: got %d, want %d", i, out[i], path[i])
		}
	}
}

func TestDownsample_LengthNeverExceedsPath(t *testing.T) {
	path := make([]int, 137)
	for i := range path {
		path[i] = i
	}

	for _, k := range []int{1, 5, 10, 50, 100, 137, 200} {
		out := Downsample(path, DownsampleConfig{NumSamples: k, TailTrimThreshold: 0})
		if len(out) > len(path) {
			t.Errorf("K=%d: output length %d exceeds path length %d", k, len(out), len(path))
		}
	}
}

func TestDownsample_IndicesStrictlyIncreasing(t *testing.T) {
	path := make([]int, 97)
	for i := range path {
		path[i] = i * 3
	}

	for _, tt := range []struct {
		k int
		t float64
	}{
		{10, -1}, {10, 0}, {10, 100}, {13, 2}, {50, 0},
	} {
		out := Downsample(path, DownsampleConfig{NumSamples: tt.k, TailTrimThreshold: tt.t})
		for i := 1; i < len(out); i++ {
			if out[i] <= out[i-1] {
				t.Errorf("K=%d T=%.0f: indices not strictly increasing at %d: %d <= %d", tt.k, tt.t, i, out[i], out[i-1])
			}
		}
	}
}

func TestDownsample_EndpointInclusionByThreshold(t *testing.T) {
	// L=105, K=10: stride=10, r=5.
	path := make([]int, 105)
	for i := range path {
		path[i] = i
	}

	// T=4 < r=5: endpoint included, so last sample should be the path's last index.
	withEndpoint := Downsample(path, DownsampleConfig{NumSamples: 10, TailTrimThreshold: 4})
	if withEndpoint[len(withEndpoint)-1] != path[len(path)-1] {
		t.Errorf("expected endpoint inclusion: last sample %d, want %d", withEndpoint[len(withEndpoint)-1], path[len(path)-1])
	}

	// T=6 > r=5: endpoint excluded, so the last sample should fall short of the final index.
	withoutEndpoint := Downsample(path, DownsampleConfig{NumSamples: 10, TailTrimThreshold: 6})
	if withoutEndpoint[len(withoutEndpoint)-1] == path[len(path)-1] {
		t.Errorf("expected endpoint exclusion, but last sample reached the final index")
	}
}

func TestDownsample_OutputLengthIsKOrLess(t *testing.T) {
	path := make([]int, 250)
	for i := range path {
		path[i] = i
	}
	out := Downsample(path, DownsampleConfig{NumSamples: 50, TailTrimThreshold: 0})
	if len(out) != 50 {
		t.Errorf("expected output length 50, got %d", len(out))
	}
}
