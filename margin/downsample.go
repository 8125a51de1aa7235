package margin

import (
	"math"

	"github.com/golang/geo/r3"
)

// Downsample reduces path to cfg.NumSamples evenly indexed samples by
// uniform index stride. If the path is already shorter than the requested
// sample count, it is returned unchanged.
func Downsample(path []int, cfg DownsampleConfig) []int {
	l := len(path)
	k := cfg.NumSamples
	if k < 1 || l == 0 {
		return path
	}

	stride := l / k
	if stride < 1 {
		return path
	}

	r := l % k
	includeEndpoint := float64(r) > cfg.TailTrimThreshold

	indices := make([]int, k)
	for i := 0; i < k; i++ {
		var idx float64
		if includeEndpoint && k > 1 {
			idx = float64(i) * float64(l-1) / float64(k-1)
		} else {
			idx = float64(i) * float64(l-1) / float64(k)
		}
		indices[i] = int(math.Round(idx))
	}

	out := make([]int, k)
	for i, idx := range indices {
		if idx < 0 {
			idx = 0
		}
		if idx > l-1 {
			idx = l - 1
		}
		out[i] = path[idx]
	}
	return out
}

// DownsamplePositions maps a vertex-index path through mesh positions,
// convenience wrapper used by the orchestrator when packaging a result.
func DownsamplePositions(mesh *Mesh, path []int) []r3.Vector {
	out := make([]r3.Vector, len(path))
	for i, idx := range path {
		out[i] = mesh.Positions[idx]
	}
	return out
}
