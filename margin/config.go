package margin

// Config holds all configuration for the margin-line pipeline.
type Config struct {
	Curvature  CurvatureConfig
	Walk       WalkConfig
	Downsample DownsampleConfig
}

// CurvatureConfig holds parameters for per-vertex curvature estimation.
type CurvatureConfig struct {
	NeighborRings     int     // BFS ring width (in hops) of the neighborhood used for the quadric fit; minimum 1
	MinNeighborPoints int     // Neighbor count below which the neighborhood is widened by one more ring (floor 5)
	ValidationTolAbs  float64 // Max allowed |Mean - HN| before a validation warning is logged
}

// WalkConfig holds parameters for the margin-line walker.
type WalkConfig struct {
	NumHops           int  // Direction-reversal guard window (Rule A; Rule B too when ApplyGuardInRuleB is set)
	MaxTraversal      int  // Absolute step cap (safety valve)
	ApplyGuardInRuleB bool // Open question from the original source; default false
}

// DownsampleConfig holds parameters for index-stride downsampling.
type DownsampleConfig struct {
	NumSamples        int     // Target output sample count K
	TailTrimThreshold float64 // Residual-count threshold T controlling endpoint inclusion
}

// DefaultConfig returns a Config with the defaults used by the reference pipeline.
func DefaultConfig() Config {
	return Config{
		Curvature: CurvatureConfig{
			NeighborRings:     2,
			MinNeighborPoints: 6,
			ValidationTolAbs:  1e-2,
		},
		Walk: WalkConfig{
			NumHops:           10,
			MaxTraversal:      10000,
			ApplyGuardInRuleB: false,
		},
		Downsample: DownsampleConfig{
			NumSamples:        50,
			TailTrimThreshold: 0,
		},
	}
}
