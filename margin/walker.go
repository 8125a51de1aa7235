package margin

import (
	"github.com/golang/geo/r3"
)

// Walk grows a Marginline from a single seed vertex by repeated greedy
// steps: each step tries a mean-curvature climb (Rule A) and falls back to a
// minimum-principal-direction alignment (Rule B), until the path closes a
// loop, reaches a dead end, or hits cfg.MaxTraversal steps.
//
// A nil mesh or curvature field is a no-op: Walk returns the single-seed
// path. The walker never returns an error; a single-vertex result (no
// admissible first step) is a valid outcome, not a failure.
func Walk(mesh *Mesh, curv *CurvatureField, seed int, cfg WalkConfig) *Marginline {
	ml := seedMarginline(seed)
	if mesh == nil || curv == nil {
		return ml
	}

	numHops := cfg.NumHops
	if numHops < 1 {
		numHops = 1
	}
	maxSteps := cfg.MaxTraversal
	if maxSteps < 1 {
		maxSteps = 1
	}

	for step := 0; step < maxSteps; step++ {
		s := ml.Path[len(ml.Path)-1]

		if next, ok := stepRuleA(mesh, curv, ml, s, numHops); ok {
			advance(ml, mesh, s, next)
		} else if next, ok := stepRuleB(mesh, curv, ml, s, cfg.ApplyGuardInRuleB, numHops); ok {
			advance(ml, mesh, s, next)
		} else {
			break
		}

		if len(ml.Path) > 1 && ml.Path[0] == ml.Path[len(ml.Path)-1] {
			break
		}
	}

	return ml
}

// stepRuleA admits neighbors of s not yet visited whose edge direction does
// not reverse any of the last numHops edge directions of the path, then
// picks the one with the largest Mean curvature — but only if that maximum
// exceeds Mean[s].
func stepRuleA(mesh *Mesh, curv *CurvatureField, ml *Marginline, s, numHops int) (int, bool) {
	history := recentDirections(mesh, ml.Path, numHops)
	pos := mesh.Positions

	best := -1
	bestMean := 0.0
	for _, n := range mesh.Adjacency[s] {
		if _, visited := ml.Visited[n]; visited {
			continue
		}
		v := pos[n].Sub(pos[s]).Normalize()
		if reversesHistory(history, v) {
			continue
		}
		if best < 0 || curv.Mean[n] > bestMean {
			best = n
			bestMean = curv.Mean[n]
		}
	}

	if best < 0 || bestMean <= curv.Mean[s] {
		return 0, false
	}
	return best, true
}

// stepRuleB admits neighbors of s not yet visited, rejecting a sign change
// from positive to negative mean curvature, then picks the one whose edge
// direction has the largest absolute alignment with D2[s]. The
// direction-reversal guard from Rule A is applied only if applyGuard is set
// (an open question in the source material; default false).
func stepRuleB(mesh *Mesh, curv *CurvatureField, ml *Marginline, s int, applyGuard bool, numHops int) (int, bool) {
	pos := mesh.Positions
	d2 := curv.D2[s]

	var history []r3.Vector
	if applyGuard {
		history = recentDirections(mesh, ml.Path, numHops)
	}

	best := -1
	bestAlign := -1.0
	for _, n := range mesh.Adjacency[s] {
		if _, visited := ml.Visited[n]; visited {
			continue
		}
		if curv.Mean[s] > 0 && curv.Mean[n] < 0 {
			continue
		}
		v := pos[n].Sub(pos[s]).Normalize()
		if applyGuard && reversesHistory(history, v) {
			continue
		}
		align := absDot(v, d2)
		if best < 0 || align > bestAlign {
			best = n
			bestAlign = align
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// advance appends next to the path and widens Visited to every neighbor of
// s, not just next — backtracking into s's local neighborhood is thereby
// excluded; only wrapping back onto Path[0] can close the loop.
func advance(ml *Marginline, mesh *Mesh, s, next int) {
	ml.Path = append(ml.Path, next)
	for _, nb := range mesh.Adjacency[s] {
		ml.Visited[nb] = struct{}{}
	}
	ml.Visited[next] = struct{}{}
}

// recentDirections returns the unit edge directions of the last numHops
// edges of path, oldest first.
func recentDirections(mesh *Mesh, path []int, numHops int) []r3.Vector {
	if len(path) < 2 {
		return nil
	}
	start := len(path) - numHops - 1
	if start < 0 {
		start = 0
	}
	dirs := make([]r3.Vector, 0, len(path)-1-start)
	for k := start; k < len(path)-1; k++ {
		dirs = append(dirs, mesh.Positions[path[k+1]].Sub(mesh.Positions[path[k]]).Normalize())
	}
	return dirs
}

func reversesHistory(history []r3.Vector, v r3.Vector) bool {
	for _, h := range history {
		if h.Dot(v) < 0 {
			return true
		}
	}
	return false
}

func absDot(a, b r3.Vector) float64 {
	d := a.Dot(b)
	if d < 0 {
		return -d
	}
	return d
}
