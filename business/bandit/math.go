package bandit

import "math"

// zForConfidence maps a confidence level to the two-sided normal quantile.
// Unlisted levels fall back to 95%.
func zForConfidence(level float64) float64 {
	switch {
	case level >= 0.995:
		return 2.807034
	case level >= 0.99:
		return 2.575829
	case level >= 0.95:
		return 1.959964
	case level >= 0.90:
		return 1.644854
	case level >= 0.80:
		return 1.281552
	default:
		return 1.959964
	}
}

// wilsonInterval returns the Wilson score interval for an observed success
// rate. Zero trials yield the maximally wide [0,1] rather than failing;
// bounds are always clamped to [0,1].
func wilsonInterval(successes, trials, z float64) (float64, float64) {
	if trials <= 0 {
		return 0, 1
	}
	p := successes / trials
	z2 := z * z
	denom := 1 + z2/trials
	center := (p + z2/(2*trials)) / denom
	half := (z / denom) * math.Sqrt(p*(1-p)/trials+z2/(4*trials*trials))
	return clamp01(center - half), clamp01(center + half)
}

// precisionRecallF1 computes the usual triple from confusion counts.
// Degenerate denominators yield 0, not NaN.
func precisionRecallF1(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// validReward checks the closed unit interval and rejects NaN.
func validReward(r float64) bool {
	return !math.IsNaN(r) && r >= 0 && r <= 1
}
