package bandit

import (
	"fmt"
	"math"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// InitPriors converts similarity scores into warm-start pseudo-counts:
//
//	alpha0 = 1 + budget * similarity
//	beta0  = 1 + budget * (1 - similarity)
//
// The +1 keeps the Beta distribution non-degenerate even at similarity 0
// or 1. Arms without a similarity score (nil or NaN) fall back to the
// uninformative Beta(1,1) prior, so warm and cold arms can be compared in
// the same run. Pure function of its inputs.
func InitPriors(arms []domain.Arm, budget float64) (map[string]ArmState, error) {
	if len(arms) == 0 {
		return nil, ErrEmptyArmSet
	}
	if budget <= 0 {
		return nil, fmt.Errorf("prior budget must be positive, got %v", budget)
	}

	out := make(map[string]ArmState, len(arms))
	for _, arm := range arms {
		if arm.ID == "" {
			return nil, fmt.Errorf("arm with empty id in prior input")
		}
		if arm.Similarity == nil || math.IsNaN(*arm.Similarity) {
			out[arm.ID] = uninformativeArm()
			continue
		}
		s := *arm.Similarity
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("%w: arm %q similarity %v", ErrInvalidSimilarity, arm.ID, s)
		}
		out[arm.ID] = ArmState{
			Alpha: 1 + budget*s,
			Beta:  1 + budget*(1-s),
		}
	}
	return out, nil
}
