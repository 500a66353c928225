package bandit

import (
	"fmt"
	"sort"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// ArmState is the mutable posterior for one arm. Alpha and Beta stay
// strictly positive for the lifetime of the context.
type ArmState struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (a ArmState) Mean() float64 {
	return a.Alpha / (a.Alpha + a.Beta)
}

// uninformativeArm is the Beta(1,1) cold-start prior.
func uninformativeArm() ArmState {
	return ArmState{Alpha: 1, Beta: 1}
}

// sortedArmIDs returns the arm ids in ascending order. Selection iterates
// this slice so that ties resolve to the lowest arm id.
func sortedArmIDs(arms map[string]*ArmState) []string {
	ids := make([]string, 0, len(arms))
	for id := range arms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// validatePosteriors rejects non-positive pseudo-counts, which can only
// arise from a corrupted state blob.
func validatePosteriors(arms map[string]domain.ArmPosterior) error {
	if len(arms) == 0 {
		return ErrEmptyArmSet
	}
	for id, p := range arms {
		if !(p.Alpha > 0) || !(p.Beta > 0) {
			return fmt.Errorf("arm %q has non-positive pseudo-counts (alpha=%v beta=%v)", id, p.Alpha, p.Beta)
		}
	}
	return nil
}
