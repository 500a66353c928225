package bandit

import "context"

// EligibilityChecker decides if an arm may still be selected for a context
// (candidate withdrew, message variant retired, role on hold).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, contextID, armID string) (bool, error)
}

// NoopEligibilityChecker is the default implementation that allows everything.
type NoopEligibilityChecker struct{}

func (NoopEligibilityChecker) IsEligible(ctx context.Context, contextID, armID string) (bool, error) {
	return true, nil
}
