package bandit

import "errors"

// Engine error taxonomy. All are local validation failures surfaced
// immediately to the caller; none are retried internally and no partial
// mutation occurs on a failed call.
var (
	ErrEmptyArmSet       = errors.New("bandit: empty arm set")
	ErrInvalidSimilarity = errors.New("bandit: similarity outside [0,1]")
	ErrInvalidReward     = errors.New("bandit: reward outside [0,1]")
	ErrUnknownArm        = errors.New("bandit: unknown arm")
	ErrClosedContext     = errors.New("bandit: context is closed")
	ErrUnknownContext    = errors.New("bandit: unknown context")
)
