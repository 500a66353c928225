package bandit

import (
	"fmt"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// Hiring funnel event types accepted as selection feedback.
const (
	EventReply      = "reply"
	EventNoReply    = "no_reply"
	EventScreenPass = "screen_pass"
	EventScreenFail = "screen_fail"
	EventInterview  = "interview"
	EventHire       = "hire"
)

// RewardForEvent turns an outcome event into a [0,1] reward using the
// current config. An explicit reward on the event wins over the event-type
// mapping.
func (cfg Config) RewardForEvent(ev domain.OutcomeEvent) (float64, error) {
	if ev.Reward != nil {
		if !validReward(*ev.Reward) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidReward, *ev.Reward)
		}
		return *ev.Reward, nil
	}

	var base float64
	switch ev.EventType {
	case EventReply:
		base = cfg.RewardReply
	case EventNoReply:
		base = cfg.RewardNoReply
	case EventScreenPass:
		base = cfg.RewardScreenPass
	case EventScreenFail:
		base = cfg.RewardScreenFail
	case EventInterview:
		base = cfg.RewardInterview
	case EventHire:
		base = cfg.RewardHire
	default:
		return 0, fmt.Errorf("unknown event type: %s", ev.EventType)
	}

	if !validReward(base) {
		return 0, fmt.Errorf("%w: configured reward %v for event %s", ErrInvalidReward, base, ev.EventType)
	}
	return base, nil
}
