package bandit

import (
	"fmt"
	"time"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// armObs aggregates the observed (not pseudo-count) evidence for one arm.
type armObs struct {
	trials    int
	successes int
}

// Tracker turns the interaction stream of one context into reportable
// statistics. State is append-only; Summary is a pure function of the
// accumulated records, so recomputing it with no new records yields
// identical output.
type Tracker struct {
	threshold  float64
	confidence float64

	records   []domain.InteractionRecord
	perArm    map[string]*armObs
	cumRegret float64

	tp, fp, fn int
}

func NewTracker(successThreshold, confidenceLevel float64) *Tracker {
	return &Tracker{
		threshold:  successThreshold,
		confidence: confidenceLevel,
		perArm:     make(map[string]*armObs),
	}
}

// Record appends one interaction. bestMean is the maximum posterior mean
// at selection time, used for the regret step best_mean - reward.
func (t *Tracker) Record(armID string, reward float64, wasOptimal bool, bestMean float64) error {
	if !validReward(reward) {
		return fmt.Errorf("%w: %v", ErrInvalidReward, reward)
	}

	t.records = append(t.records, domain.InteractionRecord{
		ArmID:      armID,
		Reward:     reward,
		WasOptimal: wasOptimal,
		CreatedAt:  time.Now(),
	})

	obs, ok := t.perArm[armID]
	if !ok {
		obs = &armObs{}
		t.perArm[armID] = obs
	}
	obs.trials++

	success := reward >= t.threshold
	if success {
		obs.successes++
	}

	// success acts as the "predicted right choice", was_optimal as ground
	// truth
	switch {
	case success && wasOptimal:
		t.tp++
	case success && !wasOptimal:
		t.fp++
	case !success && wasOptimal:
		t.fn++
	}

	t.cumRegret += bestMean - reward
	return nil
}

// Interactions returns how many records have been accumulated.
func (t *Tracker) Interactions() int { return len(t.records) }

// Records returns a copy of the append-only interaction log.
func (t *Tracker) Records() []domain.InteractionRecord {
	out := make([]domain.InteractionRecord, len(t.records))
	copy(out, t.records)
	return out
}

// LastRecord returns the newest record, if any.
func (t *Tracker) LastRecord() (domain.InteractionRecord, bool) {
	if len(t.records) == 0 {
		return domain.InteractionRecord{}, false
	}
	return t.records[len(t.records)-1], true
}

// Summary derives the learning snapshot. Posteriors come from the caller
// (the handle) so the tracker stays a pure consumer of the record stream.
func (t *Tracker) Summary(contextID string, posteriors map[string]domain.ArmPosterior) domain.LearningSnapshot {
	responses := t.tp + t.fp
	rate := 0.0
	if len(t.records) > 0 {
		rate = float64(responses) / float64(len(t.records))
	}
	precision, recall, f1 := precisionRecallF1(t.tp, t.fp, t.fn)

	z := zForConfidence(t.confidence)
	arms := make(map[string]domain.ArmSummary, len(posteriors))
	for id, p := range posteriors {
		obs := t.perArm[id]
		trials, successes := 0, 0
		if obs != nil {
			trials, successes = obs.trials, obs.successes
		}
		lo, hi := wilsonInterval(float64(successes), float64(trials), z)
		arms[id] = domain.ArmSummary{
			Alpha:     p.Alpha,
			Beta:      p.Beta,
			Mean:      p.Mean(),
			Trials:    trials,
			Successes: successes,
			CILow:     lo,
			CIHigh:    hi,
		}
	}

	return domain.LearningSnapshot{
		ContextID:        contextID,
		Interactions:     len(t.records),
		Responses:        responses,
		ResponseRate:     rate,
		Precision:        precision,
		Recall:           recall,
		F1:               f1,
		CumulativeRegret: t.cumRegret,
		Arms:             arms,
	}
}
