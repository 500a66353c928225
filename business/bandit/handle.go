package bandit

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// pendingSelection remembers the arm returned by the last Select call so
// the matching Update can be validated against it, plus the best posterior
// mean at selection time for regret accounting.
type pendingSelection struct {
	armID    string
	bestMean float64
}

// Handle is one bandit context (an open role, an outreach campaign). It
// owns the only mutable posterior map for that context and holds no locks:
// concurrent calls against the same handle must be serialized by the
// caller, while separate handles are fully independent.
type Handle struct {
	contextID string
	cfg       Config
	rng       *rand.Rand
	arms      map[string]*ArmState
	ids       []string
	tracker   *Tracker
	pending   *pendingSelection
	closed    bool
	updatedAt time.Time
}

// NewHandle builds a READY context from warm-start priors (the Prior
// Initializer output, or uninformative defaults). The rng must be the
// context's own seedable source; nil falls back to a time-seeded one.
func NewHandle(contextID string, priors map[string]ArmState, cfg Config, rng *rand.Rand) (*Handle, error) {
	if len(priors) == 0 {
		return nil, ErrEmptyArmSet
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bandit config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	arms := make(map[string]*ArmState, len(priors))
	for id, st := range priors {
		if !(st.Alpha > 0) || !(st.Beta > 0) {
			return nil, fmt.Errorf("arm %q has non-positive pseudo-counts (alpha=%v beta=%v)", id, st.Alpha, st.Beta)
		}
		arm := st
		arms[id] = &arm
	}

	return &Handle{
		contextID: contextID,
		cfg:       cfg,
		rng:       rng,
		arms:      arms,
		ids:       sortedArmIDs(arms),
		tracker:   NewTracker(cfg.SuccessThreshold, cfg.ConfidenceLevel),
		updatedAt: time.Now(),
	}, nil
}

// ImportHandle reconstructs a context from a prior export, bypassing the
// Prior Initializer. Subsequent behavior is indistinguishable from the
// original handle under the same rng stream.
func ImportHandle(state domain.ContextState, cfg Config, rng *rand.Rand) (*Handle, error) {
	if err := validatePosteriors(state.Arms); err != nil {
		return nil, err
	}
	priors := make(map[string]ArmState, len(state.Arms))
	for id, p := range state.Arms {
		priors[id] = ArmState{Alpha: p.Alpha, Beta: p.Beta}
	}
	h, err := NewHandle(state.ContextID, priors, cfg, rng)
	if err != nil {
		return nil, err
	}
	h.closed = state.Closed
	return h, nil
}

func (h *Handle) ContextID() string { return h.contextID }

func (h *Handle) Closed() bool { return h.closed }

// LastUpdated reports when the posterior map last changed. Used by the
// arena GC to evict stale contexts first.
func (h *Handle) LastUpdated() time.Time { return h.updatedAt }

// ArmIDs returns the arm ids in selection (ascending) order.
func (h *Handle) ArmIDs() []string {
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}

// Posterior returns the current posterior for one arm.
func (h *Handle) Posterior(armID string) (domain.ArmPosterior, bool) {
	arm, ok := h.arms[armID]
	if !ok {
		return domain.ArmPosterior{}, false
	}
	return domain.ArmPosterior{Alpha: arm.Alpha, Beta: arm.Beta}, true
}

// PendingArm reports the arm of the not-yet-updated selection, if any.
func (h *Handle) PendingArm() (string, bool) {
	if h.pending == nil {
		return "", false
	}
	return h.pending.armID, true
}

// Select performs one feel-good Thompson draw over all arms: for each arm
// theta ~ Beta(alpha, beta), score = theta + lambda_fg * bonus_scale,
// argmax wins with ties broken by lowest arm id. Posteriors are never
// mutated here; the selection is recorded as pending until Update.
func (h *Handle) Select() (string, error) {
	armID, _, err := h.selectFrom(h.ids, false)
	return armID, err
}

// SelectFrom restricts the draw to the given eligible arms (the service
// applies eligibility vetoes through this). The regret baseline still uses
// the best posterior mean across all arms.
func (h *Handle) SelectFrom(armIDs []string) (string, error) {
	armID, _, err := h.selectFrom(armIDs, false)
	return armID, err
}

// SelectDetailed is Select plus the per-arm score decomposition, for the
// debug endpoint. It draws from the same rng stream as Select.
func (h *Handle) SelectDetailed() (string, []domain.SelectionDebug, error) {
	return h.selectFrom(h.ids, true)
}

func (h *Handle) selectFrom(armIDs []string, detailed bool) (string, []domain.SelectionDebug, error) {
	if h.closed {
		return "", nil, ErrClosedContext
	}
	if len(armIDs) == 0 {
		return "", nil, ErrEmptyArmSet
	}

	ids := make([]string, len(armIDs))
	copy(ids, armIDs)
	sort.Strings(ids)

	bonus := h.cfg.LambdaFG * h.cfg.BonusScale

	var debug []domain.SelectionDebug
	if detailed {
		debug = make([]domain.SelectionDebug, 0, len(ids))
	}

	selected := ""
	bestScore := 0.0
	for i, id := range ids {
		arm, ok := h.arms[id]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownArm, id)
		}
		theta := sampleBeta(h.rng, arm.Alpha, arm.Beta)
		score := theta + bonus
		if i == 0 || score > bestScore {
			selected = id
			bestScore = score
		}
		if detailed {
			debug = append(debug, domain.SelectionDebug{
				ArmID:         id,
				Alpha:         arm.Alpha,
				Beta:          arm.Beta,
				PosteriorMean: arm.Mean(),
				SampledTheta:  theta,
				FeelGoodBonus: bonus,
				FinalScore:    score,
			})
		}
	}
	if detailed {
		for i := range debug {
			if debug[i].ArmID == selected {
				debug[i].Selected = true
			}
		}
	}

	h.pending = &pendingSelection{armID: selected, bestMean: h.bestMean()}
	return selected, debug, nil
}

// Update applies the conjugate Bernoulli update alpha += r, beta += 1-r.
// Fractional rewards are expected-value updates; total pseudo-count always
// grows by exactly 1. Validation happens before any mutation.
func (h *Handle) Update(armID string, reward float64) error {
	if h.closed {
		return ErrClosedContext
	}
	arm, ok := h.arms[armID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArm, armID)
	}
	if !validReward(reward) {
		return fmt.Errorf("%w: %v", ErrInvalidReward, reward)
	}

	// Regret baseline: best posterior mean at selection time when this
	// update matches the pending selection, current best otherwise.
	bestMean := h.bestMean()
	if h.pending != nil && h.pending.armID == armID {
		bestMean = h.pending.bestMean
		h.pending = nil
	}
	wasOptimal := arm.Mean() >= bestMean-1e-12

	arm.Alpha += reward
	arm.Beta += 1 - reward
	h.updatedAt = time.Now()

	h.tracker.Record(armID, reward, wasOptimal, bestMean)
	return nil
}

// Close moves the context to CLOSED: select/update fail afterwards while
// posterior state stays readable for reporting and export.
func (h *Handle) Close() {
	h.closed = true
	h.pending = nil
}

// Export snapshots the posterior map for persistence. The result
// round-trips through ImportHandle with no loss.
func (h *Handle) Export() domain.ContextState {
	arms := make(map[string]domain.ArmPosterior, len(h.arms))
	for id, arm := range h.arms {
		arms[id] = domain.ArmPosterior{Alpha: arm.Alpha, Beta: arm.Beta}
	}
	return domain.ContextState{
		ContextID: h.contextID,
		Arms:      arms,
		Closed:    h.closed,
		UpdatedAt: h.updatedAt,
	}
}

// Summary derives the learning snapshot from the interaction stream and
// current posteriors.
func (h *Handle) Summary() domain.LearningSnapshot {
	posteriors := make(map[string]domain.ArmPosterior, len(h.arms))
	for id, arm := range h.arms {
		posteriors[id] = domain.ArmPosterior{Alpha: arm.Alpha, Beta: arm.Beta}
	}
	return h.tracker.Summary(h.contextID, posteriors)
}

// Tracker exposes the context's learning tracker.
func (h *Handle) Tracker() *Tracker { return h.tracker }

func (h *Handle) bestMean() float64 {
	best := 0.0
	for _, arm := range h.arms {
		if m := arm.Mean(); m > best {
			best = m
		}
	}
	return best
}
