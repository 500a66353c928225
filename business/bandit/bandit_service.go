package bandit

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/logger"
)

// contextEntry pairs one handle with the mutex that serializes all calls
// against it. Entries for different contexts never share mutable state.
type contextEntry struct {
	mu       sync.Mutex
	handle   *Handle
	cfg      Config
	lastUsed time.Time
}

// BanditService owns the arena of bandit contexts keyed by context id
// (typically an open role) and orchestrates priors, selection, feedback,
// and explicit persistence around the lock-free handles.
type BanditService struct {
	stateRepo       StateRepository
	interactionRepo InteractionRepository
	cfgRepo         ConfigRepository
	simSource       SimilaritySource
	eligChecker     EligibilityChecker
	defaultCfg      Config

	mu       sync.Mutex
	contexts map[string]*contextEntry
}

func NewBanditService(
	stateRepo StateRepository,
	interactionRepo InteractionRepository,
	cfgRepo ConfigRepository,
	simSource SimilaritySource,
	eligChecker EligibilityChecker,
	defaultCfg Config,
) *BanditService {
	return &BanditService{
		stateRepo:       stateRepo,
		interactionRepo: interactionRepo,
		cfgRepo:         cfgRepo,
		simSource:       simSource,
		eligChecker:     eligChecker,
		defaultCfg:      defaultCfg,
		contexts:        make(map[string]*contextEntry),
	}
}

// OpenContext warm-starts a new bandit context. Arms without an explicit
// similarity score are looked up through the similarity source; arms still
// missing a score start cold on the uninformative prior.
func (s *BanditService) OpenContext(ctx context.Context, contextID string, arms []domain.Arm) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if contextID == "" {
		return fmt.Errorf("context_id is required")
	}
	if len(arms) == 0 {
		return ErrEmptyArmSet
	}

	s.mu.Lock()
	if _, exists := s.contexts[contextID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("context %q already open", contextID)
	}
	s.mu.Unlock()

	arms, err := s.resolveSimilarities(ctx, contextID, arms)
	if err != nil {
		return err
	}

	cfg := s.loadConfig(ctx, contextID)

	priors, err := InitPriors(arms, cfg.PriorBudget)
	if err != nil {
		return err
	}

	h, err := NewHandle(contextID, priors, cfg, s.rngFor(contextID, cfg.Seed))
	if err != nil {
		return err
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("bandit_open_context",
		"trace_id", tid,
		"context_id", contextID,
		"arms", len(arms),
		"prior_budget", cfg.PriorBudget,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contexts[contextID]; exists {
		return fmt.Errorf("context %q already open", contextID)
	}
	s.contexts[contextID] = &contextEntry{handle: h, cfg: cfg, lastUsed: time.Now()}
	evictClosed(s.contexts, s.defaultCfg.MaxIdleContexts)
	return nil
}

// ImportState reconstructs a context from a prior export, bypassing the
// Prior Initializer.
func (s *BanditService) ImportState(ctx context.Context, state domain.ContextState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	cfg := s.loadConfig(ctx, state.ContextID)
	h, err := ImportHandle(state, cfg, s.rngFor(state.ContextID, cfg.Seed))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[state.ContextID] = &contextEntry{handle: h, cfg: cfg, lastUsed: time.Now()}
	evictClosed(s.contexts, s.defaultCfg.MaxIdleContexts)
	return nil
}

// RestoreContext loads a checkpointed context from the state store.
func (s *BanditService) RestoreContext(ctx context.Context, contextID string) error {
	if s.stateRepo == nil {
		return fmt.Errorf("no state repository configured")
	}
	state, err := s.stateRepo.GetState(ctx, contextID)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if state == nil {
		return fmt.Errorf("%w: %q", ErrUnknownContext, contextID)
	}
	return s.ImportState(ctx, *state)
}

// Select runs one eligibility-filtered feel-good Thompson draw and returns
// the chosen arm id. Posterior state is not mutated.
func (s *BanditService) Select(ctx context.Context, contextID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}
	entry, err := s.entry(contextID)
	if err != nil {
		return "", err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	eligible, err := s.eligibleArms(ctx, contextID, entry.handle)
	if err != nil {
		return "", err
	}

	armID, err := entry.handle.SelectFrom(eligible)
	if err != nil {
		return "", err
	}
	entry.lastUsed = time.Now()

	SelectionsTotal.WithLabelValues(contextID).Inc()

	logger.Debug("bandit_select",
		"trace_id", TraceIDFromContext(ctx),
		"context_id", contextID,
		"arm_id", armID,
		"eligible", len(eligible),
	)
	return armID, nil
}

// DebugSelect is Select plus the per-arm score decomposition. It skips the
// eligibility filter so every arm appears in the output.
func (s *BanditService) DebugSelect(ctx context.Context, contextID string) (string, []domain.SelectionDebug, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("context error: %w", err)
	}
	entry, err := s.entry(contextID)
	if err != nil {
		return "", nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	armID, debug, err := entry.handle.SelectDetailed()
	if err != nil {
		return "", nil, err
	}
	entry.lastUsed = time.Now()
	return armID, debug, nil
}

// RecordOutcome maps a hiring funnel event to a reward, applies the
// Bayesian update, and appends the interaction record. The posterior
// update happens in-memory first; a failing interaction store surfaces as
// an error but never corrupts the posterior.
func (s *BanditService) RecordOutcome(ctx context.Context, contextID string, ev domain.OutcomeEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	entry, err := s.entry(contextID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	reward, err := entry.cfg.RewardForEvent(ev)
	if err != nil {
		return err
	}

	if pending, ok := entry.handle.PendingArm(); !ok || pending != ev.ArmID {
		UnmatchedUpdatesTotal.Inc()
		logger.Warn("bandit_update_without_select",
			"trace_id", TraceIDFromContext(ctx),
			"context_id", contextID,
			"arm_id", ev.ArmID,
		)
	}

	if err := entry.handle.Update(ev.ArmID, reward); err != nil {
		return err
	}
	entry.lastUsed = time.Now()

	OutcomeEventsTotal.WithLabelValues(contextID, ev.EventType).Inc()

	logger.Debug("bandit_outcome",
		"trace_id", TraceIDFromContext(ctx),
		"context_id", contextID,
		"arm_id", ev.ArmID,
		"event_type", ev.EventType,
		"reward", reward,
	)

	if s.interactionRepo != nil {
		rec := domain.InteractionRecord{
			ContextID:  contextID,
			ArmID:      ev.ArmID,
			Reward:     reward,
			CreatedAt:  time.Now(),
			WasOptimal: lastWasOptimal(entry.handle),
		}
		if err := s.interactionRepo.SaveInteraction(ctx, rec); err != nil {
			return fmt.Errorf("save interaction (posterior already applied): %w", err)
		}
	}
	return nil
}

// Summary returns the learning snapshot for one context. Closed contexts
// stay readable.
func (s *BanditService) Summary(ctx context.Context, contextID string) (domain.LearningSnapshot, error) {
	entry, err := s.entry(contextID)
	if err != nil {
		return domain.LearningSnapshot{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.handle.Summary(), nil
}

// ExportState snapshots a context's posterior map for persistence.
func (s *BanditService) ExportState(ctx context.Context, contextID string) (domain.ContextState, error) {
	entry, err := s.entry(contextID)
	if err != nil {
		return domain.ContextState{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.handle.Export(), nil
}

// Checkpoint persists the context state through the state store. Explicit
// by design: never hidden inside select or update, and a failure leaves
// the in-memory context fully operational for a later retry.
func (s *BanditService) Checkpoint(ctx context.Context, contextID string) error {
	if s.stateRepo == nil {
		return fmt.Errorf("no state repository configured")
	}
	entry, err := s.entry(contextID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	state := entry.handle.Export()
	entry.mu.Unlock()

	if err := s.stateRepo.SaveState(ctx, contextID, &state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// CloseContext moves the context to CLOSED and checkpoints it. Select and
// update fail afterwards; summary and export stay available.
func (s *BanditService) CloseContext(ctx context.Context, contextID string) error {
	entry, err := s.entry(contextID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	entry.handle.Close()
	entry.lastUsed = time.Now()
	state := entry.handle.Export()
	entry.mu.Unlock()

	logger.Info("bandit_close_context",
		"trace_id", TraceIDFromContext(ctx),
		"context_id", contextID,
	)

	if s.stateRepo != nil {
		if err := s.stateRepo.SaveState(ctx, contextID, &state); err != nil {
			return fmt.Errorf("save state on close: %w", err)
		}
	}
	return nil
}

// ---- internals ----

func (s *BanditService) entry(contextID string) (*contextEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.contexts[contextID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContext, contextID)
	}
	return entry, nil
}

// resolveSimilarities fills missing similarity scores from the similarity
// source. The engine never learns how those scores were computed.
func (s *BanditService) resolveSimilarities(ctx context.Context, contextID string, arms []domain.Arm) ([]domain.Arm, error) {
	if s.simSource == nil {
		return arms, nil
	}

	missing := make([]string, 0, len(arms))
	for _, a := range arms {
		if a.Similarity == nil {
			missing = append(missing, a.ID)
		}
	}
	if len(missing) == 0 {
		return arms, nil
	}

	scores, err := s.simSource.Scores(ctx, contextID, missing)
	if err != nil {
		return nil, fmt.Errorf("similarity source: %w", err)
	}

	out := make([]domain.Arm, len(arms))
	copy(out, arms)
	for i := range out {
		if out[i].Similarity != nil {
			continue
		}
		if score, ok := scores[out[i].ID]; ok {
			v := score
			out[i].Similarity = &v
		}
	}
	return out, nil
}

// eligibleArms filters the handle's arms through the eligibility checker.
// Arms failing the check (or erroring) are skipped, matching candidate
// filtering semantics elsewhere in the product.
func (s *BanditService) eligibleArms(ctx context.Context, contextID string, h *Handle) ([]string, error) {
	ids := h.ArmIDs()
	if s.eligChecker == nil {
		return ids, nil
	}

	eligible := make([]string, 0, len(ids))
	for _, id := range ids {
		ok, err := s.eligChecker.IsEligible(ctx, contextID, id)
		if err != nil || !ok {
			continue
		}
		eligible = append(eligible, id)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no eligible arms in context %q", ErrEmptyArmSet, contextID)
	}
	return eligible, nil
}

// loadConfig starts from the service defaults and applies any per-context
// override row, keeping sane fallbacks for missing fields.
func (s *BanditService) loadConfig(ctx context.Context, contextID string) Config {
	cfg := s.defaultCfg
	if s.cfgRepo == nil {
		return cfg
	}

	row, ok, err := s.cfgRepo.GetConfig(ctx, contextID)
	if err != nil || !ok {
		return cfg
	}

	if row.PriorBudget > 0 {
		cfg.PriorBudget = row.PriorBudget
	}
	if row.LambdaFG > 0 {
		cfg.LambdaFG = row.LambdaFG
	}
	if row.BonusScale > 0 {
		cfg.BonusScale = row.BonusScale
	}
	if row.SuccessThreshold > 0 {
		cfg.SuccessThreshold = row.SuccessThreshold
	}
	if row.ConfidenceLevel > 0 {
		cfg.ConfidenceLevel = row.ConfidenceLevel
	}

	if row.RewardReply != nil {
		cfg.RewardReply = *row.RewardReply
	}
	if row.RewardNoReply != nil {
		cfg.RewardNoReply = *row.RewardNoReply
	}
	if row.RewardScreenPass != nil {
		cfg.RewardScreenPass = *row.RewardScreenPass
	}
	if row.RewardScreenFail != nil {
		cfg.RewardScreenFail = *row.RewardScreenFail
	}
	if row.RewardInterview != nil {
		cfg.RewardInterview = *row.RewardInterview
	}
	if row.RewardHire != nil {
		cfg.RewardHire = *row.RewardHire
	}

	return cfg
}

// rngFor derives the per-context RNG. A non-zero seed is mixed with the
// context id hash so parallel contexts never share a stream while staying
// replayable; a zero seed means time-seeded.
func (s *BanditService) rngFor(contextID string, seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(contextID))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// lastWasOptimal reads the optimality flag of the newest tracker record.
func lastWasOptimal(h *Handle) bool {
	rec, ok := h.Tracker().LastRecord()
	return ok && rec.WasOptimal
}
