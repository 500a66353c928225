package bandit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// ---- in-memory collaborators ----

type fakeStateRepo struct {
	states map[string]domain.ContextState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[string]domain.ContextState)}
}

func (r *fakeStateRepo) GetState(_ context.Context, contextID string) (*domain.ContextState, error) {
	st, ok := r.states[contextID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *fakeStateRepo) SaveState(_ context.Context, contextID string, state *domain.ContextState) error {
	r.states[contextID] = *state
	return nil
}

type fakeInteractionRepo struct {
	saved []domain.InteractionRecord
}

func (r *fakeInteractionRepo) SaveInteraction(_ context.Context, rec domain.InteractionRecord) error {
	r.saved = append(r.saved, rec)
	return nil
}

type fakeSimSource struct {
	scores map[string]float64
}

func (s *fakeSimSource) Scores(_ context.Context, _ string, armIDs []string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, id := range armIDs {
		if v, ok := s.scores[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type fakeEligChecker struct {
	blocked map[string]bool
}

func (c *fakeEligChecker) IsEligible(_ context.Context, _ string, armID string) (bool, error) {
	return !c.blocked[armID], nil
}

type fakeConfigRepo struct {
	rows map[string]domain.BanditEngineConfig
}

func (r *fakeConfigRepo) GetConfig(_ context.Context, contextID string) (domain.BanditEngineConfig, bool, error) {
	row, ok := r.rows[contextID]
	return row, ok, nil
}

func (r *fakeConfigRepo) UpsertConfig(_ context.Context, cfg domain.BanditEngineConfig) error {
	r.rows[cfg.ContextID] = cfg
	return nil
}

func seededConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func TestService_OpenSelectFeedbackCycle(t *testing.T) {
	ctx := context.Background()
	stateRepo := newFakeStateRepo()
	interactions := &fakeInteractionRepo{}

	svc := NewBanditService(stateRepo, interactions, nil, nil, NoopEligibilityChecker{}, seededConfig())

	arms := []domain.Arm{
		{ID: "cand-1", Similarity: fp(0.9)},
		{ID: "cand-2", Similarity: fp(0.1)},
		{ID: "cand-3"},
	}
	require.NoError(t, svc.OpenContext(ctx, "role-7", arms))

	armID, err := svc.Select(ctx, "role-7")
	require.NoError(t, err)
	require.Contains(t, []string{"cand-1", "cand-2", "cand-3"}, armID)

	require.NoError(t, svc.RecordOutcome(ctx, "role-7", domain.OutcomeEvent{
		ArmID:     armID,
		EventType: EventReply,
	}))

	require.Len(t, interactions.saved, 1)
	require.Equal(t, "role-7", interactions.saved[0].ContextID)
	require.Equal(t, armID, interactions.saved[0].ArmID)
	require.Equal(t, 1.0, interactions.saved[0].Reward)

	summary, err := svc.Summary(ctx, "role-7")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Interactions)
}

func TestService_SimilaritySourceFillsMissingScores(t *testing.T) {
	ctx := context.Background()
	sims := &fakeSimSource{scores: map[string]float64{"cand-b": 0.8}}

	svc := NewBanditService(nil, nil, nil, sims, NoopEligibilityChecker{}, seededConfig())

	require.NoError(t, svc.OpenContext(ctx, "role-1", []domain.Arm{
		{ID: "cand-a", Similarity: fp(0.4)},
		{ID: "cand-b"},
		{ID: "cand-c"}, // unknown to the source: stays cold
	}))

	state, err := svc.ExportState(ctx, "role-1")
	require.NoError(t, err)

	require.Equal(t, 1+1000*0.4, state.Arms["cand-a"].Alpha)
	require.Equal(t, 1+1000*0.8, state.Arms["cand-b"].Alpha)
	require.Equal(t, domain.ArmPosterior{Alpha: 1, Beta: 1}, state.Arms["cand-c"])
}

func TestService_EligibilityFilterVetoesArms(t *testing.T) {
	ctx := context.Background()
	elig := &fakeEligChecker{blocked: map[string]bool{"cand-1": true, "cand-2": true}}

	svc := NewBanditService(nil, nil, nil, nil, elig, seededConfig())

	require.NoError(t, svc.OpenContext(ctx, "role-1", []domain.Arm{
		{ID: "cand-1", Similarity: fp(0.9)},
		{ID: "cand-2", Similarity: fp(0.9)},
		{ID: "cand-3", Similarity: fp(0.1)},
	}))

	// only cand-3 survives the veto, regardless of its low prior
	for i := 0; i < 10; i++ {
		armID, err := svc.Select(ctx, "role-1")
		require.NoError(t, err)
		require.Equal(t, "cand-3", armID)
	}

	elig.blocked["cand-3"] = true
	_, err := svc.Select(ctx, "role-1")
	require.ErrorIs(t, err, ErrEmptyArmSet)
}

func TestService_CheckpointAndRestore(t *testing.T) {
	ctx := context.Background()
	stateRepo := newFakeStateRepo()

	svc := NewBanditService(stateRepo, nil, nil, nil, NoopEligibilityChecker{}, seededConfig())

	require.NoError(t, svc.OpenContext(ctx, "role-9", []domain.Arm{
		{ID: "a", Similarity: fp(0.7)},
		{ID: "b", Similarity: fp(0.3)},
	}))
	require.NoError(t, svc.RecordOutcome(ctx, "role-9", domain.OutcomeEvent{ArmID: "a", EventType: EventReply}))
	require.NoError(t, svc.Checkpoint(ctx, "role-9"))

	before, err := svc.ExportState(ctx, "role-9")
	require.NoError(t, err)

	// a fresh service (new process) restores the context from the store
	svc2 := NewBanditService(stateRepo, nil, nil, nil, NoopEligibilityChecker{}, seededConfig())
	require.NoError(t, svc2.RestoreContext(ctx, "role-9"))

	after, err := svc2.ExportState(ctx, "role-9")
	require.NoError(t, err)
	require.Equal(t, before.Arms, after.Arms)

	// restoring an unknown context reports not-found
	err = svc2.RestoreContext(ctx, "role-missing")
	require.ErrorIs(t, err, ErrUnknownContext)
}

func TestService_CloseContext(t *testing.T) {
	ctx := context.Background()
	stateRepo := newFakeStateRepo()

	svc := NewBanditService(stateRepo, nil, nil, nil, NoopEligibilityChecker{}, seededConfig())
	require.NoError(t, svc.OpenContext(ctx, "role-done", []domain.Arm{{ID: "a", Similarity: fp(0.5)}}))
	require.NoError(t, svc.CloseContext(ctx, "role-done"))

	_, err := svc.Select(ctx, "role-done")
	require.ErrorIs(t, err, ErrClosedContext)

	err = svc.RecordOutcome(ctx, "role-done", domain.OutcomeEvent{ArmID: "a", EventType: EventReply})
	require.ErrorIs(t, err, ErrClosedContext)

	// close checkpointed the final state
	require.True(t, stateRepo.states["role-done"].Closed)

	// summary and export stay readable
	_, err = svc.Summary(ctx, "role-done")
	require.NoError(t, err)
	_, err = svc.ExportState(ctx, "role-done")
	require.NoError(t, err)
}

func TestService_UnknownContext(t *testing.T) {
	ctx := context.Background()
	svc := NewBanditService(nil, nil, nil, nil, NoopEligibilityChecker{}, seededConfig())

	_, err := svc.Select(ctx, "nope")
	require.ErrorIs(t, err, ErrUnknownContext)

	err = svc.RecordOutcome(ctx, "nope", domain.OutcomeEvent{ArmID: "a", EventType: EventReply})
	require.ErrorIs(t, err, ErrUnknownContext)
}

func TestService_ConfigOverridesApply(t *testing.T) {
	ctx := context.Background()
	interview := 0.6
	cfgRepo := &fakeConfigRepo{rows: map[string]domain.BanditEngineConfig{
		"role-special": {
			ContextID:       "role-special",
			PriorBudget:     200,
			RewardInterview: &interview,
		},
	}}

	svc := NewBanditService(nil, &fakeInteractionRepo{}, cfgRepo, nil, NoopEligibilityChecker{}, seededConfig())

	require.NoError(t, svc.OpenContext(ctx, "role-special", []domain.Arm{
		{ID: "a", Similarity: fp(1.0)},
	}))

	// the override budget (200) shaped the prior, not the default (1000)
	state, err := svc.ExportState(ctx, "role-special")
	require.NoError(t, err)
	require.Equal(t, 201.0, state.Arms["a"].Alpha)

	// the override reward mapping is in effect
	require.NoError(t, svc.RecordOutcome(ctx, "role-special", domain.OutcomeEvent{
		ArmID:     "a",
		EventType: EventInterview,
	}))
	after, err := svc.ExportState(ctx, "role-special")
	require.NoError(t, err)
	require.InDelta(t, 201.0+interview, after.Arms["a"].Alpha, 1e-12)
}

func TestService_DuplicateOpenRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewBanditService(nil, nil, nil, nil, NoopEligibilityChecker{}, seededConfig())

	arms := []domain.Arm{{ID: "a", Similarity: fp(0.5)}}
	require.NoError(t, svc.OpenContext(ctx, "role-1", arms))
	require.Error(t, svc.OpenContext(ctx, "role-1", arms))
}
