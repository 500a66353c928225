package bandit

import (
	"context"
	"fmt"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

type Config struct {
	// PriorBudget is the total pseudo-count mass distributed from the
	// similarity score at warm-start time.
	PriorBudget float64

	// LambdaFG is the feel-good coefficient; BonusScale the fixed
	// exploration-bonus magnitude. The product is added to every sampled
	// theta at selection time and never touches the posterior.
	LambdaFG   float64
	BonusScale float64

	// SuccessThreshold: reward >= threshold counts as a response for
	// response-rate and precision/recall purposes.
	SuccessThreshold float64

	// ConfidenceLevel for per-arm Wilson intervals (0.90, 0.95, 0.99).
	ConfidenceLevel float64

	// Seed for per-context RNGs. 0 means time-seeded.
	Seed int64

	// MaxIdleContexts caps the in-memory context arena.
	MaxIdleContexts int

	// per-event base rewards, all within [0,1]
	RewardReply      float64
	RewardNoReply    float64
	RewardScreenPass float64
	RewardScreenFail float64
	RewardInterview  float64
	RewardHire       float64
}

const (
	defaultPriorBudget      = 1000.0
	defaultLambdaFG         = 0.1
	defaultBonusScale       = 0.05
	defaultSuccessThreshold = 0.5
	defaultConfidenceLevel  = 0.95
	defaultMaxIdleContexts  = 256

	defaultRewardReply      = 1.0
	defaultRewardNoReply    = 0.0
	defaultRewardScreenPass = 1.0
	defaultRewardScreenFail = 0.0
	defaultRewardInterview  = 0.8
	defaultRewardHire       = 1.0
)

func DefaultConfig() Config {
	return Config{
		PriorBudget:      defaultPriorBudget,
		LambdaFG:         defaultLambdaFG,
		BonusScale:       defaultBonusScale,
		SuccessThreshold: defaultSuccessThreshold,
		ConfidenceLevel:  defaultConfidenceLevel,
		MaxIdleContexts:  defaultMaxIdleContexts,

		RewardReply:      defaultRewardReply,
		RewardNoReply:    defaultRewardNoReply,
		RewardScreenPass: defaultRewardScreenPass,
		RewardScreenFail: defaultRewardScreenFail,
		RewardInterview:  defaultRewardInterview,
		RewardHire:       defaultRewardHire,
	}
}

func (c Config) Validate() error {
	if c.PriorBudget <= 0 {
		return fmt.Errorf("prior budget must be positive, got %v", c.PriorBudget)
	}
	if c.LambdaFG < 0 {
		return fmt.Errorf("lambda_fg must be non-negative, got %v", c.LambdaFG)
	}
	if c.BonusScale < 0 {
		return fmt.Errorf("bonus_scale must be non-negative, got %v", c.BonusScale)
	}
	if c.SuccessThreshold < 0 || c.SuccessThreshold > 1 {
		return fmt.Errorf("success threshold must be within [0,1], got %v", c.SuccessThreshold)
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be within (0,1), got %v", c.ConfidenceLevel)
	}
	return nil
}

// SimilaritySource supplies per-arm affinity scores in [0,1] for a context.
// Arms missing from the returned map start cold with the uninformative
// prior. How the scores are computed (graph kNN, embedding cosine) is the
// source's business.
type SimilaritySource interface {
	Scores(ctx context.Context, contextID string, armIDs []string) (map[string]float64, error)
}

// StateRepository persists and restores context state between restarts.
// GetState returns (nil, nil) when the context has never been saved.
type StateRepository interface {
	GetState(ctx context.Context, contextID string) (*domain.ContextState, error)
	SaveState(ctx context.Context, contextID string, state *domain.ContextState) error
}

// InteractionRepository appends interaction records for offline analysis.
type InteractionRepository interface {
	SaveInteraction(ctx context.Context, rec domain.InteractionRecord) error
}

// ConfigRepository reads per-context engine config overrides from the DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, contextID string) (domain.BanditEngineConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.BanditEngineConfig) error
}
