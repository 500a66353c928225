package domain

import (
	"time"
)

// Arm is one selectable option in a hiring context: a candidate profile,
// an outreach-message variant, or a sourcing query.
type Arm struct {
	ID string `json:"arm_id"`

	// Similarity is the warm-start affinity score in [0,1] handed over by
	// the similarity source. Nil means no signal; the arm starts cold.
	Similarity *float64 `json:"similarity,omitempty"`
}

// ArmPosterior is the Beta posterior over an arm's true success probability.
// Alpha and Beta are positive pseudo-counts; Alpha+Beta is the total
// effective evidence (prior budget + observed trials).
type ArmPosterior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Mean is the posterior expectation alpha/(alpha+beta).
func (p ArmPosterior) Mean() float64 {
	total := p.Alpha + p.Beta
	if total <= 0 {
		return 0
	}
	return p.Alpha / total
}

// ContextState is the exported, persistable state of one bandit context.
// Round-trips through export/import with no loss.
type ContextState struct {
	ContextID string                  `json:"context_id"`
	Arms      map[string]ArmPosterior `json:"arms"`
	Closed    bool                    `json:"closed"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// InteractionRecord is one append-only selection-and-feedback cycle.
type InteractionRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContextID  string    `gorm:"column:context_id;not null;index" json:"context_id"`
	ArmID      string    `gorm:"column:arm_id;not null" json:"arm_id"`
	Reward     float64   `gorm:"column:reward;not null" json:"reward"`
	WasOptimal bool      `gorm:"column:was_optimal" json:"was_optimal"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InteractionRecord) TableName() string {
	return "bandit_interactions"
}

// OutcomeEvent is the feedback payload for one prior selection. Either
// EventType (mapped to a reward via config) or an explicit Reward is set.
type OutcomeEvent struct {
	ArmID     string   `json:"arm_id"`
	EventType string   `json:"event_type,omitempty"`
	Reward    *float64 `json:"reward,omitempty"`
}

// ArmSummary is the per-arm slice of a learning snapshot.
type ArmSummary struct {
	Alpha     float64 `json:"alpha"`
	Beta      float64 `json:"beta"`
	Mean      float64 `json:"mean"`
	Trials    int     `json:"trials"`
	Successes int     `json:"successes"`
	CILow     float64 `json:"ci_low"`
	CIHigh    float64 `json:"ci_high"`
}

// LearningSnapshot is a point-in-time aggregate derived from the interaction
// stream plus current posteriors. Recomputable, not authoritative.
type LearningSnapshot struct {
	ContextID        string                `json:"context_id"`
	Interactions     int                   `json:"interactions"`
	Responses        int                   `json:"responses"`
	ResponseRate     float64               `json:"response_rate"`
	Precision        float64               `json:"precision"`
	Recall           float64               `json:"recall"`
	F1               float64               `json:"f1"`
	CumulativeRegret float64               `json:"cumulative_regret"`
	Arms             map[string]ArmSummary `json:"arms"`
}

// SelectionDebug exposes the score decomposition of one selection pass,
// for the debug endpoint.
type SelectionDebug struct {
	ArmID         string  `json:"arm_id"`
	Alpha         float64 `json:"alpha"`
	Beta          float64 `json:"beta"`
	PosteriorMean float64 `json:"posterior_mean"`
	SampledTheta  float64 `json:"sampled_theta"`
	FeelGoodBonus float64 `json:"feel_good_bonus"`
	FinalScore    float64 `json:"final_score"`
	Selected      bool    `json:"selected"`
}
