package domain

// BanditEngineConfig is a per-context override row for the selection engine.
// Zero-valued fields fall back to the service defaults when loaded.
type BanditEngineConfig struct {
	ContextID string `json:"context_id" gorm:"column:context_id;primaryKey"`

	PriorBudget float64 `json:"prior_budget" gorm:"column:prior_budget"`
	LambdaFG    float64 `json:"lambda_fg" gorm:"column:lambda_fg"`
	BonusScale  float64 `json:"bonus_scale" gorm:"column:bonus_scale"`

	SuccessThreshold float64 `json:"success_threshold" gorm:"column:success_threshold"`
	ConfidenceLevel  float64 `json:"confidence_level" gorm:"column:confidence_level"`

	// per-event base rewards for the hiring funnel
	RewardReply      *float64 `json:"reward_reply" gorm:"column:reward_reply"`
	RewardNoReply    *float64 `json:"reward_no_reply" gorm:"column:reward_no_reply"`
	RewardScreenPass *float64 `json:"reward_screen_pass" gorm:"column:reward_screen_pass"`
	RewardScreenFail *float64 `json:"reward_screen_fail" gorm:"column:reward_screen_fail"`
	RewardInterview  *float64 `json:"reward_interview" gorm:"column:reward_interview"`
	RewardHire       *float64 `json:"reward_hire" gorm:"column:reward_hire"`
}

func (BanditEngineConfig) TableName() string {
	return "bandit_engine_config"
}
