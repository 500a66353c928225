package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// BanditStateRepository persists context posterior state as a JSON blob
// keyed by context id.
type BanditStateRepository struct {
	DB *gorm.DB
}

func NewBanditStateRepository(db *gorm.DB) *BanditStateRepository {
	return &BanditStateRepository{DB: db}
}

type banditStateRow struct {
	ContextID string `gorm:"column:context_id;primaryKey"`
	StateJSON []byte `gorm:"column:state_json"`
}

func (banditStateRow) TableName() string {
	return "bandit_context_state"
}

func (r *BanditStateRepository) GetState(ctx context.Context, contextID string) (*domain.ContextState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row banditStateRow
	err := r.DB.WithContext(ctx).First(&row, "context_id = ?", contextID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bandit_context_state: %w", err)
	}

	var state domain.ContextState
	if err := json.Unmarshal(row.StateJSON, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state_json: %w", err)
	}

	return &state, nil
}

func (r *BanditStateRepository) SaveState(ctx context.Context, contextID string, state *domain.ContextState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	row := banditStateRow{
		ContextID: contextID,
		StateJSON: raw,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "context_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert bandit_context_state: %w", err)
	}

	return nil
}
