package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// BanditConfigRepository reads and writes per-context engine config
// override rows.
type BanditConfigRepository struct {
	DB *gorm.DB
}

func NewBanditConfigRepository(db *gorm.DB) *BanditConfigRepository {
	return &BanditConfigRepository{DB: db}
}

func (r *BanditConfigRepository) GetConfig(ctx context.Context, contextID string) (domain.BanditEngineConfig, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.BanditEngineConfig{}, false, fmt.Errorf("context error: %w", err)
	}

	var cfg domain.BanditEngineConfig
	err := r.DB.WithContext(ctx).First(&cfg, "context_id = ?", contextID).Error
	if err == gorm.ErrRecordNotFound {
		return domain.BanditEngineConfig{}, false, nil
	}
	if err != nil {
		return domain.BanditEngineConfig{}, false, fmt.Errorf("failed to query bandit_engine_config: %w", err)
	}

	return cfg, true, nil
}

func (r *BanditConfigRepository) UpsertConfig(ctx context.Context, cfg domain.BanditEngineConfig) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "context_id"}},
			UpdateAll: true,
		},
	).Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to upsert bandit_engine_config: %w", err)
	}

	return nil
}
