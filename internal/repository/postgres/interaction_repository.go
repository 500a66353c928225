package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// InteractionRepository appends interaction records. The table is the
// authoritative log; snapshots are derived from it.
type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) SaveInteraction(ctx context.Context, rec domain.InteractionRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save interaction record: %w", err)
	}

	return nil
}

func (r *InteractionRepository) ListByContext(ctx context.Context, contextID string, limit int) ([]domain.InteractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 100
	}

	var records []domain.InteractionRecord
	err := r.DB.WithContext(ctx).
		Where("context_id = ?", contextID).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interaction records: %w", err)
	}

	return records, nil
}
