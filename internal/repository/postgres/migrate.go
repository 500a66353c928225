package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// AutoMigrate creates the bandit tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&banditStateRow{},
		&domain.InteractionRecord{},
		&domain.BanditEngineConfig{},
	); err != nil {
		return fmt.Errorf("failed to migrate bandit tables: %w", err)
	}
	return nil
}
