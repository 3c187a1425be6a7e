package repo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/factory_registry/internal/models"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
