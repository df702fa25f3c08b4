package database

import (
	"roomboard/internal/logger"
	"roomboard/internal/models"

	"gorm.io/gorm"
)

var ModelsToMigrate = []any{
	&models.StateEntry{},
}

// MigrateModels runs GORM AutoMigrate for the persisted state tables
func MigrateModels(db *gorm.DB) error {
	log := logger.New("database").Function("MigrateModels")

	for _, model := range ModelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Debug("Database migration completed")
	return nil
}
