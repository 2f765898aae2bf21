package database

import (
	"fmt"

	"github.com/photoclub/club-management-api/internal/logging"
	"github.com/photoclub/club-management-api/internal/models"
	"gorm.io/gorm"
)

// MigrateModels lists every model in dependency order. Shared with the test
// harness so in-memory databases match production schema.
func MigrateModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Work{},
		&models.WorkFile{},
		&models.WorkComment{},
		&models.WorkLike{},
		&models.Asset{},
		&models.AssetUsage{},
		&models.AssetMaintenanceRecord{},
	}
}

func Migrate() error {
	return MigrateOn(DB)
}

// MigrateOn runs auto-migration against the given connection.
func MigrateOn(db *gorm.DB) error {
	logging.Logger.Info("running database migrations")
	if err := db.AutoMigrate(MigrateModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logging.Logger.Info("database migrations completed")
	return nil
}
