package db

import (
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Plan{},
		&models.Subscription{},
		&models.Project{},
		&models.Publication{},
		&models.ProjectCollaborator{},
		&models.CollaborationRequest{},
		&models.Profile{},
		&models.Feedback{},
		&models.Rating{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	// One pending request per (user, project). AutoMigrate cannot express a
	// partial index, so it is created here on Postgres.
	if DB.Dialector.Name() == "postgres" {
		return DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_request_once
			ON collaboration_requests (user_id, project_id)
			WHERE status = 'pending' AND deleted_at IS NULL`).Error
	}

	return nil
}
