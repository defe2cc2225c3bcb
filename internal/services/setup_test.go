package services

import (
	"fmt"
	"testing"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB points the global connection at a fresh in-memory database.
// The shared-cache DSN keeps every pooled connection on the same database,
// which the concurrent loaders rely on.
func newTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.DB = gormDB

	require.NoError(t, db.DB.AutoMigrate(
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
	))
}

// breakTestDB closes the underlying connection so every query fails,
// exercising the degrade paths of the concurrent loaders.
func breakTestDB(t *testing.T) {
	t.Helper()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func createUser(t *testing.T, authUserID, email string) models.User {
	t.Helper()

	user := models.User{
		AuthUserID: authUserID,
		Name:       "Test",
		Email:      email,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

func createProject(t *testing.T, name string, responsibleID *uint, status string) models.Project {
	t.Helper()

	project := models.Project{
		Name:          name,
		ResponsibleID: responsibleID,
		Status:        status,
	}
	require.NoError(t, db.DB.Create(&project).Error)

	return project
}
