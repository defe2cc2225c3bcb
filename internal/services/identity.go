package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureUser maps an auth identity to the application user row, creating it
// on first sight. Calling it again for the same identity returns the same
// row and performs no write.
func EnsureUser(authUserID string, fallbackEmail string, profileName string) (*models.User, error) {
	if authUserID == "" {
		return nil, ErrNotAuthenticated
	}

	var existing models.User

	err := db.DB.Where("auth_user_id = ?", authUserID).First(&existing).Error

	if err == nil {
		return &existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(profileName)

	if name == "" && fallbackEmail != "" {
		name = strings.SplitN(fallbackEmail, "@", 2)[0]
	}

	if name == "" {
		name = "Usuario"
	}

	timezone := time.Now().Location().String()

	user := models.User{
		AuthUserID: authUserID,
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(fallbackEmail)),
		Timezone:   &timezone,
	}

	// The unique index on auth_user_id backstops the read above: if two
	// first-sight calls race, one insert is a no-op and both read the same
	// row back.
	result := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_user_id"}},
		DoNothing: true,
	}).Create(&user)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		if err := db.DB.Where("auth_user_id = ?", authUserID).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	log.Printf("Created user %d for auth identity %s", user.ID, authUserID)
	return &user, nil
}
