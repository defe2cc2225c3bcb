package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpsertProfileRequest struct {
	Bio              string `json:"bio"`
	Industry         string `json:"industry"`
	WhatsappURL      string `json:"whatsapp_url"`
	LinkedinURL      string `json:"linkedin_url"`
	Visibility       string `json:"visibility" binding:"omitempty,oneof=public private"`
	MonthsExperience *int   `json:"months_experience"`
	Age              *int   `json:"age"`
}

// GetMyProfile returns the caller's collaborator profile, or profile null
// with collaborator_status "none" when it does not exist yet. A profile's
// existence is what marks the user as an approved collaborator.
func GetMyProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	err = db.DB.Where("user_id = ?", userID).First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"profile": nil, "collaborator_status": "none"})
			return
		}
		log.Printf("Failed to fetch profile for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile, "collaborator_status": "approved"})
}

// UpsertMyProfile creates the caller's profile or updates the existing one.
func UpsertMyProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpsertProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Visibility == "" {
		body.Visibility = "public"
	}

	var profile models.Profile

	err = db.DB.Where("user_id = ?", userID).First(&profile).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to fetch profile for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	created := errors.Is(err, gorm.ErrRecordNotFound)

	profile.UserID = userID
	profile.Bio = body.Bio
	profile.Industry = body.Industry
	profile.WhatsappURL = body.WhatsappURL
	profile.LinkedinURL = body.LinkedinURL
	profile.Visibility = body.Visibility
	profile.MonthsExperience = body.MonthsExperience
	profile.Age = body.Age

	if err := db.DB.Save(&profile).Error; err != nil {
		log.Printf("Failed to save profile for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	status := http.StatusOK
	message := "Profile updated"

	if created {
		status = http.StatusCreated
		message = "Profile created"
	}

	ctx.JSON(status, gin.H{"message": message, "profile": profile, "collaborator_status": "approved"})
}
