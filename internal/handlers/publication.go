package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/services"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/francescamaronna/appcolaboraciones/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatePublicationRequest struct {
	ProjectID   *uint    `json:"project_id"`
	Kind        string   `json:"kind" binding:"required,oneof=offer search announcement"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type UpdatePublicationRequest struct {
	Kind        *string  `json:"kind" binding:"omitempty,oneof=offer search announcement"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active paused closed deleted"`
	Skills      []string `json:"skills"`
}

type FeedEntry struct {
	services.FeedItem

	// CTA is the action state for the viewer: "no-login", "approved",
	// "pending" or "not-associated".
	CTA string `json:"cta"`
}

type FeedResponse struct {
	Items      []FeedEntry              `json:"items"`
	Projects   []services.ProjectOption `json:"projects"`
	Membership gin.H                    `json:"membership"`
}

// GetFeed serves the public publications feed. For a signed-in viewer each
// item carries its CTA state derived from the membership index.
func GetFeed(ctx *gin.Context) {
	viewerID := utils.OptionalUserID(ctx)

	filter := services.FeedFilter{Kind: ctx.Query("kind")}

	if raw := ctx.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Project ID"})
			return
		}
		filter.ProjectID = uint(projectID)
	}

	items, err := services.LoadFeed(filter)

	if err != nil {
		log.Printf("Failed to load feed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load publications"})
		return
	}

	options, err := services.LoadProjectOptions()

	if err != nil {
		log.Printf("Failed to load project options: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}

	index := services.BuildMembershipIndex(viewerID)

	entries := make([]FeedEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, FeedEntry{
			FeedItem: item,
			CTA:      ctaState(viewerID, item, index),
		})
	}

	ctx.JSON(http.StatusOK, FeedResponse{
		Items:    entries,
		Projects: options,
		Membership: gin.H{
			"approved_project_ids": index.ApprovedIDs(),
			"pending_project_ids":  index.PendingIDs(),
		},
	})
}

// GetMemberships returns the caller's membership index sets.
func GetMemberships(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	index := services.BuildMembershipIndex(userID)

	ctx.JSON(http.StatusOK, gin.H{
		"approved_project_ids": index.ApprovedIDs(),
		"pending_project_ids":  index.PendingIDs(),
	})
}

func ListMyPublications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var publications []models.Publication

	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&publications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve publications"})
		return
	}

	ctx.JSON(http.StatusOK, publications)
}

func CreatePublication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreatePublicationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	publication := models.Publication{
		ProjectID:   body.ProjectID,
		UserID:      &userID,
		Kind:        body.Kind,
		Title:       body.Title,
		Description: body.Description,
		Status:      types.PublicationActive,
		Skills:      encodeSkills(body.Skills),
	}

	if err := db.DB.Create(&publication).Error; err != nil {
		log.Printf("Failed to create publication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publication"})
		return
	}

	ctx.JSON(http.StatusCreated, publication)
}

func UpdatePublication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	publicationID, err := utils.GetPublicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdatePublicationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var publication models.Publication

	if err := db.DB.Where("id = ? AND user_id = ?", publicationID, userID).
		First(&publication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve publication"})
		}
		return
	}

	if body.Kind != nil {
		publication.Kind = *body.Kind
	}

	if body.Title != nil {
		publication.Title = *body.Title
	}

	if body.Description != nil {
		publication.Description = *body.Description
	}

	if body.Status != nil {
		publication.Status = *body.Status
	}

	if body.Skills != nil {
		publication.Skills = encodeSkills(body.Skills)
	}

	if err := db.DB.Save(&publication).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update publication"})
		return
	}

	ctx.JSON(http.StatusOK, publication)
}

func DeletePublication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	publicationID, err := utils.GetPublicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.DB.Where("id = ? AND user_id = ?", publicationID, userID).
		Delete(&models.Publication{})

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete publication"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ctaState(viewerID uint, item services.FeedItem, index services.MembershipIndex) string {
	if viewerID == 0 {
		return "no-login"
	}

	if item.ProjectID == nil {
		return "not-associated"
	}

	if index.Approved[*item.ProjectID] {
		return "approved"
	}

	if index.Pending[*item.ProjectID] {
		return "pending"
	}

	return "not-associated"
}

func encodeSkills(skills []string) datatypes.JSON {
	if skills == nil {
		skills = []string{}
	}

	raw, err := json.Marshal(skills)
	if err != nil {
		return datatypes.JSON("[]")
	}

	return datatypes.JSON(raw)
}
