package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/services"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/francescamaronna/appcolaboraciones/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	WebhookURL  string `json:"webhook_url"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=active paused archived"`
	WebhookURL  *string `json:"webhook_url"`
}

type ProjectCard struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ResponsibleID *uint     `json:"responsible_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	IsResponsible bool      `json:"is_responsible"`

	services.ProjectCounts
}

type CollaboratorView struct {
	UserID       uint    `json:"user_id"`
	Name         string  `json:"name"`
	AverageStars float64 `json:"average_stars"`
	RatingsCount int64   `json:"ratings_count"`
}

type ProjectDetailResponse struct {
	Project       ProjectCard         `json:"project"`
	Publications  []services.FeedItem `json:"publications"`
	Collaborators []CollaboratorView  `json:"collaborators"`
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Name:          body.Name,
		Description:   body.Description,
		ResponsibleID: &userID,
		Status:        types.ProjectActive,
		WebhookURL:    body.WebhookURL,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectCard(project, userID, services.ProjectCounts{}))
}

// ListProjects is the public catalog: active projects newest first, each with
// its aggregate counts. Pending-request counts appear only on projects the
// viewer is responsible for.
func ListProjects(ctx *gin.Context) {
	viewerID := utils.OptionalUserID(ctx)

	var projects []models.Project

	if err := db.DB.Where("status = ?", types.ProjectActive).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	responsibleByID := make(map[uint]bool, len(projects))
	projectIDs := make([]uint, 0, len(projects))

	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
		responsibleByID[project.ID] = viewerID != 0 &&
			project.ResponsibleID != nil && *project.ResponsibleID == viewerID
	}

	counts := services.CountProjects(projectIDs, func(projectID uint) bool {
		return responsibleByID[projectID]
	})

	cards := make([]ProjectCard, 0, len(projects))

	for _, project := range projects {
		cards = append(cards, projectCard(project, viewerID, counts[project.ID]))
	}

	ctx.JSON(http.StatusOK, cards)
}

// GetProject returns the detail view: the card, the project's active
// publications and its collaborators with rating averages, best first.
func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID := utils.OptionalUserID(ctx)

	var project models.Project

	if err := db.DB.Where("id = ? AND status = ?", projectID, types.ProjectActive).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	isResponsible := viewerID != 0 && project.ResponsibleID != nil && *project.ResponsibleID == viewerID

	publications, err := services.LoadFeed(services.FeedFilter{ProjectID: project.ID})

	if err != nil {
		log.Printf("Failed to load publications for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve publications"})
		return
	}

	collaborators, err := loadCollaborators(project.ID)

	if err != nil {
		log.Printf("Failed to load collaborators for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collaborators"})
		return
	}

	ctx.JSON(http.StatusOK, ProjectDetailResponse{
		Project:       projectCard(project, viewerID, services.CountProject(project.ID, isResponsible)),
		Publications:  publications,
		Collaborators: collaborators,
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := findResponsibleProject(ctx, userID)

	if !ok {
		return
	}

	// Only fields present in the body change, so a status-only update
	// leaves the rest of the project alone.
	if body.Name != nil {
		project.Name = *body.Name
	}

	if body.Description != nil {
		project.Description = *body.Description
	}

	if body.Status != nil {
		project.Status = *body.Status
	}

	if body.WebhookURL != nil {
		project.WebhookURL = *body.WebhookURL
	}

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectCard(project, userID, services.ProjectCounts{}))
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := findResponsibleProject(ctx, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func findResponsibleProject(ctx *gin.Context, userID uint) (models.Project, bool) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Project{}, false
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND responsible_id = ?", projectID, userID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return models.Project{}, false
	}

	return project, true
}

func projectCard(project models.Project, viewerID uint, counts services.ProjectCounts) ProjectCard {
	return ProjectCard{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		ResponsibleID: project.ResponsibleID,
		Status:        project.Status,
		CreatedAt:     project.CreatedAt,
		IsResponsible: viewerID != 0 && project.ResponsibleID != nil && *project.ResponsibleID == viewerID,
		ProjectCounts: counts,
	}
}

func loadCollaborators(projectID uint) ([]CollaboratorView, error) {
	collaborators := []CollaboratorView{}

	err := db.DB.Model(&models.ProjectCollaborator{}).
		Select(`project_collaborators.user_id,
			users.name,
			COALESCE(AVG(ratings.stars), 0) AS average_stars,
			COUNT(ratings.id) AS ratings_count`).
		Joins("JOIN users ON users.id = project_collaborators.user_id").
		Joins(`LEFT JOIN ratings ON ratings.rated_user_id = project_collaborators.user_id
			AND ratings.project_id = project_collaborators.project_id
			AND ratings.deleted_at IS NULL`).
		Where("project_collaborators.project_id = ? AND project_collaborators.status = ?",
			projectID, types.CollaboratorActive).
		Group("project_collaborators.user_id, users.name").
		Order("average_stars DESC").
		Scan(&collaborators).Error

	return collaborators, err
}
