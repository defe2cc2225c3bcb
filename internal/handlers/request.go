package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/services"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/francescamaronna/appcolaboraciones/internal/utils"
	"github.com/gin-gonic/gin"
)

type SubmitRequestBody struct {
	ProjectID     uint   `json:"project_id" binding:"required"`
	PublicationID *uint  `json:"publication_id"`
	Message       string `json:"message"`
}

type DecisionBody struct {
	Outcome string `json:"outcome" binding:"required,oneof=approved rejected"`
}

type RequestSummary struct {
	ID            uint       `json:"id"`
	ProjectID     uint       `json:"project_id"`
	ProjectName   string     `json:"project_name"`
	UserID        uint       `json:"user_id"`
	RequesterName string     `json:"requester_name,omitempty"`
	PublicationID *uint      `json:"publication_id"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	DecidedAt     *time.Time `json:"decided_at"`
}

// SubmitRequest creates a pending collaboration request. The response carries
// the caller's refreshed pending set so the client replaces its local state
// instead of patching it optimistically.
func SubmitRequest(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body SubmitRequestBody

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	request, err := services.SubmitRequest(currentUser.ID, body.ProjectID, body.PublicationID, body.Message)

	if err != nil {
		respondRequestError(ctx, err, "Failed to submit request")
		return
	}

	var project models.Project

	if err := db.DB.First(&project, request.ProjectID).Error; err == nil {
		services.NotifyRequestEvent("request_created", project, *request)
	}

	BroadcastRefresh(strconv.FormatUint(uint64(request.ProjectID), 10))

	index := services.BuildMembershipIndex(currentUser.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":             "Request submitted",
		"request_id":          request.ID,
		"pending_project_ids": index.PendingIDs(),
	})
}

// DecideRequest approves or rejects a pending request. Only the responsible
// party of the request's project may decide; the authoritative check lives in
// the service, keyed by the caller's auth identity.
func DecideRequest(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requestID, err := utils.GetRequestID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body DecisionBody

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	request, err := services.DecideRequest(requestID, body.Outcome, currentUser.AuthUserID)

	if err != nil {
		respondRequestError(ctx, err, "Failed to decide request")
		return
	}

	services.NotifyRequestEvent("request_decided", request.Project, *request)
	BroadcastRefresh(strconv.FormatUint(uint64(request.ProjectID), 10))

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Request " + request.Status,
		"request_id": request.ID,
		"status":     request.Status,
		"decided_at": request.DecidedAt,
	})
}

// ListProjectRequests returns the pending requests of a project, oldest
// first, with the requester's name. Responsible party only.
func ListProjectRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := findResponsibleProject(ctx, userID)

	if !ok {
		return
	}

	var requests []models.CollaborationRequest

	if err := db.DB.Preload("User").
		Where("project_id = ? AND status = ?", project.ID, types.RequestPending).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		log.Printf("Failed to list requests for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	summaries := make([]RequestSummary, 0, len(requests))

	for _, request := range requests {
		summaries = append(summaries, RequestSummary{
			ID:            request.ID,
			ProjectID:     request.ProjectID,
			ProjectName:   project.Name,
			UserID:        request.UserID,
			RequesterName: request.User.Name,
			PublicationID: request.PublicationID,
			Status:        request.Status,
			CreatedAt:     request.CreatedAt,
			DecidedAt:     request.DecidedAt,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

// ListMyRequests returns the caller's own request history, newest first.
func ListMyRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var requests []models.CollaborationRequest

	if err := db.DB.Preload("Project").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		log.Printf("Failed to list requests for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	summaries := make([]RequestSummary, 0, len(requests))

	for _, request := range requests {
		summaries = append(summaries, RequestSummary{
			ID:            request.ID,
			ProjectID:     request.ProjectID,
			ProjectName:   request.Project.Name,
			UserID:        request.UserID,
			PublicationID: request.PublicationID,
			Status:        request.Status,
			CreatedAt:     request.CreatedAt,
			DecidedAt:     request.DecidedAt,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

func respondRequestError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, services.ErrNotResponsible):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project responsible can decide"})
	case errors.Is(err, services.ErrInvalidRequestState):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", fallback, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
