package handlers

import (
	"net/http"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateFeedbackRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func ListFeedback(ctx *gin.Context) {
	var feedbacks []models.Feedback

	if err := db.DB.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	ctx.JSON(http.StatusOK, feedbacks)
}

func CreateFeedback(ctx *gin.Context) {
	var body FeedbackRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	feedback := models.Feedback{
		Stars:   body.Stars,
		Comment: body.Comment,
	}

	if err := db.DB.Create(&feedback).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	ctx.JSON(http.StatusCreated, feedback)
}

func UpdateFeedback(ctx *gin.Context) {
	feedbackID, err := utils.GetFeedbackID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateFeedbackRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := db.DB.Model(&models.Feedback{}).
		Where("id = ?", feedbackID).
		Update("comment", body.Comment)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Feedback updated"})
}

func DeleteFeedback(ctx *gin.Context) {
	feedbackID, err := utils.GetFeedbackID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.DB.Delete(&models.Feedback{}, feedbackID)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
