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

type PlanRequest struct {
	Name   string   `json:"name" binding:"required"`
	Price  *float64 `json:"price" binding:"required,gte=0"`
	Active *bool    `json:"active"`
}

func ListPlans(ctx *gin.Context) {
	var plans []models.Plan

	if err := db.DB.Order("price ASC").Find(&plans).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plans"})
		return
	}

	ctx.JSON(http.StatusOK, plans)
}

func CreatePlan(ctx *gin.Context) {
	var body PlanRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	plan := models.Plan{
		Name:   body.Name,
		Price:  *body.Price,
		Active: body.Active == nil || *body.Active,
	}

	if err := db.DB.Create(&plan).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}

	ctx.JSON(http.StatusCreated, plan)
}

func UpdatePlan(ctx *gin.Context) {
	planID, err := utils.GetPlanID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body PlanRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var plan models.Plan

	if err := db.DB.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plan"})
		}
		return
	}

	plan.Name = body.Name
	plan.Price = *body.Price

	if body.Active != nil {
		plan.Active = *body.Active
	}

	if err := db.DB.Save(&plan).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	ctx.JSON(http.StatusOK, plan)
}

func DeletePlan(ctx *gin.Context) {
	planID, err := utils.GetPlanID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.DB.Delete(&models.Plan{}, planID)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMySubscription returns the caller's most recent subscription with its
// plan. When no subscription exists, it falls back to the plan referenced by
// the user row, if any.
func GetMySubscription(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subscription models.Subscription

	err = db.DB.Preload("Plan").
		Where("user_id = ?", userID).
		Order("starts_at DESC").
		First(&subscription).Error

	if err == nil {
		ctx.JSON(http.StatusOK, gin.H{"subscription": subscription, "plan": subscription.Plan})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to fetch subscription for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscription"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if user.PlanID == nil {
		ctx.JSON(http.StatusOK, gin.H{"subscription": nil, "plan": nil})
		return
	}

	var plan models.Plan

	if err := db.DB.First(&plan, *user.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"subscription": nil, "plan": nil})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plan"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"subscription": nil, "plan": plan})
}
