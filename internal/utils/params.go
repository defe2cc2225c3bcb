package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "project_id", "Project")
}

func GetRequestID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "request_id", "Request")
}

func GetPublicationID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "publication_id", "Publication")
}

func GetPlanID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "plan_id", "Plan")
}

func GetFeedbackID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "feedback_id", "Feedback")
}

func parseIDParam(ctx *gin.Context, param string, label string) (uint, error) {
	raw := ctx.Param(param)

	if raw == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return uint(id), nil
}
