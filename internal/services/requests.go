package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitRequest creates a pending collaboration request after checking every
// precondition: the caller is resolved, the project exists and is active, the
// caller is not already an active collaborator and has no pending request for
// it. Any violation returns ErrInvalidRequestState and writes nothing.
func SubmitRequest(userID uint, projectID uint, publicationID *uint, message string) (*models.CollaborationRequest, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	if projectID == 0 {
		return nil, fmt.Errorf("%w: publication has no associated project", ErrInvalidRequestState)
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND status = ?", projectID, types.ProjectActive).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", ErrInvalidRequestState)
		}
		return nil, err
	}

	var memberCount int64

	if err := db.DB.Model(&models.ProjectCollaborator{}).
		Where("user_id = ? AND project_id = ? AND status = ?", userID, projectID, types.CollaboratorActive).
		Count(&memberCount).Error; err != nil {
		return nil, err
	}

	if memberCount > 0 {
		return nil, fmt.Errorf("%w: already a collaborator of this project", ErrInvalidRequestState)
	}

	var pendingCount int64

	if err := db.DB.Model(&models.CollaborationRequest{}).
		Where("user_id = ? AND project_id = ? AND status = ?", userID, projectID, types.RequestPending).
		Count(&pendingCount).Error; err != nil {
		return nil, err
	}

	if pendingCount > 0 {
		return nil, fmt.Errorf("%w: a request is already pending", ErrInvalidRequestState)
	}

	request := models.CollaborationRequest{
		ProjectID:     projectID,
		UserID:        userID,
		PublicationID: publicationID,
		Message:       message,
		Status:        types.RequestPending,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// DecideRequest moves a pending request to approved or rejected. Only the
// responsible party of the request's project may decide, identified by their
// auth identity. Approving also creates the active collaborator row in the
// same transaction. Decided requests are terminal: a second decision fails
// with the state unchanged.
func DecideRequest(requestID uint, outcome string, deciderAuthID string) (*models.CollaborationRequest, error) {
	if deciderAuthID == "" {
		return nil, ErrNotAuthenticated
	}

	if outcome != types.RequestApproved && outcome != types.RequestRejected {
		return nil, fmt.Errorf("%w: outcome must be approved or rejected", ErrInvalidRequestState)
	}

	var request models.CollaborationRequest

	if err := db.DB.Preload("Project").First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request not found", ErrInvalidRequestState)
		}
		return nil, err
	}

	if !isResponsible(request.Project, deciderAuthID) {
		return nil, ErrNotResponsible
	}

	if request.Status != types.RequestPending {
		return nil, fmt.Errorf("%w: request already %s", ErrInvalidRequestState, request.Status)
	}

	now := time.Now()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Guard the terminal transition against a concurrent decision.
		result := tx.Model(&models.CollaborationRequest{}).
			Where("id = ? AND status = ?", requestID, types.RequestPending).
			Updates(map[string]interface{}{
				"status":     outcome,
				"decided_at": now,
				"decided_by": deciderAuthID,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: request already decided", ErrInvalidRequestState)
		}

		if outcome == types.RequestApproved {
			collaborator := models.ProjectCollaborator{
				UserID:    request.UserID,
				ProjectID: request.ProjectID,
				Status:    types.CollaboratorActive,
			}

			// The user may already hold an inactive or soft-deleted
			// collaborator row for this project; revive it instead of
			// tripping the unique index.
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"status":     types.CollaboratorActive,
					"deleted_at": nil,
				}),
			}).Create(&collaborator).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	request.Status = outcome
	request.DecidedAt = &now
	request.DecidedBy = &deciderAuthID

	return &request, nil
}

func isResponsible(project models.Project, authUserID string) bool {
	if project.ResponsibleID == nil {
		return false
	}

	var responsible models.User

	if err := db.DB.Select("auth_user_id").First(&responsible, *project.ResponsibleID).Error; err != nil {
		return false
	}

	return responsible.AuthUserID == authUserID
}
