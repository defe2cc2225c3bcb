package services

import (
	"log"
	"sync"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
)

// MembershipIndex holds the caller's relation to every project: Approved for
// an active collaboration, Pending for an open request. A project absent from
// both means no association. The sets are disjoint because a member cannot
// hold a pending request for the same project.
type MembershipIndex struct {
	Approved map[uint]bool
	Pending  map[uint]bool
}

// BuildMembershipIndex loads both sets with two concurrent reads. A failed
// read logs and leaves that set empty rather than failing the page; userID 0
// (anonymous visitor) yields empty sets without touching the database.
func BuildMembershipIndex(userID uint) MembershipIndex {
	index := MembershipIndex{
		Approved: make(map[uint]bool),
		Pending:  make(map[uint]bool),
	}

	if userID == 0 {
		return index
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		var rows []models.ProjectCollaborator

		if err := db.DB.Select("project_id").
			Where("user_id = ? AND status = ?", userID, types.CollaboratorActive).
			Find(&rows).Error; err != nil {
			log.Printf("Failed to load approved projects for user %d: %v", userID, err)
			return
		}

		for _, row := range rows {
			index.Approved[row.ProjectID] = true
		}
	}()

	go func() {
		defer wg.Done()

		var rows []models.CollaborationRequest

		if err := db.DB.Select("project_id").
			Where("user_id = ? AND status = ?", userID, types.RequestPending).
			Find(&rows).Error; err != nil {
			log.Printf("Failed to load pending requests for user %d: %v", userID, err)
			return
		}

		for _, row := range rows {
			index.Pending[row.ProjectID] = true
		}
	}()

	wg.Wait()
	return index
}

func (m MembershipIndex) ApprovedIDs() []uint {
	return setToSlice(m.Approved)
}

func (m MembershipIndex) PendingIDs() []uint {
	return setToSlice(m.Pending)
}

func setToSlice(set map[uint]bool) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
