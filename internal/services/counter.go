package services

import (
	"log"
	"sync"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
)

// ProjectCounts carries the per-project aggregates for catalog cards.
// PendingRequests is nil unless the viewer is the project's responsible:
// "not authorized to see this" is distinct from zero.
type ProjectCounts struct {
	ActivePublications  int64  `json:"active_publications"`
	ActiveCollaborators int64  `json:"active_collaborators"`
	PendingRequests     *int64 `json:"pending_requests,omitempty"`
}

// CountProject issues the three count queries concurrently. A failed count
// logs and stays at zero; one failure does not block the others.
func CountProject(projectID uint, viewerIsResponsible bool) ProjectCounts {
	var counts ProjectCounts

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		if err := db.DB.Model(&models.Publication{}).
			Where("project_id = ? AND status = ?", projectID, types.PublicationActive).
			Count(&counts.ActivePublications).Error; err != nil {
			log.Printf("Failed to count publications for project %d: %v", projectID, err)
		}
	}()

	go func() {
		defer wg.Done()

		if err := db.DB.Model(&models.ProjectCollaborator{}).
			Where("project_id = ? AND status = ?", projectID, types.CollaboratorActive).
			Count(&counts.ActiveCollaborators).Error; err != nil {
			log.Printf("Failed to count collaborators for project %d: %v", projectID, err)
		}
	}()

	if viewerIsResponsible {
		wg.Add(1)

		go func() {
			defer wg.Done()

			var pending int64

			if err := db.DB.Model(&models.CollaborationRequest{}).
				Where("project_id = ? AND status = ?", projectID, types.RequestPending).
				Count(&pending).Error; err != nil {
				log.Printf("Failed to count pending requests for project %d: %v", projectID, err)
			}

			counts.PendingRequests = &pending
		}()
	}

	wg.Wait()
	return counts
}

// CountProjects runs the counter across projects concurrently. The result
// maps project ID to its counts; responsibleFor reports whether the viewer
// is the responsible of a given project.
func CountProjects(projectIDs []uint, responsibleFor func(projectID uint) bool) map[uint]ProjectCounts {
	results := make(map[uint]ProjectCounts, len(projectIDs))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, projectID := range projectIDs {
		wg.Add(1)

		go func(id uint) {
			defer wg.Done()

			counts := CountProject(id, responsibleFor(id))

			mu.Lock()
			results[id] = counts
			mu.Unlock()
		}(projectID)
	}

	wg.Wait()
	return results
}
