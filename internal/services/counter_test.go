package services

import (
	"testing"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountProject(t *testing.T) {
	newTestDB(t)

	user := createUser(t, "auth-1", "a@b.com")
	project := createProject(t, "Alpha", &user.ID, types.ProjectActive)

	createPublication(t, &project.ID, types.KindOffer, types.PublicationActive, time.Now())
	createPublication(t, &project.ID, types.KindSearch, types.PublicationActive, time.Now())
	createPublication(t, &project.ID, types.KindOffer, types.PublicationClosed, time.Now())

	require.NoError(t, db.DB.Create(&models.ProjectCollaborator{
		UserID:    user.ID,
		ProjectID: project.ID,
		Status:    types.CollaboratorActive,
	}).Error)

	other := createUser(t, "auth-2", "b@b.com")
	require.NoError(t, db.DB.Create(&models.CollaborationRequest{
		UserID:    other.ID,
		ProjectID: project.ID,
		Status:    types.RequestPending,
	}).Error)

	counts := CountProject(project.ID, true)

	assert.EqualValues(t, 2, counts.ActivePublications)
	assert.EqualValues(t, 1, counts.ActiveCollaborators)
	require.NotNil(t, counts.PendingRequests)
	assert.EqualValues(t, 1, *counts.PendingRequests)
}

func TestCountProjectHidesPendingFromNonResponsible(t *testing.T) {
	newTestDB(t)

	user := createUser(t, "auth-1", "a@b.com")
	project := createProject(t, "Alpha", &user.ID, types.ProjectActive)

	require.NoError(t, db.DB.Create(&models.CollaborationRequest{
		UserID:    user.ID,
		ProjectID: project.ID,
		Status:    types.RequestPending,
	}).Error)

	counts := CountProject(project.ID, false)

	assert.Nil(t, counts.PendingRequests, "omitted, not zero, when unauthorized")
}

func TestCountProjectZeroPendingIsZeroNotNil(t *testing.T) {
	newTestDB(t)

	user := createUser(t, "auth-1", "a@b.com")
	project := createProject(t, "Alpha", &user.ID, types.ProjectActive)

	counts := CountProject(project.ID, true)

	require.NotNil(t, counts.PendingRequests)
	assert.EqualValues(t, 0, *counts.PendingRequests)
}

func TestCountProjectDegradesToZeroOnError(t *testing.T) {
	newTestDB(t)

	user := createUser(t, "auth-1", "a@b.com")
	project := createProject(t, "Alpha", &user.ID, types.ProjectActive)

	createPublication(t, &project.ID, types.KindOffer, types.PublicationActive, time.Now())

	require.NoError(t, db.DB.Create(&models.CollaborationRequest{
		UserID:    user.ID,
		ProjectID: project.ID,
		Status:    types.RequestPending,
	}).Error)

	breakTestDB(t)

	// Failed counts stay at zero; the authorized pending count is still
	// a zero value, not a missing one.
	counts := CountProject(project.ID, true)

	assert.EqualValues(t, 0, counts.ActivePublications)
	assert.EqualValues(t, 0, counts.ActiveCollaborators)
	require.NotNil(t, counts.PendingRequests)
	assert.EqualValues(t, 0, *counts.PendingRequests)
}

func TestCountProjectsAcross(t *testing.T) {
	newTestDB(t)

	user := createUser(t, "auth-1", "a@b.com")
	mine := createProject(t, "Mine", &user.ID, types.ProjectActive)
	theirs := createProject(t, "Theirs", nil, types.ProjectActive)

	createPublication(t, &theirs.ID, types.KindOffer, types.PublicationActive, time.Now())

	results := CountProjects([]uint{mine.ID, theirs.ID}, func(projectID uint) bool {
		return projectID == mine.ID
	})

	require.Len(t, results, 2)
	assert.NotNil(t, results[mine.ID].PendingRequests)
	assert.Nil(t, results[theirs.ID].PendingRequests)
	assert.EqualValues(t, 1, results[theirs.ID].ActivePublications)
}
