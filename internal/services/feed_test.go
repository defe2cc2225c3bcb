package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPublication(t *testing.T, projectID *uint, kind, status string, createdAt time.Time) models.Publication {
	t.Helper()

	pub := models.Publication{
		ProjectID: projectID,
		Kind:      kind,
		Status:    status,
		Title:     "t",
	}
	pub.CreatedAt = createdAt
	require.NoError(t, db.DB.Create(&pub).Error)

	return pub
}

func TestLoadFeedJoinsProjectFields(t *testing.T) {
	newTestDB(t)

	responsible := createUser(t, "auth-resp", "r@b.com")
	project := createProject(t, "Alpha", &responsible.ID, types.ProjectActive)

	createPublication(t, &project.ID, types.KindOffer, types.PublicationActive, time.Now())

	items, err := LoadFeed(FeedFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NotNil(t, items[0].ProjectName)
	assert.Equal(t, "Alpha", *items[0].ProjectName)
	require.NotNil(t, items[0].ResponsibleID)
	assert.Equal(t, responsible.ID, *items[0].ResponsibleID)
}

func TestLoadFeedMissingProjectStillShown(t *testing.T) {
	newTestDB(t)

	paused := createProject(t, "Paused", nil, types.ProjectPaused)

	createPublication(t, nil, types.KindAnnouncement, types.PublicationActive, time.Now())
	createPublication(t, &paused.ID, types.KindOffer, types.PublicationActive, time.Now())

	items, err := LoadFeed(FeedFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, item := range items {
		assert.Nil(t, item.ProjectName, "non-active or missing project leaves fields null")
		assert.Nil(t, item.ResponsibleID)
	}
}

func TestLoadFeedFilters(t *testing.T) {
	newTestDB(t)

	alpha := createProject(t, "Alpha", nil, types.ProjectActive)
	beta := createProject(t, "Beta", nil, types.ProjectActive)

	createPublication(t, &alpha.ID, types.KindOffer, types.PublicationActive, time.Now())
	createPublication(t, &alpha.ID, types.KindSearch, types.PublicationActive, time.Now())
	createPublication(t, &beta.ID, types.KindOffer, types.PublicationActive, time.Now())
	createPublication(t, &alpha.ID, types.KindOffer, types.PublicationClosed, time.Now())

	items, err := LoadFeed(FeedFilter{ProjectID: alpha.ID, Kind: types.KindOffer})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, types.KindOffer, items[0].Kind)
	require.NotNil(t, items[0].ProjectID)
	assert.Equal(t, alpha.ID, *items[0].ProjectID)
}

func TestLoadFeedExcludesInactivePublications(t *testing.T) {
	newTestDB(t)

	createPublication(t, nil, types.KindOffer, types.PublicationPaused, time.Now())
	createPublication(t, nil, types.KindOffer, types.PublicationDeleted, time.Now())

	items, err := LoadFeed(FeedFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadFeedNewestFirstCapped(t *testing.T) {
	newTestDB(t)

	base := time.Now().Add(-100 * time.Hour)

	for i := 0; i < FeedLimit+5; i++ {
		createPublication(t, nil, types.KindOffer, types.PublicationActive, base.Add(time.Duration(i)*time.Hour))
	}

	items, err := LoadFeed(FeedFilter{})
	require.NoError(t, err)
	require.Len(t, items, FeedLimit)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt),
			fmt.Sprintf("items must be newest first (index %d)", i))
	}
}

func TestLoadProjectOptionsAlphabetical(t *testing.T) {
	newTestDB(t)

	createProject(t, "Zeta", nil, types.ProjectActive)
	createProject(t, "Alpha", nil, types.ProjectActive)
	createProject(t, "Hidden", nil, types.ProjectArchived)

	options, err := LoadProjectOptions()
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, "Alpha", options[0].Name)
	assert.Equal(t, "Zeta", options[1].Name)
}
