package services

import (
	"encoding/json"
	"time"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"golang.org/x/sync/errgroup"
)

const FeedLimit = 60

type FeedFilter struct {
	ProjectID uint   // 0 means no project filter
	Kind      string // empty means no kind filter
}

// FeedItem is a publication denormalized with its parent project's name and
// responsible. A publication whose project is missing or not active still
// appears, with the project fields null.
type FeedItem struct {
	ID            uint      `json:"id"`
	ProjectID     *uint     `json:"project_id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Skills        []string  `json:"skills"`
	CreatedAt     time.Time `json:"created_at"`
	ProjectName   *string   `json:"project_name"`
	ResponsibleID *uint     `json:"responsible_id"`
	AuthorName    *string   `json:"author_name"`
}

// ProjectOption is a catalog entry for feed filtering.
type ProjectOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LoadFeed reads active publications and active projects concurrently and
// joins them in memory. Either read failing fails the whole load; partial
// results are never returned.
func LoadFeed(filter FeedFilter) ([]FeedItem, error) {
	var (
		publications []models.Publication
		projects     []models.Project
	)

	var g errgroup.Group

	g.Go(func() error {
		query := db.DB.Where("status = ?", types.PublicationActive).
			Order("created_at DESC").
			Limit(FeedLimit).
			Preload("Author")

		if filter.ProjectID != 0 {
			query = query.Where("project_id = ?", filter.ProjectID)
		}

		if filter.Kind != "" {
			query = query.Where("kind = ?", filter.Kind)
		}

		return query.Find(&publications).Error
	})

	g.Go(func() error {
		return db.DB.Where("status = ?", types.ProjectActive).Find(&projects).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	projectsByID := make(map[uint]models.Project, len(projects))
	for _, project := range projects {
		projectsByID[project.ID] = project
	}

	items := make([]FeedItem, 0, len(publications))

	for _, pub := range publications {
		item := FeedItem{
			ID:          pub.ID,
			ProjectID:   pub.ProjectID,
			Kind:        pub.Kind,
			Title:       pub.Title,
			Description: pub.Description,
			Skills:      decodeSkills(pub.Skills),
			CreatedAt:   pub.CreatedAt,
		}

		if pub.ProjectID != nil {
			if project, ok := projectsByID[*pub.ProjectID]; ok {
				item.ProjectName = &project.Name
				item.ResponsibleID = project.ResponsibleID
			}
		}

		if pub.Author != nil {
			item.AuthorName = &pub.Author.Name
		}

		items = append(items, item)
	}

	return items, nil
}

// LoadProjectOptions returns the active projects for the feed's project
// filter, alphabetically.
func LoadProjectOptions() ([]ProjectOption, error) {
	var projects []models.Project

	if err := db.DB.Select("id, name").
		Where("status = ?", types.ProjectActive).
		Order("name ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	options := make([]ProjectOption, 0, len(projects))
	for _, project := range projects {
		options = append(options, ProjectOption{ID: project.ID, Name: project.Name})
	}

	return options, nil
}

func decodeSkills(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return []string{}
	}

	return skills
}
