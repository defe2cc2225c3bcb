package models

import (
	"time"

	"gorm.io/gorm"
)

// At most one pending request per (user, project). The state machine checks
// before inserting; a partial unique index added in db.MigrateDatabase
// backstops the check against concurrent submits.
type CollaborationRequest struct {
	gorm.Model

	ProjectID     uint  `gorm:"not null;index"`
	UserID        uint  `gorm:"not null;index"`
	PublicationID *uint `gorm:"index"`
	Message       string
	Status        string `gorm:"not null;default:pending;index"` // "pending", "approved", "rejected"
	DecidedAt     *time.Time
	DecidedBy     *string // auth identity of the decider

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Publication *Publication `gorm:"foreignKey:PublicationID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
