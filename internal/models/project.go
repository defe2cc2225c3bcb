package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name          string `gorm:"not null"`
	Description   string
	ResponsibleID *uint  `gorm:"index"`
	Status        string `gorm:"not null;default:active;index"` // "active", "paused", "archived"
	WebhookURL    string

	// Relationships
	Responsible   *User                  `gorm:"foreignKey:ResponsibleID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Publications  []Publication          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Collaborators []ProjectCollaborator  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Requests      []CollaborationRequest `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
