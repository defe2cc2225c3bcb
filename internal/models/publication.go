package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Publication struct {
	gorm.Model

	ProjectID   *uint  `gorm:"index"`
	UserID      *uint  `gorm:"index"`
	Kind        string `gorm:"not null"`                      // "offer", "search", "announcement"
	Status      string `gorm:"not null;default:active;index"` // "active", "paused", "closed", "deleted"
	Title       string
	Description string
	Skills      datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Author  *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
