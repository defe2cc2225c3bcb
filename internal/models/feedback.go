package models

import "gorm.io/gorm"

type Feedback struct {
	gorm.Model

	Stars   int `gorm:"not null"`
	Comment string
}

// Rating is a star rating given to a collaborator within a project.
// Collaborator listings expose the average and count per rated user.
type Rating struct {
	gorm.Model

	ProjectID   uint `gorm:"not null;index"`
	RatedUserID uint `gorm:"not null;index"`
	RaterUserID uint `gorm:"not null;index"`
	Stars       int  `gorm:"not null"`

	// Relationships
	Project   Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	RatedUser User    `gorm:"foreignKey:RatedUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	RaterUser User    `gorm:"foreignKey:RaterUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
