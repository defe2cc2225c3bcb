package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	AuthUserID   string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	LastName     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Phone        *string
	Country      *string
	Timezone     *string
	PlanID       *uint

	// Relationships
	ResponsibleProjects []Project              `gorm:"foreignKey:ResponsibleID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Publications        []Publication          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Collaborations      []ProjectCollaborator  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Requests            []CollaborationRequest `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Subscriptions       []Subscription         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
