package models

import "gorm.io/gorm"

type Profile struct {
	gorm.Model

	UserID           uint   `gorm:"not null;uniqueIndex"`
	Bio              string
	Industry         string
	WhatsappURL      string
	LinkedinURL      string
	Visibility       string `gorm:"not null;default:public"` // "public", "private"
	MonthsExperience *int
	Age              *int

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
