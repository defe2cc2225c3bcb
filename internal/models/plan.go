package models

import (
	"time"

	"gorm.io/gorm"
)

type Plan struct {
	gorm.Model

	Name   string  `gorm:"not null"`
	Price  float64 `gorm:"not null"`
	Active bool    `gorm:"default:true"`
}

type Subscription struct {
	gorm.Model

	UserID   uint   `gorm:"not null;index"`
	PlanID   uint   `gorm:"not null;index"`
	Status   string `gorm:"not null;default:pending"` // "active", "pending", "paused", "expired", "cancelled"
	StartsAt time.Time
	EndsAt   *time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Plan Plan `gorm:"foreignKey:PlanID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
