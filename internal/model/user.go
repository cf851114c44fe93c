package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values mirror the five access levels of the platform.
const (
	RoleCandidat   = "candidat"
	RoleAdmin      = "admin"
	RoleCommission = "commission"
	RolePresident  = "president"
	RoleSysteme    = "systeme"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'candidat';index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
