package model

import (
	"time"

	"gorm.io/gorm"
)

type Commission struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	Specialite string           `json:"specialite" gorm:"not null;uniqueIndex"`
	Members    []CommissionUser `json:"members,omitempty" gorm:"foreignKey:CommissionID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`
}

type CommissionUser struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CommissionID uint           `json:"commission_id" gorm:"not null;index"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	User         User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsPresident  bool           `json:"is_president" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
