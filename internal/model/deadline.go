package model

import (
	"time"

	"gorm.io/gorm"
)

type Deadline struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Stage           string         `json:"stage" gorm:"not null"`
	DueAt           time.Time      `json:"due_at" gorm:"not null"`
	ReminderEnabled bool           `json:"reminder_enabled" gorm:"not null;default:false"`
	CreatedBy       *uint          `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Deadline) IsExpired(now time.Time) bool {
	return now.After(d.DueAt)
}

func (d *Deadline) DaysRemaining(now time.Time) int {
	if d.IsExpired(now) {
		return 0
	}
	return int(d.DueAt.Sub(now).Hours() / 24)
}
