package model

import (
	"time"

	"gorm.io/gorm"
)

// Candidature status values. Transitions are monotonic:
// draft -> submitted -> {blocked, approved, rejected}. An administrative
// unblock is the only way back from blocked to draft.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusBlocked   = "blocked"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

type Candidature struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
	Status        string         `json:"status" gorm:"not null;default:'draft';index"`
	CurrentStep   int            `json:"current_step" gorm:"not null;default:1"`
	SubmittedAt   *time.Time     `json:"submitted_at"`
	LockedAt      *time.Time     `json:"locked_at"`
	Profile       *Profile       `json:"profile,omitempty" gorm:"foreignKey:CandidatureID"`
	Enseignements []Enseignement `json:"enseignements,omitempty" gorm:"foreignKey:CandidatureID;constraint:OnDelete:CASCADE"`
	Pfes          []Pfe          `json:"pfes,omitempty" gorm:"foreignKey:CandidatureID;constraint:OnDelete:CASCADE"`
	Activites     []Activite     `json:"activites,omitempty" gorm:"foreignKey:CandidatureID;constraint:OnDelete:CASCADE"`
	Documents     []Document     `json:"documents,omitempty" gorm:"foreignKey:CandidatureID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsLocked reports whether candidate-facing mutation is disallowed.
func (c *Candidature) IsLocked() bool {
	return c.LockedAt != nil || c.Status != StatusDraft
}
