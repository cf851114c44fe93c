package model

import (
	"time"

	"gorm.io/gorm"
)

// EvaluationNote is one per-criterion row authored by a commission member or
// the president. A persisted note always has a criterion; score and comment
// are each independently optional.
type EvaluationNote struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CandidatureID uint           `json:"candidature_id" gorm:"not null;index"`
	AuthorID      uint           `json:"author_id" gorm:"not null;index"`
	Criterion     string         `json:"criterion" gorm:"not null"`
	Score         *float64       `json:"score"`
	Comment       *string        `json:"comment"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
