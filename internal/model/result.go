package model

import (
	"time"

	"gorm.io/gorm"
)

// Result holds the president's audition and final scores together with the
// procès-verbal text. Once ValidatedAt is set the record is immutable.
type Result struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CandidatureID uint           `json:"candidature_id" gorm:"not null;uniqueIndex"`
	AuditionScore *float64       `json:"audition_score"`
	FinalScore    *float64       `json:"final_score"`
	PvText        *string        `json:"pv_text" gorm:"type:text"`
	ValidatedAt   *time.Time     `json:"validated_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
