package model

import "time"

// Setting is a single-row table holding global application parameters.
type Setting struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	AppName         string    `json:"app_name" gorm:"not null;default:'Avancement'"`
	ContactEmail    string    `json:"contact_email"`
	CandidatureOpen bool      `json:"candidature_open" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
