package model

import (
	"time"

	"gorm.io/gorm"
)

// Document type values for general (non-activity) uploads.
const (
	DocProfilePDF       = "profile_pdf"
	DocEnseignementsPDF = "enseignements_pdf"
	DocPfePDF           = "pfe_pdf"
	DocSigned           = "signed_document"
	DocActivite         = "activite"
)

type Document struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CandidatureID uint           `json:"candidature_id" gorm:"not null;index"`
	ActiviteID    *uint          `json:"activite_id" gorm:"index"`
	Activite      *Activite      `json:"activite,omitempty" gorm:"foreignKey:ActiviteID"`
	Type          string         `json:"type" gorm:"not null"`
	OriginalName  string         `json:"original_name" gorm:"not null"`
	StoredName    string         `json:"-" gorm:"not null"`
	MimeType      string         `json:"mime_type" gorm:"not null"`
	Size          int64          `json:"size" gorm:"not null"`
	IsVerified    bool           `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
