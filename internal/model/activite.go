package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ActiviteEnseignement = "enseignement"
	ActiviteRecherche    = "recherche"
)

type Activite struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CandidatureID uint           `json:"candidature_id" gorm:"not null;index"`
	Type          string         `json:"type" gorm:"not null;index"` // enseignement, recherche
	Category      string         `json:"category" gorm:"not null"`
	Subcategory   string         `json:"subcategory" gorm:"not null"`
	Count         int            `json:"count" gorm:"not null"`
	Document      *Document      `json:"document,omitempty" gorm:"foreignKey:ActiviteID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
