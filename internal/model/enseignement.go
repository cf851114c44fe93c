package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TypeCM = "CM"
	TypeTD = "TD"
	TypeTP = "TP"
)

type Enseignement struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CandidatureID      uint           `json:"candidature_id" gorm:"not null;index"`
	AnneeUniversitaire string         `json:"annee_universitaire" gorm:"not null"`
	Intitule           string         `json:"intitule" gorm:"not null"`
	TypeEnseignement   string         `json:"type_enseignement" gorm:"not null"` // CM, TD, TP
	TypeModule         string         `json:"type_module" gorm:"not null"`       // Module, Element de module
	Niveau             string         `json:"niveau" gorm:"not null"`
	VolumeHoraire      float64        `json:"volume_horaire" gorm:"not null"`
	EquivalentTP       float64        `json:"equivalent_tp" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
