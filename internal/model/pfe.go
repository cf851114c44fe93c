package model

import (
	"time"

	"gorm.io/gorm"
)

type Pfe struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CandidatureID      uint           `json:"candidature_id" gorm:"not null;index"`
	AnneeUniversitaire string         `json:"annee_universitaire" gorm:"not null"`
	Intitule           string         `json:"intitule" gorm:"not null"`
	Niveau             string         `json:"niveau" gorm:"not null"` // DUT, Licence, Master, Ingénieur, Doctorat, Autre
	VolumeHoraire      float64        `json:"volume_horaire" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
