package model

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	CandidatureID       uint           `json:"candidature_id" gorm:"not null;uniqueIndex"`
	Nom                 string         `json:"nom"`
	Prenom              string         `json:"prenom"`
	DateNaissance       string         `json:"date_naissance"`
	Etablissement       string         `json:"etablissement"`
	Ville               string         `json:"ville"`
	Departement         string         `json:"departement"`
	GradeActuel         string         `json:"grade_actuel"`
	DateRecrutementES   string         `json:"date_recrutement_es"`
	DateRecrutementFP   *string        `json:"date_recrutement_fp"`
	NumeroSom           *string        `json:"numero_som"`
	Telephone           string         `json:"telephone"`
	Specialite          string         `json:"specialite" gorm:"index"`
	ADemandeAvancement  bool           `json:"a_demande_avancement"`
	ADossierEnCours     bool           `json:"a_dossier_en_cours"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsComplete reports whether every mandatory profile field has been filled.
// DateRecrutementFP is the only optional date.
func (p *Profile) IsComplete() bool {
	required := []string{
		p.Nom, p.Prenom, p.DateNaissance, p.Etablissement, p.Ville,
		p.Departement, p.GradeActuel, p.DateRecrutementES, p.Telephone, p.Specialite,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}
