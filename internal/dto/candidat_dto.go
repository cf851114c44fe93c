package dto

import (
	"time"

	"github.com/hzerradi/avancement-api/internal/wizard"
)

// --- Candidature status & submission ---

type StatusResponse struct {
	Exists      bool            `json:"exists"`
	Step        int             `json:"step"`
	Status      string          `json:"status"`
	Progress    *wizard.Summary `json:"progress,omitempty"`
	IsLocked    bool            `json:"is_locked"`
	SubmittedAt *time.Time      `json:"submitted_at"`
}

type CandidatureDTO struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	Status      string         `json:"status"`
	CurrentStep int            `json:"current_step"`
	SubmittedAt *time.Time     `json:"submitted_at"`
	LockedAt    *time.Time     `json:"locked_at"`
	Progress    wizard.Summary `json:"progress"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CandidatureResponse struct {
	Candidature CandidatureDTO `json:"candidature"`
	Progress    wizard.Summary `json:"progress"`
	Deadline    *DeadlineDTO   `json:"deadline"`
	IsLocked    bool           `json:"is_locked"`
	CanEdit     bool           `json:"can_edit"`
}

// SubmitRequest carries the two mandatory acknowledgements. binding:"required"
// rejects false, so both boxes must be affirmatively checked.
type SubmitRequest struct {
	ConfirmExactitude      bool `json:"confirm_exactitude" binding:"required"`
	ConfirmNonModification bool `json:"confirm_non_modification" binding:"required"`
}

type SubmitResponse struct {
	Message     string         `json:"message"`
	Candidature CandidatureDTO `json:"candidature"`
}

// --- Profile (step 1) ---

type AncienneteDTO struct {
	Years       int `json:"years"`
	Months      int `json:"months"`
	TotalMonths int `json:"total_months"`
}

type ProfileDTO struct {
	ID                 uint           `json:"id"`
	CandidatureID      uint           `json:"candidature_id"`
	Nom                string         `json:"nom"`
	Prenom             string         `json:"prenom"`
	DateNaissance      string         `json:"date_naissance"`
	Etablissement      string         `json:"etablissement"`
	Ville              string         `json:"ville"`
	Departement        string         `json:"departement"`
	GradeActuel        string         `json:"grade_actuel"`
	DateRecrutementES  string         `json:"date_recrutement_es"`
	DateRecrutementFP  *string        `json:"date_recrutement_fp"`
	NumeroSom          *string        `json:"numero_som"`
	Telephone          string         `json:"telephone"`
	Specialite         string         `json:"specialite"`
	ADemandeAvancement bool           `json:"a_demande_avancement"`
	ADossierEnCours    bool           `json:"a_dossier_en_cours"`
	IsComplete         bool           `json:"is_complete"`
	Anciennete         *AncienneteDTO `json:"anciennete,omitempty"`
}

type ProfileSaveRequest struct {
	Nom                string  `json:"nom" binding:"required"`
	Prenom             string  `json:"prenom" binding:"required"`
	DateNaissance      string  `json:"date_naissance" binding:"required"`
	Etablissement      string  `json:"etablissement" binding:"required"`
	Ville              string  `json:"ville" binding:"required"`
	Departement        string  `json:"departement" binding:"required"`
	GradeActuel        string  `json:"grade_actuel" binding:"required"`
	DateRecrutementES  string  `json:"date_recrutement_es" binding:"required"`
	DateRecrutementFP  *string `json:"date_recrutement_fp"`
	NumeroSom          *string `json:"numero_som"`
	Telephone          string  `json:"telephone" binding:"required"`
	Specialite         string  `json:"specialite" binding:"required"`
	ADemandeAvancement bool    `json:"a_demande_avancement"`
	ADossierEnCours    bool    `json:"a_dossier_en_cours"`
}

// ProfileAutosaveRequest tolerates any subset of fields; omitted fields are
// never validated. Pointers distinguish "absent" from "cleared".
type ProfileAutosaveRequest struct {
	Nom                *string `json:"nom"`
	Prenom             *string `json:"prenom"`
	DateNaissance      *string `json:"date_naissance"`
	Etablissement      *string `json:"etablissement"`
	Ville              *string `json:"ville"`
	Departement        *string `json:"departement"`
	GradeActuel        *string `json:"grade_actuel"`
	DateRecrutementES  *string `json:"date_recrutement_es"`
	DateRecrutementFP  *string `json:"date_recrutement_fp"`
	NumeroSom          *string `json:"numero_som"`
	Telephone          *string `json:"telephone"`
	Specialite         *string `json:"specialite"`
	ADemandeAvancement *bool   `json:"a_demande_avancement"`
	ADossierEnCours    *bool   `json:"a_dossier_en_cours"`
}

type ProfileResponse struct {
	Message string     `json:"message"`
	Profile ProfileDTO `json:"profile"`
}

// --- Enseignements (step 2) ---

type EnseignementItem struct {
	AnneeUniversitaire string  `json:"annee_universitaire" binding:"required"`
	Intitule           string  `json:"intitule" binding:"required"`
	TypeEnseignement   string  `json:"type_enseignement" binding:"required,oneof=CM TD TP"`
	TypeModule         string  `json:"type_module" binding:"required,oneof=Module 'Element de module'"`
	Niveau             string  `json:"niveau" binding:"required"`
	VolumeHoraire      float64 `json:"volume_horaire" binding:"required,gt=0"`
}

type EnseignementBulkRequest struct {
	Enseignements []EnseignementItem `json:"enseignements" binding:"required,dive"`
}

type EnseignementDTO struct {
	ID                 uint    `json:"id"`
	CandidatureID      uint    `json:"candidature_id"`
	AnneeUniversitaire string  `json:"annee_universitaire"`
	Intitule           string  `json:"intitule"`
	TypeEnseignement   string  `json:"type_enseignement"`
	TypeModule         string  `json:"type_module"`
	Niveau             string  `json:"niveau"`
	VolumeHoraire      float64 `json:"volume_horaire"`
	EquivalentTP       float64 `json:"equivalent_tp"`
}

type EnseignementTotals struct {
	VolumeHoraire float64 `json:"volume_horaire"`
	EquivalentTP  float64 `json:"equivalent_tp"`
	Count         int     `json:"count"`
}

type EnseignementYearGroup struct {
	Items         []EnseignementDTO `json:"items"`
	VolumeHoraire float64           `json:"volume_horaire"`
	EquivalentTP  float64           `json:"equivalent_tp"`
}

type EnseignementListResponse struct {
	Enseignements []EnseignementDTO                `json:"enseignements"`
	Totals        EnseignementTotals               `json:"totals"`
	ByYear        map[string]EnseignementYearGroup `json:"by_year"`
}

type EnseignementBulkResponse struct {
	Message       string            `json:"message"`
	Enseignements []EnseignementDTO `json:"enseignements"`
}

// --- PFE (step 3) ---

type PfeItem struct {
	AnneeUniversitaire string  `json:"annee_universitaire" binding:"required"`
	Intitule           string  `json:"intitule" binding:"required"`
	Niveau             string  `json:"niveau" binding:"required,oneof=DUT Licence Master Ingénieur Doctorat Autre"`
	VolumeHoraire      float64 `json:"volume_horaire" binding:"required,gt=0"`
}

type PfeBulkRequest struct {
	Pfes []PfeItem `json:"pfes" binding:"required,dive"`
}

type PfeDTO struct {
	ID                 uint    `json:"id"`
	CandidatureID      uint    `json:"candidature_id"`
	AnneeUniversitaire string  `json:"annee_universitaire"`
	Intitule           string  `json:"intitule"`
	Niveau             string  `json:"niveau"`
	VolumeHoraire      float64 `json:"volume_horaire"`
}

type PfeTotals struct {
	VolumeHoraire float64 `json:"volume_horaire"`
	Count         int     `json:"count"`
}

type PfeYearGroup struct {
	Items         []PfeDTO `json:"items"`
	VolumeHoraire float64  `json:"volume_horaire"`
}

type PfeNiveauGroup struct {
	Count         int     `json:"count"`
	VolumeHoraire float64 `json:"volume_horaire"`
}

type PfeListResponse struct {
	Pfes     []PfeDTO                  `json:"pfes"`
	Totals   PfeTotals                 `json:"totals"`
	ByYear   map[string]PfeYearGroup   `json:"by_year"`
	ByNiveau map[string]PfeNiveauGroup `json:"by_niveau"`
}

type PfeBulkResponse struct {
	Message string   `json:"message"`
	Pfes    []PfeDTO `json:"pfes"`
}

// --- Activités (steps 4-5) ---

type ActiviteItem struct {
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory" binding:"required"`
	Count       int    `json:"count" binding:"required,min=1"`
}

type ActiviteSaveRequest struct {
	Type        string `json:"type" binding:"required,oneof=enseignement recherche"`
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory" binding:"required"`
	Count       int    `json:"count" binding:"required,min=1"`
}

type ActiviteBulkRequest struct {
	Type      string         `json:"type" binding:"required,oneof=enseignement recherche"`
	Activites []ActiviteItem `json:"activites" binding:"required,dive"`
}

type ActiviteDTO struct {
	ID            uint         `json:"id"`
	CandidatureID uint         `json:"candidature_id"`
	Type          string       `json:"type"`
	Category      string       `json:"category"`
	Subcategory   string       `json:"subcategory"`
	Count         int          `json:"count"`
	Document      *DocumentDTO `json:"document,omitempty"`
}

type ActiviteCategoryGroup struct {
	Items           []ActiviteDTO `json:"items"`
	TotalCount      int           `json:"total_count"`
	HasAllDocuments bool          `json:"has_all_documents"`
}

type ActiviteListResponse struct {
	Activites  []ActiviteDTO                    `json:"activites"`
	ByCategory map[string]ActiviteCategoryGroup `json:"by_category"`
	Categories map[string][]string              `json:"categories"`
}

type ActiviteBulkResponse struct {
	Message   string        `json:"message"`
	Activites []ActiviteDTO `json:"activites"`
}

type ActiviteResponse struct {
	Message  string      `json:"message"`
	Activite ActiviteDTO `json:"activite"`
}

type CategoriesResponse struct {
	Categories map[string][]string `json:"categories"`
}

// --- Documents ---

type DocumentDTO struct {
	ID            uint      `json:"id"`
	CandidatureID uint      `json:"candidature_id"`
	ActiviteID    *uint     `json:"activite_id"`
	Type          string    `json:"type"`
	OriginalName  string    `json:"original_name"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Message  string      `json:"message"`
	Document DocumentDTO `json:"document"`
}

type DocumentListResponse struct {
	Documents []DocumentDTO `json:"documents"`
}

// --- Deadlines ---

type DeadlineDTO struct {
	ID              uint      `json:"id"`
	Stage           string    `json:"stage"`
	DueAt           time.Time `json:"due_at"`
	DueAtFormatted  string    `json:"due_at_formatted"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	DaysRemaining   int       `json:"days_remaining"`
	IsExpired       bool      `json:"is_expired"`
}

type DeadlineListResponse struct {
	Data []DeadlineDTO `json:"data"`
}
