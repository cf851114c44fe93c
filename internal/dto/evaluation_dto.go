package dto

import "time"

// --- Role-scoped dossier listings (commission / président / admin) ---

type DossierCandidate struct {
	ID    *uint   `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role,omitempty"`
}

type DossierProfile struct {
	Specialite    *string `json:"specialite"`
	Etablissement *string `json:"etablissement"`
	Nom           *string `json:"nom,omitempty"`
	Prenom        *string `json:"prenom,omitempty"`
}

type DossierDTO struct {
	ID          uint             `json:"id"`
	Status      string           `json:"status"`
	CurrentStep int              `json:"current_step"`
	SubmittedAt *time.Time       `json:"submitted_at"`
	LockedAt    *time.Time       `json:"locked_at"`
	CreatedAt   *time.Time       `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
	Candidate   DossierCandidate `json:"candidate"`
	Profile     *DossierProfile  `json:"profile"`
}

type CommissionMeta struct {
	ID         uint   `json:"id"`
	Specialite string `json:"specialite"`
}

type DossierListMeta struct {
	PaginatedMeta
	Commission *CommissionMeta `json:"commission"`
}

type DossierListResponse struct {
	Data []DossierDTO    `json:"data"`
	Meta DossierListMeta `json:"meta"`
}

type DossierResponse struct {
	Data DossierDTO `json:"data"`
}

type DossierDocumentDTO struct {
	ID           uint                `json:"id"`
	Type         string              `json:"type"`
	Category     string              `json:"category"`
	OriginalName string              `json:"original_name"`
	MimeType     string              `json:"mime_type"`
	Size         *int64              `json:"size"`
	IsVerified   bool                `json:"is_verified"`
	CreatedAt    *time.Time          `json:"created_at"`
	Activite     *DossierDocActivite `json:"activite"`
}

type DossierDocActivite struct {
	ID          uint    `json:"id"`
	Type        string  `json:"type"`
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
}

type DossierDocumentListResponse struct {
	Data []DossierDocumentDTO `json:"data"`
	Meta PaginatedMeta        `json:"meta"`
}

// --- Evaluation notes ---

type NoteItem struct {
	Criterion string   `json:"criterion"`
	Score     *float64 `json:"score"`
	Comment   *string  `json:"comment"`
}

type NotesSaveRequest struct {
	Items []NoteItem `json:"items" binding:"required"`
}

type NoteDTO struct {
	Criterion string     `json:"criterion"`
	Score     *float64   `json:"score"`
	Comment   *string    `json:"comment"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NoteAggregateDTO summarizes a note grid for both the commission and
// président views.
type NoteAggregateDTO struct {
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
	Scored   int     `json:"scored"`
	Unscored int     `json:"unscored"`
}

type NotesResponse struct {
	Data      []NoteDTO        `json:"data"`
	Aggregate NoteAggregateDTO `json:"aggregate"`
}

// NotesSaveResponse carries non-blocking notices (e.g. duplicate criteria)
// alongside the confirmation message.
type NotesSaveResponse struct {
	Message string   `json:"message"`
	Notices []string `json:"notices,omitempty"`
}

// --- Result finalization ---

type ResultDTO struct {
	AuditionScore *float64   `json:"audition_score"`
	FinalScore    *float64   `json:"final_score"`
	PvText        *string    `json:"pv_text"`
	ValidatedAt   *time.Time `json:"validated_at"`
}

type ResultResponse struct {
	Data ResultDTO `json:"data"`
}

type ResultSaveRequest struct {
	AuditionScore *float64 `json:"audition_score"`
	FinalScore    *float64 `json:"final_score"`
	PvText        *string  `json:"pv_text"`
}

type ValidateResponse struct {
	Message string `json:"message"`
	Data    struct {
		ValidatedAt *time.Time `json:"validated_at"`
	} `json:"data"`
}
