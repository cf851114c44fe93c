package dto

import "time"

// --- Deadlines ---

type DeadlineCreateRequest struct {
	Stage           string    `json:"stage" binding:"required"`
	DueAt           time.Time `json:"due_at" binding:"required"`
	ReminderEnabled bool      `json:"reminder_enabled"`
}

type DeadlineUpdateRequest struct {
	Stage           *string    `json:"stage"`
	DueAt           *time.Time `json:"due_at"`
	ReminderEnabled *bool      `json:"reminder_enabled"`
}

// --- Users ---

type AdminUserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminUserListResponse struct {
	Data []AdminUserDTO `json:"data"`
	Meta PaginatedMeta  `json:"meta"`
}

type AdminCreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=candidat admin commission president systeme"`
}

// AdminCreateCandidateRequest creates a candidate user together with a
// pre-filled profile, the admin-side onboarding path.
type AdminCreateCandidateRequest struct {
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=8"`
	Nom               string  `json:"nom" binding:"required"`
	Prenom            string  `json:"prenom" binding:"required"`
	DateNaissance     string  `json:"date_naissance" binding:"required"`
	Etablissement     string  `json:"etablissement" binding:"required"`
	Ville             string  `json:"ville" binding:"required"`
	Departement       string  `json:"departement" binding:"required"`
	GradeActuel       string  `json:"grade_actuel" binding:"required"`
	DateRecrutementES string  `json:"date_recrutement_es" binding:"required"`
	DateRecrutementFP *string `json:"date_recrutement_fp"`
	NumeroSom         string  `json:"numero_som" binding:"required"`
	Telephone         string  `json:"telephone" binding:"required"`
	Specialite        string  `json:"specialite" binding:"required"`
}

// --- Commissions ---

type AdminCommissionDTO struct {
	ID           uint       `json:"id"`
	Specialite   string     `json:"specialite"`
	MembersCount int        `json:"members_count"`
	CreatedAt    *time.Time `json:"created_at"`
}

type AdminCommissionListResponse struct {
	Data []AdminCommissionDTO `json:"data"`
}

type CommissionCreateRequest struct {
	Specialite string `json:"specialite" binding:"required"`
}

type CommissionMemberRequest struct {
	UserID      uint `json:"user_id" binding:"required"`
	IsPresident bool `json:"is_president"`
}

type CommissionMemberDTO struct {
	ID          uint             `json:"id"`
	User        DossierCandidate `json:"user"`
	IsPresident bool             `json:"is_president"`
	CreatedAt   *time.Time       `json:"created_at"`
}

type CommissionMemberListResponse struct {
	Data []CommissionMemberDTO `json:"data"`
}

// --- Dossier status transitions ---

type DossierStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=block unblock approve reject"`
}

// --- Analytics ---

type AnalyticsTotals struct {
	DossiersTotal     int64 `json:"dossiers_total"`
	DossiersSubmitted int64 `json:"dossiers_submitted"`
	CandidatsTotal    int64 `json:"candidats_total"`
}

type AnalyticsPoint struct {
	Date              string `json:"date"`
	DossiersCreated   int64  `json:"dossiers_created"`
	DossiersSubmitted int64  `json:"dossiers_submitted"`
}

type AnalyticsRecentCandidate struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at"`
}

type AnalyticsOverviewResponse struct {
	Totals           AnalyticsTotals            `json:"totals"`
	Series           []AnalyticsPoint           `json:"series"`
	RecentCandidates []AnalyticsRecentCandidate `json:"recent_candidates"`
	ByStatus         map[string]int64           `json:"by_status"`
}

// --- Settings ---

type SettingsDTO struct {
	AppName         string `json:"app_name"`
	ContactEmail    string `json:"contact_email"`
	CandidatureOpen bool   `json:"candidature_open"`
}

type SettingsUpdateRequest struct {
	AppName         *string `json:"app_name"`
	ContactEmail    *string `json:"contact_email"`
	CandidatureOpen *bool   `json:"candidature_open"`
}
