package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hzerradi/avancement-api/internal/draft"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/hzerradi/avancement-api/internal/wizard"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CandidatureService owns the dossier lifecycle: implicit creation, progress
// derivation, lock semantics, the one-way submit transition, and the
// administrative status transitions.
type CandidatureService interface {
	GetOrCreate(userID uint) (*model.Candidature, error)
	GetStatus(userID uint) (*dto.StatusResponse, error)
	GetCandidature(userID uint) (*dto.CandidatureResponse, error)
	Submit(userID uint, req dto.SubmitRequest) (*dto.SubmitResponse, error)
	Progress(candidatureID uint) (wizard.Progress, error)
	EnsureEditable(userID uint) (*model.Candidature, error)
	SetCurrentStep(userID uint, step int) error
	Transition(candidatureID uint, action string) (*model.Candidature, error)
}

type candidatureService struct {
	candidatureRepo  repository.CandidatureRepository
	profileRepo      repository.ProfileRepository
	enseignementRepo repository.EnseignementRepository
	pfeRepo          repository.PfeRepository
	activiteRepo     repository.ActiviteRepository
	deadlineRepo     repository.DeadlineRepository
	settingRepo      repository.SettingRepository
	drafts           draft.Store
}

func NewCandidatureService(
	candidatureRepo repository.CandidatureRepository,
	profileRepo repository.ProfileRepository,
	enseignementRepo repository.EnseignementRepository,
	pfeRepo repository.PfeRepository,
	activiteRepo repository.ActiviteRepository,
	deadlineRepo repository.DeadlineRepository,
	settingRepo repository.SettingRepository,
	drafts draft.Store,
) CandidatureService {
	return &candidatureService{
		candidatureRepo:  candidatureRepo,
		profileRepo:      profileRepo,
		enseignementRepo: enseignementRepo,
		pfeRepo:          pfeRepo,
		activiteRepo:     activiteRepo,
		deadlineRepo:     deadlineRepo,
		settingRepo:      settingRepo,
		drafts:           drafts,
	}
}

// GetOrCreate returns the user's candidature, creating the draft record on
// first access. A candidate has exactly one dossier.
func (s *candidatureService) GetOrCreate(userID uint) (*model.Candidature, error) {
	c, err := s.candidatureRepo.FindByUserID(userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error fetching candidature: %w", err)
	}
	c = &model.Candidature{UserID: userID, Status: model.StatusDraft, CurrentStep: 1}
	if err := s.candidatureRepo.Create(c); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create candidature")
		return nil, fmt.Errorf("error creating candidature: %w", err)
	}
	return c, nil
}

// Progress derives the authoritative per-step completion map from persisted
// data. Completion is never trusted from client state.
func (s *candidatureService) Progress(candidatureID uint) (wizard.Progress, error) {
	progress := wizard.Progress{}

	profile, err := s.profileRepo.FindByCandidatureID(candidatureID)
	if err == nil {
		progress[wizard.StepProfil.Key()] = profile.IsComplete()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ensCount, err := s.enseignementRepo.CountByCandidature(candidatureID)
	if err != nil {
		return nil, err
	}
	progress[wizard.StepEnseignements.Key()] = ensCount > 0

	pfeCount, err := s.pfeRepo.CountByCandidature(candidatureID)
	if err != nil {
		return nil, err
	}
	progress[wizard.StepPfe.Key()] = pfeCount > 0

	for stepID, activiteType := range map[wizard.StepID]string{
		wizard.StepActivitesEnseignement: model.ActiviteEnseignement,
		wizard.StepActivitesRecherche:    model.ActiviteRecherche,
	} {
		items, err := s.activiteRepo.FindAllByType(candidatureID, activiteType)
		if err != nil {
			return nil, err
		}
		complete := len(items) > 0
		for _, a := range items {
			if a.Document == nil {
				// An activity without its supporting document does not count.
				complete = false
				break
			}
		}
		progress[stepID.Key()] = complete
	}

	return progress, nil
}

func (s *candidatureService) isLocked(c *model.Candidature, now time.Time) bool {
	if c.IsLocked() {
		return true
	}
	deadline, err := s.deadlineRepo.FindByStage("candidature")
	if err == nil && deadline.IsExpired(now) {
		return true
	}
	return false
}

func (s *candidatureService) GetStatus(userID uint) (*dto.StatusResponse, error) {
	c, err := s.candidatureRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.StatusResponse{Exists: false, Step: 1, Status: model.StatusDraft}, nil
		}
		return nil, fmt.Errorf("error fetching candidature status: %w", err)
	}

	progress, err := s.Progress(c.ID)
	if err != nil {
		return nil, fmt.Errorf("error deriving progress: %w", err)
	}
	summary := progress.Summarize()

	return &dto.StatusResponse{
		Exists:      true,
		Step:        c.CurrentStep,
		Status:      c.Status,
		Progress:    &summary,
		IsLocked:    s.isLocked(c, time.Now()),
		SubmittedAt: c.SubmittedAt,
	}, nil
}

func (s *candidatureService) GetCandidature(userID uint) (*dto.CandidatureResponse, error) {
	c, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress(c.ID)
	if err != nil {
		return nil, err
	}
	summary := progress.Summarize()

	var candidatureDTO dto.CandidatureDTO
	if err := copier.Copy(&candidatureDTO, c); err != nil {
		return nil, fmt.Errorf("error preparing candidature response: %w", err)
	}
	candidatureDTO.Progress = summary

	now := time.Now()
	locked := s.isLocked(c, now)

	resp := &dto.CandidatureResponse{
		Candidature: candidatureDTO,
		Progress:    summary,
		IsLocked:    locked,
		CanEdit:     c.Status == model.StatusDraft && !locked,
	}
	if deadline, err := s.deadlineRepo.FindByStage("candidature"); err == nil {
		resp.Deadline = deadlineToDTO(deadline, now)
	}
	return resp, nil
}

// EnsureEditable loads the caller's candidature and rejects the mutation
// when the dossier is submitted, blocked, locked, past the deadline, or the
// candidature period is closed.
func (s *candidatureService) EnsureEditable(userID uint) (*model.Candidature, error) {
	setting, err := s.settingRepo.Get()
	if err == nil && !setting.CandidatureOpen {
		return nil, ErrClosed
	}

	c, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if s.isLocked(c, time.Now()) {
		return nil, ErrLocked
	}
	return c, nil
}

// SetCurrentStep moves the wizard cursor. Backward moves are always allowed;
// a forward move re-derives progress from persisted data first and is denied
// while any required step before the target is incomplete, so a stale client
// can never skip ahead.
func (s *candidatureService) SetCurrentStep(userID uint, step int) error {
	c, err := s.candidatureRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	if step < 1 || step > len(wizard.Steps) {
		return NewValidationError("Étape inconnue").
			Add("step", fmt.Sprintf("l'étape doit être comprise entre 1 et %d", len(wizard.Steps)))
	}
	if step == c.CurrentStep {
		return nil
	}

	target := wizard.StepID(step)
	current := wizard.StepID(c.CurrentStep)
	if target > current {
		if s.isLocked(c, time.Now()) {
			return ErrLocked
		}
		progress, err := s.Progress(c.ID)
		if err != nil {
			return fmt.Errorf("error deriving progress: %w", err)
		}
		if d := wizard.CanNavigate(target, current, progress); !d.Allowed {
			verr := NewValidationError("Des étapes précédentes sont incomplètes")
			for _, label := range d.MissingSteps {
				verr.Add("steps", label)
			}
			return verr
		}
	}

	c.CurrentStep = step
	return s.candidatureRepo.Update(c)
}

// Submit performs the one-way draft -> submitted transition. Preconditions:
// every required step complete and both acknowledgements checked. On any
// failure the state is left unchanged and the caller may simply retry.
func (s *candidatureService) Submit(userID uint, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	c, err := s.candidatureRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching candidature: %w", err)
	}

	if c.Status != model.StatusDraft {
		return nil, ErrAlreadySubmitted
	}
	now := time.Now()
	if s.isLocked(c, now) {
		return nil, ErrLocked
	}
	if !req.ConfirmExactitude || !req.ConfirmNonModification {
		return nil, NewValidationError("Les deux attestations doivent être acceptées").
			Add("confirmations", "les attestations d'exactitude et de non-modification sont requises")
	}

	progress, err := s.Progress(c.ID)
	if err != nil {
		return nil, fmt.Errorf("error deriving progress: %w", err)
	}
	if !progress.AllRequiredComplete() {
		verr := NewValidationError("Toutes les étapes doivent être complétées avant la soumission")
		for _, step := range wizard.Steps {
			if step.Required && !progress.IsStepComplete(step.ID) {
				verr.Add("steps", step.Label)
			}
		}
		return nil, verr
	}

	c.Status = model.StatusSubmitted
	c.SubmittedAt = &now
	c.LockedAt = &now
	if err := s.candidatureRepo.Update(c); err != nil {
		log.Error().Err(err).Uint("candidatureID", c.ID).Msg("Failed to persist submission")
		return nil, fmt.Errorf("error submitting candidature: %w", err)
	}
	// The submitted record is authoritative; recovery drafts are stale now.
	s.drafts.ClearAll()
	log.Info().Uint("candidatureID", c.ID).Uint("userID", userID).Msg("Candidature submitted")

	var candidatureDTO dto.CandidatureDTO
	if err := copier.Copy(&candidatureDTO, c); err != nil {
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	candidatureDTO.Progress = progress.Summarize()

	return &dto.SubmitResponse{
		Message:     "Dossier soumis avec succès",
		Candidature: candidatureDTO,
	}, nil
}

// Transition applies an administrative status change. Directions follow the
// lifecycle: block/approve/reject act on a submitted dossier; unblock
// restores a blocked dossier to editable draft.
func (s *candidatureService) Transition(candidatureID uint, action string) (*model.Candidature, error) {
	c, err := s.candidatureRepo.FindByID(candidatureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch action {
	case "block":
		if c.Status != model.StatusSubmitted {
			return nil, NewValidationError("Seul un dossier soumis peut être bloqué")
		}
		c.Status = model.StatusBlocked
	case "unblock":
		if c.Status != model.StatusBlocked {
			return nil, NewValidationError("Seul un dossier bloqué peut être débloqué")
		}
		c.Status = model.StatusDraft
		c.SubmittedAt = nil
		c.LockedAt = nil
	case "approve":
		if c.Status != model.StatusSubmitted {
			return nil, NewValidationError("Seul un dossier soumis peut être approuvé")
		}
		c.Status = model.StatusApproved
	case "reject":
		if c.Status != model.StatusSubmitted {
			return nil, NewValidationError("Seul un dossier soumis peut être rejeté")
		}
		c.Status = model.StatusRejected
	default:
		return nil, NewValidationError("Action inconnue: " + action)
	}

	if err := s.candidatureRepo.Update(c); err != nil {
		return nil, fmt.Errorf("error updating candidature status: %w", err)
	}
	log.Info().Uint("candidatureID", c.ID).Str("action", action).Str("status", c.Status).Msg("Candidature status transition")
	return c, nil
}

func deadlineToDTO(d *model.Deadline, now time.Time) *dto.DeadlineDTO {
	return &dto.DeadlineDTO{
		ID:              d.ID,
		Stage:           d.Stage,
		DueAt:           d.DueAt,
		DueAtFormatted:  d.DueAt.Format("02/01/2006 15:04"),
		ReminderEnabled: d.ReminderEnabled,
		DaysRemaining:   d.DaysRemaining(now),
		IsExpired:       d.IsExpired(now),
	}
}
