package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProfileService interface {
	Get(userID uint) (*dto.ProfileDTO, error)
	Save(userID uint, req dto.ProfileSaveRequest) (*dto.ProfileResponse, error)
	Autosave(userID uint, req dto.ProfileAutosaveRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	candidatureService CandidatureService
	profileRepo        repository.ProfileRepository
}

func NewProfileService(candidatureService CandidatureService, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{candidatureService: candidatureService, profileRepo: profileRepo}
}

func (s *profileService) Get(userID uint) (*dto.ProfileDTO, error) {
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByCandidatureID(c.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}
	return profileToDTO(profile), nil
}

// Save persists the full profile. Completeness of the mandatory fields is
// enforced by the request binding; the step is marked complete by the
// progress derivation once every required field is present.
func (s *profileService) Save(userID uint, req dto.ProfileSaveRequest) (*dto.ProfileResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByCandidatureID(c.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("error fetching profile: %w", err)
		}
		profile = &model.Profile{CandidatureID: c.ID}
	}

	if err := copier.Copy(profile, &req); err != nil {
		return nil, fmt.Errorf("error mapping profile: %w", err)
	}
	if err := s.profileRepo.Save(profile); err != nil {
		log.Error().Err(err).Uint("candidatureID", c.ID).Msg("Failed to save profile")
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	return &dto.ProfileResponse{Message: "Profil enregistré", Profile: *profileToDTO(profile)}, nil
}

// Autosave tolerates any subset of fields and never fails validation for
// omitted ones. Only fields present in the request are written.
func (s *profileService) Autosave(userID uint, req dto.ProfileAutosaveRequest) (*dto.ProfileResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByCandidatureID(c.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("error fetching profile: %w", err)
		}
		profile = &model.Profile{CandidatureID: c.ID}
	}

	applyIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIf(&profile.Nom, req.Nom)
	applyIf(&profile.Prenom, req.Prenom)
	applyIf(&profile.DateNaissance, req.DateNaissance)
	applyIf(&profile.Etablissement, req.Etablissement)
	applyIf(&profile.Ville, req.Ville)
	applyIf(&profile.Departement, req.Departement)
	applyIf(&profile.GradeActuel, req.GradeActuel)
	applyIf(&profile.DateRecrutementES, req.DateRecrutementES)
	applyIf(&profile.Telephone, req.Telephone)
	applyIf(&profile.Specialite, req.Specialite)
	if req.DateRecrutementFP != nil {
		profile.DateRecrutementFP = req.DateRecrutementFP
	}
	if req.NumeroSom != nil {
		profile.NumeroSom = req.NumeroSom
	}
	if req.ADemandeAvancement != nil {
		profile.ADemandeAvancement = *req.ADemandeAvancement
	}
	if req.ADossierEnCours != nil {
		profile.ADossierEnCours = *req.ADossierEnCours
	}

	if err := s.profileRepo.Save(profile); err != nil {
		log.Error().Err(err).Uint("candidatureID", c.ID).Msg("Failed to autosave profile")
		return nil, fmt.Errorf("error autosaving profile: %w", err)
	}

	return &dto.ProfileResponse{Message: "Brouillon enregistré", Profile: *profileToDTO(profile)}, nil
}

func profileToDTO(p *model.Profile) *dto.ProfileDTO {
	var out dto.ProfileDTO
	copier.Copy(&out, p)
	out.IsComplete = p.IsComplete()
	out.Anciennete = anciennete(p.DateRecrutementES, time.Now())
	return &out
}

// anciennete derives seniority from the recruitment date (format
// 2006-01-02). Returns nil when the date is absent or unparseable.
func anciennete(dateRecrutement string, now time.Time) *dto.AncienneteDTO {
	if dateRecrutement == "" {
		return nil
	}
	start, err := time.Parse("2006-01-02", dateRecrutement)
	if err != nil {
		return nil
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return &dto.AncienneteDTO{
		Years:       months / 12,
		Months:      months % 12,
		TotalMonths: months,
	}
}
