package service

import (
	"fmt"
	"time"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/rs/zerolog/log"
)

type ResultService interface {
	Get(userID, candidatureID uint) (*dto.ResultResponse, error)
	Save(userID, candidatureID uint, req dto.ResultSaveRequest) (*dto.ResultResponse, error)
	Validate(userID, candidatureID uint) (*dto.ValidateResponse, error)
}

type resultService struct {
	dossierService DossierService
	resultRepo     repository.ResultRepository
	noteRepo       repository.NoteRepository
}

func NewResultService(dossierService DossierService, resultRepo repository.ResultRepository, noteRepo repository.NoteRepository) ResultService {
	return &resultService{dossierService: dossierService, resultRepo: resultRepo, noteRepo: noteRepo}
}

func (s *resultService) Get(userID, candidatureID uint) (*dto.ResultResponse, error) {
	if _, err := s.dossierService.AuthorizeEvaluator(userID, candidatureID); err != nil {
		return nil, err
	}
	res, err := s.resultRepo.FindOrInit(candidatureID)
	if err != nil {
		return nil, fmt.Errorf("error fetching result: %w", err)
	}
	return &dto.ResultResponse{Data: dto.ResultDTO{
		AuditionScore: res.AuditionScore,
		FinalScore:    res.FinalScore,
		PvText:        res.PvText,
		ValidatedAt:   res.ValidatedAt,
	}}, nil
}

// Save updates the scores and procès-verbal. A validated result refuses any
// further write.
func (s *resultService) Save(userID, candidatureID uint, req dto.ResultSaveRequest) (*dto.ResultResponse, error) {
	if _, err := s.dossierService.AuthorizeEvaluator(userID, candidatureID); err != nil {
		return nil, err
	}
	res, err := s.resultRepo.FindOrInit(candidatureID)
	if err != nil {
		return nil, fmt.Errorf("error fetching result: %w", err)
	}
	if res.ValidatedAt != nil {
		return nil, ErrAlreadyValidated
	}
	if req.AuditionScore != nil && (*req.AuditionScore < 0 || *req.AuditionScore > 100) {
		return nil, NewValidationError("Résultat invalide").
			Add("audition_score", "La note d'audition doit être comprise entre 0 et 100")
	}
	if req.FinalScore != nil && (*req.FinalScore < 0 || *req.FinalScore > 100) {
		return nil, NewValidationError("Résultat invalide").
			Add("final_score", "La note finale doit être comprise entre 0 et 100")
	}

	res.AuditionScore = req.AuditionScore
	res.FinalScore = req.FinalScore
	res.PvText = req.PvText
	if err := s.resultRepo.Save(res); err != nil {
		log.Error().Err(err).Uint("candidatureID", candidatureID).Msg("Failed to save result")
		return nil, fmt.Errorf("error saving result: %w", err)
	}
	return &dto.ResultResponse{Data: dto.ResultDTO{
		AuditionScore: res.AuditionScore,
		FinalScore:    res.FinalScore,
		PvText:        res.PvText,
		ValidatedAt:   res.ValidatedAt,
	}}, nil
}

// Validate stamps the result. The operation is one-way: once stamped, both
// Save and a second Validate are rejected.
func (s *resultService) Validate(userID, candidatureID uint) (*dto.ValidateResponse, error) {
	if _, err := s.dossierService.AuthorizeEvaluator(userID, candidatureID); err != nil {
		return nil, err
	}
	res, err := s.resultRepo.FindOrInit(candidatureID)
	if err != nil {
		return nil, fmt.Errorf("error fetching result: %w", err)
	}
	if res.ValidatedAt != nil {
		return nil, ErrAlreadyValidated
	}

	// A final score is fixed from the saved notes when the president never
	// entered one explicitly.
	if res.FinalScore == nil {
		notes, err := s.noteRepo.FindAllByCandidature(candidatureID)
		if err != nil {
			return nil, fmt.Errorf("error fetching notes: %w", err)
		}
		if agg := Aggregate(notes); agg.Scored > 0 {
			res.FinalScore = &agg.Average
		}
	}

	now := time.Now()
	res.ValidatedAt = &now
	if err := s.resultRepo.Save(res); err != nil {
		return nil, fmt.Errorf("error validating result: %w", err)
	}

	out := &dto.ValidateResponse{Message: "Résultat validé"}
	out.Data.ValidatedAt = res.ValidatedAt
	return out, nil
}
