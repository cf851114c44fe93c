package service

import (
	"fmt"
	"strings"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/rs/zerolog/log"
)

type EvaluationService interface {
	GetNotes(userID, candidatureID uint) (*dto.NotesResponse, error)
	SaveNotes(userID, candidatureID uint, req dto.NotesSaveRequest) (*dto.NotesSaveResponse, error)
}

type evaluationService struct {
	dossierService DossierService
	noteRepo       repository.NoteRepository
}

func NewEvaluationService(dossierService DossierService, noteRepo repository.NoteRepository) EvaluationService {
	return &evaluationService{dossierService: dossierService, noteRepo: noteRepo}
}

func (s *evaluationService) GetNotes(userID, candidatureID uint) (*dto.NotesResponse, error) {
	if _, err := s.dossierService.AuthorizeEvaluator(userID, candidatureID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindAllByCandidature(candidatureID)
	if err != nil {
		return nil, fmt.Errorf("error fetching notes: %w", err)
	}
	out := &dto.NotesResponse{Data: make([]dto.NoteDTO, 0, len(notes))}
	for _, n := range notes {
		out.Data = append(out.Data, dto.NoteDTO{
			Criterion: n.Criterion,
			Score:     n.Score,
			Comment:   n.Comment,
			UpdatedAt: ptr(n.UpdatedAt),
		})
	}
	out.Aggregate = Aggregate(notes)
	return out, nil
}

// SaveNotes replaces the dossier's full note set. Rows with neither score
// nor comment are dropped; the first invalid row aborts the whole save so a
// partial grid is never persisted.
func (s *evaluationService) SaveNotes(userID, candidatureID uint, req dto.NotesSaveRequest) (*dto.NotesSaveResponse, error) {
	if _, err := s.dossierService.AuthorizeEvaluator(userID, candidatureID); err != nil {
		return nil, err
	}

	notes, err := PrepareNotes(req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.ReplaceAll(candidatureID, userID, notes); err != nil {
		log.Error().Err(err).Uint("candidatureID", candidatureID).Msg("Failed to save notes")
		return nil, fmt.Errorf("error saving notes: %w", err)
	}

	resp := &dto.NotesSaveResponse{Message: "Notes enregistrées"}
	for _, c := range DuplicateCriteria(notes) {
		resp.Notices = append(resp.Notices, fmt.Sprintf("Le critère %q apparaît plusieurs fois", c))
	}
	return resp, nil
}

// PrepareNotes validates and normalizes submitted rows. A row with a
// non-empty criterion is persisted even without a score or comment, so
// template criteria survive a save before grading. Only rows carrying none
// of the three fields are skipped; a score must sit in [0, 100].
func PrepareNotes(items []dto.NoteItem) ([]model.EvaluationNote, error) {
	notes := make([]model.EvaluationNote, 0, len(items))
	for i, it := range items {
		hasCriterion := strings.TrimSpace(it.Criterion) != ""
		hasScore := it.Score != nil
		hasComment := it.Comment != nil && strings.TrimSpace(*it.Comment) != ""
		if !hasCriterion && !hasScore && !hasComment {
			continue
		}
		if !hasCriterion {
			return nil, NewValidationError("Notes invalides").
				Add(fmt.Sprintf("items.%d.criterion", i), "Le critère est obligatoire")
		}
		if hasScore && (*it.Score < 0 || *it.Score > 100) {
			return nil, NewValidationError("Notes invalides").
				Add(fmt.Sprintf("items.%d.score", i), "La note doit être comprise entre 0 et 100")
		}
		n := model.EvaluationNote{Criterion: strings.TrimSpace(it.Criterion), Score: it.Score}
		if hasComment {
			c := strings.TrimSpace(*it.Comment)
			n.Comment = &c
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// DuplicateCriteria returns criteria appearing more than once, compared
// case-insensitively. Duplicates are allowed but reported.
func DuplicateCriteria(notes []model.EvaluationNote) []string {
	seen := make(map[string]int)
	var dups []string
	for _, n := range notes {
		key := strings.ToLower(n.Criterion)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, n.Criterion)
		}
	}
	return dups
}

// Aggregate summarizes a note grid. Unscored rows count toward Unscored but
// never toward the average's denominator.
func Aggregate(notes []model.EvaluationNote) dto.NoteAggregateDTO {
	var agg dto.NoteAggregateDTO
	for _, n := range notes {
		if n.Score == nil {
			agg.Unscored++
			continue
		}
		agg.Total += *n.Score
		agg.Scored++
	}
	if agg.Scored > 0 {
		agg.Average = agg.Total / float64(agg.Scored)
	}
	return agg
}
