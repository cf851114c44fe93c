package service

import (
	"fmt"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// tpFactors converts declared hours to their TP equivalent. The factors are
// fixed by the promotion regulation.
var tpFactors = map[string]float64{
	model.TypeCM: 1.5,
	model.TypeTD: 1.25,
	model.TypeTP: 1,
}

// EquivalentTP computes the TP-equivalent hours for a teaching type. Unknown
// types fall back to factor 1.
func EquivalentTP(typeEnseignement string, volumeHoraire float64) float64 {
	factor, ok := tpFactors[typeEnseignement]
	if !ok {
		factor = 1
	}
	return volumeHoraire * factor
}

type EnseignementService interface {
	List(userID uint) (*dto.EnseignementListResponse, error)
	ReplaceAll(userID uint, req dto.EnseignementBulkRequest) (*dto.EnseignementBulkResponse, error)
	Add(userID uint, item dto.EnseignementItem) (*dto.EnseignementDTO, error)
	Delete(userID uint, id uint) error
}

type enseignementService struct {
	candidatureService CandidatureService
	enseignementRepo   repository.EnseignementRepository
}

func NewEnseignementService(candidatureService CandidatureService, enseignementRepo repository.EnseignementRepository) EnseignementService {
	return &enseignementService{candidatureService: candidatureService, enseignementRepo: enseignementRepo}
}

func (s *enseignementService) List(userID uint) (*dto.EnseignementListResponse, error) {
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.enseignementRepo.FindAllByCandidature(c.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching enseignements: %w", err)
	}
	return buildEnseignementList(items), nil
}

// ReplaceAll swaps the whole set in one transaction. The stored equivalent_tp
// is always recomputed server side, whatever the client sent.
func (s *enseignementService) ReplaceAll(userID uint, req dto.EnseignementBulkRequest) (*dto.EnseignementBulkResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.Enseignement, 0, len(req.Enseignements))
	for _, it := range req.Enseignements {
		var e model.Enseignement
		copier.Copy(&e, &it)
		e.EquivalentTP = EquivalentTP(it.TypeEnseignement, it.VolumeHoraire)
		items = append(items, e)
	}

	saved, err := s.enseignementRepo.ReplaceAll(c.ID, items)
	if err != nil {
		log.Error().Err(err).Uint("candidatureID", c.ID).Msg("Failed to replace enseignements")
		return nil, fmt.Errorf("error saving enseignements: %w", err)
	}

	return &dto.EnseignementBulkResponse{
		Message:       "Enseignements enregistrés",
		Enseignements: enseignementsToDTO(saved),
	}, nil
}

func (s *enseignementService) Add(userID uint, item dto.EnseignementItem) (*dto.EnseignementDTO, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	var e model.Enseignement
	copier.Copy(&e, &item)
	e.CandidatureID = c.ID
	e.EquivalentTP = EquivalentTP(item.TypeEnseignement, item.VolumeHoraire)
	if err := s.enseignementRepo.Create(&e); err != nil {
		return nil, fmt.Errorf("error creating enseignement: %w", err)
	}
	out := enseignementToDTO(e)
	return &out, nil
}

func (s *enseignementService) Delete(userID uint, id uint) error {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return err
	}
	return s.enseignementRepo.Delete(c.ID, id)
}

func buildEnseignementList(items []model.Enseignement) *dto.EnseignementListResponse {
	out := &dto.EnseignementListResponse{
		Enseignements: enseignementsToDTO(items),
		ByYear:        make(map[string]dto.EnseignementYearGroup),
	}
	for _, it := range items {
		out.Totals.VolumeHoraire += it.VolumeHoraire
		out.Totals.EquivalentTP += it.EquivalentTP

		g := out.ByYear[it.AnneeUniversitaire]
		g.Items = append(g.Items, enseignementToDTO(it))
		g.VolumeHoraire += it.VolumeHoraire
		g.EquivalentTP += it.EquivalentTP
		out.ByYear[it.AnneeUniversitaire] = g
	}
	out.Totals.Count = len(items)
	return out
}

func enseignementsToDTO(items []model.Enseignement) []dto.EnseignementDTO {
	out := make([]dto.EnseignementDTO, 0, len(items))
	for _, it := range items {
		out = append(out, enseignementToDTO(it))
	}
	return out
}

func enseignementToDTO(e model.Enseignement) dto.EnseignementDTO {
	var out dto.EnseignementDTO
	copier.Copy(&out, &e)
	return out
}
