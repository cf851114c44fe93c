package service

import (
	"errors"
	"fmt"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PfeService interface {
	List(userID uint) (*dto.PfeListResponse, error)
	ReplaceAll(userID uint, req dto.PfeBulkRequest) (*dto.PfeBulkResponse, error)
	Add(userID uint, item dto.PfeItem) (*dto.PfeDTO, error)
	Update(userID uint, id uint, item dto.PfeItem) (*dto.PfeDTO, error)
	Delete(userID uint, id uint) error
}

type pfeService struct {
	candidatureService CandidatureService
	pfeRepo            repository.PfeRepository
}

func NewPfeService(candidatureService CandidatureService, pfeRepo repository.PfeRepository) PfeService {
	return &pfeService{candidatureService: candidatureService, pfeRepo: pfeRepo}
}

func (s *pfeService) List(userID uint) (*dto.PfeListResponse, error) {
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.pfeRepo.FindAllByCandidature(c.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching pfes: %w", err)
	}

	out := &dto.PfeListResponse{
		Pfes:     pfesToDTO(items),
		ByYear:   make(map[string]dto.PfeYearGroup),
		ByNiveau: make(map[string]dto.PfeNiveauGroup),
	}
	for _, it := range items {
		out.Totals.VolumeHoraire += it.VolumeHoraire

		y := out.ByYear[it.AnneeUniversitaire]
		y.Items = append(y.Items, pfeToDTO(it))
		y.VolumeHoraire += it.VolumeHoraire
		out.ByYear[it.AnneeUniversitaire] = y

		n := out.ByNiveau[it.Niveau]
		n.Count++
		n.VolumeHoraire += it.VolumeHoraire
		out.ByNiveau[it.Niveau] = n
	}
	out.Totals.Count = len(items)
	return out, nil
}

func (s *pfeService) ReplaceAll(userID uint, req dto.PfeBulkRequest) (*dto.PfeBulkResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	items := make([]model.Pfe, 0, len(req.Pfes))
	for _, it := range req.Pfes {
		var p model.Pfe
		copier.Copy(&p, &it)
		items = append(items, p)
	}
	saved, err := s.pfeRepo.ReplaceAll(c.ID, items)
	if err != nil {
		return nil, fmt.Errorf("error saving pfes: %w", err)
	}
	return &dto.PfeBulkResponse{Message: "Encadrements enregistrés", Pfes: pfesToDTO(saved)}, nil
}

func (s *pfeService) Add(userID uint, item dto.PfeItem) (*dto.PfeDTO, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	var p model.Pfe
	copier.Copy(&p, &item)
	p.CandidatureID = c.ID
	if err := s.pfeRepo.Create(&p); err != nil {
		return nil, fmt.Errorf("error creating pfe: %w", err)
	}
	out := pfeToDTO(p)
	return &out, nil
}

func (s *pfeService) Update(userID uint, id uint, item dto.PfeItem) (*dto.PfeDTO, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	p, err := s.pfeRepo.FindByID(c.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching pfe: %w", err)
	}
	copier.Copy(p, &item)
	if err := s.pfeRepo.Update(p); err != nil {
		return nil, fmt.Errorf("error updating pfe: %w", err)
	}
	out := pfeToDTO(*p)
	return &out, nil
}

func (s *pfeService) Delete(userID uint, id uint) error {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return err
	}
	return s.pfeRepo.Delete(c.ID, id)
}

func pfesToDTO(items []model.Pfe) []dto.PfeDTO {
	out := make([]dto.PfeDTO, 0, len(items))
	for _, it := range items {
		out = append(out, pfeToDTO(it))
	}
	return out
}

func pfeToDTO(p model.Pfe) dto.PfeDTO {
	var out dto.PfeDTO
	copier.Copy(&out, &p)
	return out
}
