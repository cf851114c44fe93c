package service

import (
	"fmt"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ActiviteService interface {
	List(userID uint, activiteType string) (*dto.ActiviteListResponse, error)
	Save(userID uint, req dto.ActiviteSaveRequest) (*dto.ActiviteResponse, error)
	ReplaceAll(userID uint, req dto.ActiviteBulkRequest) (*dto.ActiviteBulkResponse, error)
	Delete(userID uint, id uint) error
	Categories(activiteType string) *dto.CategoriesResponse
}

type activiteService struct {
	candidatureService CandidatureService
	activiteRepo       repository.ActiviteRepository
}

func NewActiviteService(candidatureService CandidatureService, activiteRepo repository.ActiviteRepository) ActiviteService {
	return &activiteService{candidatureService: candidatureService, activiteRepo: activiteRepo}
}

func (s *activiteService) List(userID uint, activiteType string) (*dto.ActiviteListResponse, error) {
	if activiteType != model.ActiviteEnseignement && activiteType != model.ActiviteRecherche {
		return nil, NewValidationError("Type d'activité invalide").Add("type", "Le type doit être enseignement ou recherche")
	}
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.activiteRepo.FindAllByType(c.ID, activiteType)
	if err != nil {
		return nil, fmt.Errorf("error fetching activites: %w", err)
	}

	out := &dto.ActiviteListResponse{
		Activites:  activitesToDTO(items),
		ByCategory: make(map[string]dto.ActiviteCategoryGroup),
		Categories: catalogueFor(activiteType),
	}
	for _, it := range items {
		g, seen := out.ByCategory[it.Category]
		if !seen {
			g.HasAllDocuments = true
		}
		g.Items = append(g.Items, activiteToDTO(it))
		g.TotalCount += it.Count
		if it.Document == nil {
			g.HasAllDocuments = false
		}
		out.ByCategory[it.Category] = g
	}
	return out, nil
}

// Save upserts a single declaration identified by (type, category,
// subcategory). An existing row keeps its id, so an attached document
// survives a count change.
func (s *activiteService) Save(userID uint, req dto.ActiviteSaveRequest) (*dto.ActiviteResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	if !catalogueContains(req.Type, req.Category, req.Subcategory) {
		return nil, NewValidationError("Activité inconnue").
			Add("subcategory", fmt.Sprintf("L'activité %q n'existe pas dans la catégorie %s", req.Subcategory, req.Category))
	}

	a := model.Activite{
		CandidatureID: c.ID,
		Type:          req.Type,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Count:         req.Count,
	}
	if err := s.activiteRepo.Upsert(&a); err != nil {
		log.Error().Err(err).Uint("candidatureID", c.ID).Msg("Failed to upsert activite")
		return nil, fmt.Errorf("error saving activite: %w", err)
	}
	return &dto.ActiviteResponse{Message: "Activité enregistrée", Activite: activiteToDTO(a)}, nil
}

func (s *activiteService) ReplaceAll(userID uint, req dto.ActiviteBulkRequest) (*dto.ActiviteBulkResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	items := make([]model.Activite, 0, len(req.Activites))
	for _, it := range req.Activites {
		if !catalogueContains(req.Type, it.Category, it.Subcategory) {
			return nil, NewValidationError("Activité inconnue").
				Add("subcategory", fmt.Sprintf("L'activité %q n'existe pas dans la catégorie %s", it.Subcategory, it.Category))
		}
		items = append(items, model.Activite{
			Type:        req.Type,
			Category:    it.Category,
			Subcategory: it.Subcategory,
			Count:       it.Count,
		})
	}
	saved, err := s.activiteRepo.ReplaceAllOfType(c.ID, req.Type, items)
	if err != nil {
		return nil, fmt.Errorf("error saving activites: %w", err)
	}
	return &dto.ActiviteBulkResponse{Message: "Activités enregistrées", Activites: activitesToDTO(saved)}, nil
}

func (s *activiteService) Delete(userID uint, id uint) error {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return err
	}
	return s.activiteRepo.Delete(c.ID, id)
}

func (s *activiteService) Categories(activiteType string) *dto.CategoriesResponse {
	return &dto.CategoriesResponse{Categories: catalogueFor(activiteType)}
}

func activitesToDTO(items []model.Activite) []dto.ActiviteDTO {
	out := make([]dto.ActiviteDTO, 0, len(items))
	for _, it := range items {
		out = append(out, activiteToDTO(it))
	}
	return out
}

func activiteToDTO(a model.Activite) dto.ActiviteDTO {
	var out dto.ActiviteDTO
	copier.Copy(&out, &a)
	if a.Document != nil {
		var d dto.DocumentDTO
		copier.Copy(&d, a.Document)
		out.Document = &d
	}
	return out
}
