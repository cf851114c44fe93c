package service

import (
	"errors"
	"fmt"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"gorm.io/gorm"
)

// evaluableStatuses are the states a dossier can be in once it has left the
// candidate's hands. Drafts are never visible to evaluators.
var evaluableStatuses = []string{
	model.StatusSubmitted,
	model.StatusBlocked,
	model.StatusApproved,
	model.StatusRejected,
}

type DossierListQuery struct {
	Status  string
	Page    int
	PerPage int
}

type DossierService interface {
	ListForEvaluator(userID uint, q DossierListQuery) (*dto.DossierListResponse, error)
	ListForAdmin(q DossierListQuery, specialite string) (*dto.DossierListResponse, error)
	AuthorizeEvaluator(userID, candidatureID uint) (*model.Candidature, error)
	Get(candidatureID uint) (*dto.DossierResponse, error)
	Documents(candidatureID uint, page, perPage int) (*dto.DossierDocumentListResponse, error)
	Transition(candidatureID uint, action string) (*dto.DossierResponse, error)
}

type dossierService struct {
	candidatureService CandidatureService
	candidatureRepo    repository.CandidatureRepository
	commissionRepo     repository.CommissionRepository
	documentRepo       repository.DocumentRepository
}

func NewDossierService(candidatureService CandidatureService, candidatureRepo repository.CandidatureRepository, commissionRepo repository.CommissionRepository, documentRepo repository.DocumentRepository) DossierService {
	return &dossierService{
		candidatureService: candidatureService,
		candidatureRepo:    candidatureRepo,
		commissionRepo:     commissionRepo,
		documentRepo:       documentRepo,
	}
}

// ListForEvaluator returns dossiers restricted to the specialty of the
// caller's commission. A user attached to no commission gets ErrForbidden.
func (s *dossierService) ListForEvaluator(userID uint, q DossierListQuery) (*dto.DossierListResponse, error) {
	commission, _, err := s.commissionRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("error resolving commission: %w", err)
	}

	filter := repository.DossierFilter{
		Specialite: commission.Specialite,
		Statuses:   statusesFor(q.Status),
		Page:       q.Page,
		PerPage:    q.PerPage,
	}
	items, total, err := s.candidatureRepo.ListDossiers(filter)
	if err != nil {
		return nil, fmt.Errorf("error listing dossiers: %w", err)
	}

	out := buildDossierList(items, total, filter)
	out.Meta.Commission = &dto.CommissionMeta{ID: commission.ID, Specialite: commission.Specialite}
	return out, nil
}

func (s *dossierService) ListForAdmin(q DossierListQuery, specialite string) (*dto.DossierListResponse, error) {
	filter := repository.DossierFilter{
		Specialite: specialite,
		Statuses:   statusesFor(q.Status),
		Page:       q.Page,
		PerPage:    q.PerPage,
	}
	items, total, err := s.candidatureRepo.ListDossiers(filter)
	if err != nil {
		return nil, fmt.Errorf("error listing dossiers: %w", err)
	}
	return buildDossierList(items, total, filter), nil
}

// AuthorizeEvaluator checks that the dossier is evaluable and belongs to the
// caller's commission specialty before any note or result access.
func (s *dossierService) AuthorizeEvaluator(userID, candidatureID uint) (*model.Candidature, error) {
	commission, _, err := s.commissionRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("error resolving commission: %w", err)
	}

	c, err := s.candidatureRepo.FindByIDWithDetails(candidatureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching dossier: %w", err)
	}
	if c.Status == model.StatusDraft {
		return nil, ErrNotFound
	}
	if c.Profile == nil || c.Profile.Specialite != commission.Specialite {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *dossierService) Get(candidatureID uint) (*dto.DossierResponse, error) {
	c, err := s.candidatureRepo.FindByIDWithDetails(candidatureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching dossier: %w", err)
	}
	return &dto.DossierResponse{Data: dossierToDTO(*c)}, nil
}

func (s *dossierService) Documents(candidatureID uint, page, perPage int) (*dto.DossierDocumentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	docs, total, err := s.documentRepo.ListForDossier(candidatureID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}

	out := &dto.DossierDocumentListResponse{
		Data: make([]dto.DossierDocumentDTO, 0, len(docs)),
		Meta: paginate(page, perPage, total),
	}
	for _, d := range docs {
		item := dto.DossierDocumentDTO{
			ID:           d.ID,
			Type:         d.Type,
			Category:     documentCategory(d.Type),
			OriginalName: d.OriginalName,
			MimeType:     d.MimeType,
			Size:         ptr(d.Size),
			IsVerified:   d.IsVerified,
			CreatedAt:    ptr(d.CreatedAt),
		}
		if d.Activite != nil {
			item.Activite = &dto.DossierDocActivite{
				ID:          d.Activite.ID,
				Type:        d.Activite.Type,
				Category:    ptr(d.Activite.Category),
				Subcategory: ptr(d.Activite.Subcategory),
			}
		}
		out.Data = append(out.Data, item)
	}
	return out, nil
}

func (s *dossierService) Transition(candidatureID uint, action string) (*dto.DossierResponse, error) {
	if _, err := s.candidatureService.Transition(candidatureID, action); err != nil {
		return nil, err
	}
	return s.Get(candidatureID)
}

func statusesFor(status string) []string {
	if status == "" || status == "all" {
		return evaluableStatuses
	}
	return []string{status}
}

func buildDossierList(items []model.Candidature, total int64, filter repository.DossierFilter) *dto.DossierListResponse {
	out := &dto.DossierListResponse{
		Data: make([]dto.DossierDTO, 0, len(items)),
	}
	out.Meta.PaginatedMeta = paginate(filter.Page, filter.PerPage, total)
	for _, c := range items {
		out.Data = append(out.Data, dossierToDTO(c))
	}
	return out
}

func dossierToDTO(c model.Candidature) dto.DossierDTO {
	d := dto.DossierDTO{
		ID:          c.ID,
		Status:      c.Status,
		CurrentStep: c.CurrentStep,
		SubmittedAt: c.SubmittedAt,
		LockedAt:    c.LockedAt,
		CreatedAt:   ptr(c.CreatedAt),
		UpdatedAt:   ptr(c.UpdatedAt),
		Candidate: dto.DossierCandidate{
			ID:    ptr(c.User.ID),
			Name:  ptr(c.User.Name),
			Email: ptr(c.User.Email),
		},
	}
	if c.Profile != nil {
		d.Profile = &dto.DossierProfile{
			Specialite:    ptr(c.Profile.Specialite),
			Etablissement: ptr(c.Profile.Etablissement),
			Nom:           ptr(c.Profile.Nom),
			Prenom:        ptr(c.Profile.Prenom),
		}
	}
	return d
}

// documentCategory buckets a stored type for display grouping.
func documentCategory(docType string) string {
	switch docType {
	case model.DocActivite:
		return "activite"
	case model.DocSigned:
		return "signature"
	default:
		return "dossier"
	}
}

func paginate(page, perPage int, total int64) dto.PaginatedMeta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	last := (total + int64(perPage) - 1) / int64(perPage)
	if last < 1 {
		last = 1
	}
	return dto.PaginatedMeta{
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		LastPage: int(last),
	}
}

func ptr[T any](v T) *T {
	return &v
}
