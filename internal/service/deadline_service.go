package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"gorm.io/gorm"
)

type DeadlineService interface {
	ListActive() (*dto.DeadlineListResponse, error)
	ListAll() (*dto.DeadlineListResponse, error)
	Create(req dto.DeadlineCreateRequest) (*dto.DeadlineDTO, error)
	Update(id uint, req dto.DeadlineUpdateRequest) (*dto.DeadlineDTO, error)
	Delete(id uint) error
}

type deadlineService struct {
	deadlineRepo repository.DeadlineRepository
}

func NewDeadlineService(deadlineRepo repository.DeadlineRepository) DeadlineService {
	return &deadlineService{deadlineRepo: deadlineRepo}
}

// ListActive returns deadlines still ahead of now, for candidate banners.
func (s *deadlineService) ListActive() (*dto.DeadlineListResponse, error) {
	now := time.Now()
	items, err := s.deadlineRepo.FindActive(now)
	if err != nil {
		return nil, fmt.Errorf("error fetching deadlines: %w", err)
	}
	return deadlineList(items, now), nil
}

func (s *deadlineService) ListAll() (*dto.DeadlineListResponse, error) {
	items, err := s.deadlineRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching deadlines: %w", err)
	}
	return deadlineList(items, time.Now()), nil
}

func (s *deadlineService) Create(req dto.DeadlineCreateRequest) (*dto.DeadlineDTO, error) {
	d := model.Deadline{
		Stage:           req.Stage,
		DueAt:           req.DueAt,
		ReminderEnabled: req.ReminderEnabled,
	}
	if err := s.deadlineRepo.Create(&d); err != nil {
		return nil, fmt.Errorf("error creating deadline: %w", err)
	}
	return deadlineToDTO(&d, time.Now()), nil
}

func (s *deadlineService) Update(id uint, req dto.DeadlineUpdateRequest) (*dto.DeadlineDTO, error) {
	d, err := s.deadlineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching deadline: %w", err)
	}
	if req.Stage != nil {
		d.Stage = *req.Stage
	}
	if req.DueAt != nil {
		d.DueAt = *req.DueAt
	}
	if req.ReminderEnabled != nil {
		d.ReminderEnabled = *req.ReminderEnabled
	}
	if err := s.deadlineRepo.Update(d); err != nil {
		return nil, fmt.Errorf("error updating deadline: %w", err)
	}
	return deadlineToDTO(d, time.Now()), nil
}

func (s *deadlineService) Delete(id uint) error {
	return s.deadlineRepo.Delete(id)
}

func deadlineList(items []model.Deadline, now time.Time) *dto.DeadlineListResponse {
	out := &dto.DeadlineListResponse{Data: make([]dto.DeadlineDTO, 0, len(items))}
	for i := range items {
		out.Data = append(out.Data, *deadlineToDTO(&items[i], now))
	}
	return out
}
