package repository

import (
	"time"

	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type DeadlineRepository interface {
	Create(d *model.Deadline) error
	Update(d *model.Deadline) error
	FindByID(id uint) (*model.Deadline, error)
	FindAll() ([]model.Deadline, error)
	FindActive(now time.Time) ([]model.Deadline, error)
	FindByStage(stage string) (*model.Deadline, error)
	Delete(id uint) error
}

type deadlineRepository struct {
	db *gorm.DB
}

func NewDeadlineRepository(db *gorm.DB) DeadlineRepository {
	return &deadlineRepository{db: db}
}

func (r *deadlineRepository) Create(d *model.Deadline) error {
	return r.db.Create(d).Error
}

func (r *deadlineRepository) Update(d *model.Deadline) error {
	return r.db.Save(d).Error
}

func (r *deadlineRepository) FindByID(id uint) (*model.Deadline, error) {
	var d model.Deadline
	err := r.db.First(&d, id).Error
	return &d, err
}

func (r *deadlineRepository) FindAll() ([]model.Deadline, error) {
	var list []model.Deadline
	err := r.db.Order("due_at ASC").Find(&list).Error
	return list, err
}

func (r *deadlineRepository) FindActive(now time.Time) ([]model.Deadline, error) {
	var list []model.Deadline
	err := r.db.Where("due_at > ?", now).Order("due_at ASC").Find(&list).Error
	return list, err
}

func (r *deadlineRepository) FindByStage(stage string) (*model.Deadline, error) {
	var d model.Deadline
	err := r.db.Where("stage = ?", stage).Order("due_at DESC").First(&d).Error
	return &d, err
}

func (r *deadlineRepository) Delete(id uint) error {
	return r.db.Delete(&model.Deadline{}, id).Error
}
