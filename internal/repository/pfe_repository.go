package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type PfeRepository interface {
	FindAllByCandidature(candidatureID uint) ([]model.Pfe, error)
	Create(p *model.Pfe) error
	Update(p *model.Pfe) error
	FindByID(candidatureID, id uint) (*model.Pfe, error)
	Delete(candidatureID, id uint) error
	ReplaceAll(candidatureID uint, items []model.Pfe) ([]model.Pfe, error)
	CountByCandidature(candidatureID uint) (int64, error)
}

type pfeRepository struct {
	db *gorm.DB
}

func NewPfeRepository(db *gorm.DB) PfeRepository {
	return &pfeRepository{db: db}
}

func (r *pfeRepository) FindAllByCandidature(candidatureID uint) ([]model.Pfe, error) {
	var items []model.Pfe
	err := r.db.Where("candidature_id = ?", candidatureID).
		Order("annee_universitaire ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *pfeRepository) Create(p *model.Pfe) error {
	return r.db.Create(p).Error
}

func (r *pfeRepository) Update(p *model.Pfe) error {
	return r.db.Save(p).Error
}

func (r *pfeRepository) FindByID(candidatureID, id uint) (*model.Pfe, error) {
	var p model.Pfe
	err := r.db.Where("candidature_id = ?", candidatureID).First(&p, id).Error
	return &p, err
}

func (r *pfeRepository) Delete(candidatureID, id uint) error {
	res := r.db.Where("candidature_id = ?", candidatureID).Delete(&model.Pfe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pfeRepository) ReplaceAll(candidatureID uint, items []model.Pfe) ([]model.Pfe, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidature_id = ?", candidatureID).Delete(&model.Pfe{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].CandidatureID = candidatureID
		}
		return tx.Create(&items).Error
	})
	return items, err
}

func (r *pfeRepository) CountByCandidature(candidatureID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Pfe{}).Where("candidature_id = ?", candidatureID).Count(&n).Error
	return n, err
}
