package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type EnseignementRepository interface {
	FindAllByCandidature(candidatureID uint) ([]model.Enseignement, error)
	Create(e *model.Enseignement) error
	Delete(candidatureID, id uint) error
	ReplaceAll(candidatureID uint, items []model.Enseignement) ([]model.Enseignement, error)
	CountByCandidature(candidatureID uint) (int64, error)
}

type enseignementRepository struct {
	db *gorm.DB
}

func NewEnseignementRepository(db *gorm.DB) EnseignementRepository {
	return &enseignementRepository{db: db}
}

func (r *enseignementRepository) FindAllByCandidature(candidatureID uint) ([]model.Enseignement, error) {
	var items []model.Enseignement
	err := r.db.Where("candidature_id = ?", candidatureID).
		Order("annee_universitaire ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *enseignementRepository) Create(e *model.Enseignement) error {
	return r.db.Create(e).Error
}

func (r *enseignementRepository) Delete(candidatureID, id uint) error {
	res := r.db.Where("candidature_id = ?", candidatureID).Delete(&model.Enseignement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceAll swaps the full enseignement set in one transaction, the bulk
// full-replace semantics of the step save.
func (r *enseignementRepository) ReplaceAll(candidatureID uint, items []model.Enseignement) ([]model.Enseignement, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidature_id = ?", candidatureID).Delete(&model.Enseignement{}).Error; err != nil {
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

func (r *enseignementRepository) CountByCandidature(candidatureID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Enseignement{}).Where("candidature_id = ?", candidatureID).Count(&n).Error
	return n, err
}
