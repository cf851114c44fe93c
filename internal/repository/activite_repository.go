package repository

import (
	"errors"

	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type ActiviteRepository interface {
	FindAllByType(candidatureID uint, activiteType string) ([]model.Activite, error)
	FindByID(candidatureID, id uint) (*model.Activite, error)
	Upsert(a *model.Activite) error
	Delete(candidatureID, id uint) error
	ReplaceAllOfType(candidatureID uint, activiteType string, items []model.Activite) ([]model.Activite, error)
}

type activiteRepository struct {
	db *gorm.DB
}

func NewActiviteRepository(db *gorm.DB) ActiviteRepository {
	return &activiteRepository{db: db}
}

func (r *activiteRepository) FindAllByType(candidatureID uint, activiteType string) ([]model.Activite, error) {
	var items []model.Activite
	err := r.db.Preload("Document").
		Where("candidature_id = ? AND type = ?", candidatureID, activiteType).
		Order("category ASC, subcategory ASC").
		Find(&items).Error
	return items, err
}

func (r *activiteRepository) FindByID(candidatureID, id uint) (*model.Activite, error) {
	var a model.Activite
	err := r.db.Preload("Document").Where("candidature_id = ?", candidatureID).First(&a, id).Error
	return &a, err
}

// Upsert updates the row matching (candidature, type, category, subcategory)
// or creates it, so each catalogue line exists at most once per dossier.
func (r *activiteRepository) Upsert(a *model.Activite) error {
	var existing model.Activite
	err := r.db.Where(
		"candidature_id = ? AND type = ? AND category = ? AND subcategory = ?",
		a.CandidatureID, a.Type, a.Category, a.Subcategory,
	).First(&existing).Error
	if err == nil {
		existing.Count = a.Count
		if err := r.db.Save(&existing).Error; err != nil {
			return err
		}
		*a = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(a).Error
}

func (r *activiteRepository) Delete(candidatureID, id uint) error {
	res := r.db.Where("candidature_id = ?", candidatureID).Delete(&model.Activite{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceAllOfType swaps the activity set of one type while keeping existing
// rows that reappear in the payload, so their uploaded documents survive the
// bulk save.
func (r *activiteRepository) ReplaceAllOfType(candidatureID uint, activiteType string, items []model.Activite) ([]model.Activite, error) {
	var out []model.Activite
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing []model.Activite
		if err := tx.Where("candidature_id = ? AND type = ?", candidatureID, activiteType).Find(&existing).Error; err != nil {
			return err
		}
		keyOf := func(a model.Activite) string { return a.Category + "\x00" + a.Subcategory }
		byKey := make(map[string]model.Activite, len(existing))
		for _, a := range existing {
			byKey[keyOf(a)] = a
		}
		seen := make(map[string]bool, len(items))

		for _, item := range items {
			key := keyOf(item)
			seen[key] = true
			if prev, ok := byKey[key]; ok {
				prev.Count = item.Count
				if err := tx.Save(&prev).Error; err != nil {
					return err
				}
				out = append(out, prev)
				continue
			}
			created := item
			created.CandidatureID = candidatureID
			created.Type = activiteType
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			out = append(out, created)
		}

		for key, a := range byKey {
			if !seen[key] {
				if err := tx.Delete(&model.Activite{}, a.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	return out, err
}
