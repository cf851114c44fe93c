package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type NoteRepository interface {
	FindAllByCandidature(candidatureID uint) ([]model.EvaluationNote, error)
	ReplaceAll(candidatureID, authorID uint, items []model.EvaluationNote) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) FindAllByCandidature(candidatureID uint) ([]model.EvaluationNote, error) {
	var notes []model.EvaluationNote
	err := r.db.Where("candidature_id = ?", candidatureID).
		Order("id ASC").
		Find(&notes).Error
	return notes, err
}

// ReplaceAll swaps the full note set for the dossier in one transaction,
// matching the full-replace save semantics of the evaluation screen.
func (r *noteRepository) ReplaceAll(candidatureID, authorID uint, items []model.EvaluationNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidature_id = ?", candidatureID).Delete(&model.EvaluationNote{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].CandidatureID = candidatureID
			items[i].AuthorID = authorID
		}
		return tx.Create(&items).Error
	})
}
