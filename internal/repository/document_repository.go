package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(d *model.Document) error
	FindByID(id uint) (*model.Document, error)
	FindByIDForCandidature(candidatureID, id uint) (*model.Document, error)
	FindAllByCandidature(candidatureID uint, docType string) ([]model.Document, error)
	FindByActivite(activiteID uint) (*model.Document, error)
	FindByType(candidatureID uint, docType string) (*model.Document, error)
	Delete(id uint) error
	ListForDossier(candidatureID uint, page, perPage int) ([]model.Document, int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(d *model.Document) error {
	return r.db.Create(d).Error
}

func (r *documentRepository) FindByID(id uint) (*model.Document, error) {
	var d model.Document
	err := r.db.First(&d, id).Error
	return &d, err
}

func (r *documentRepository) FindByIDForCandidature(candidatureID, id uint) (*model.Document, error) {
	var d model.Document
	err := r.db.Where("candidature_id = ?", candidatureID).First(&d, id).Error
	return &d, err
}

func (r *documentRepository) FindAllByCandidature(candidatureID uint, docType string) ([]model.Document, error) {
	query := r.db.Where("candidature_id = ?", candidatureID)
	if docType != "" {
		query = query.Where("type = ?", docType)
	}
	var docs []model.Document
	err := query.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) FindByActivite(activiteID uint) (*model.Document, error) {
	var d model.Document
	err := r.db.Where("activite_id = ?", activiteID).First(&d).Error
	return &d, err
}

func (r *documentRepository) FindByType(candidatureID uint, docType string) (*model.Document, error) {
	var d model.Document
	err := r.db.Where("candidature_id = ? AND type = ? AND activite_id IS NULL", candidatureID, docType).First(&d).Error
	return &d, err
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}

func (r *documentRepository) ListForDossier(candidatureID uint, page, perPage int) ([]model.Document, int64, error) {
	query := r.db.Model(&model.Document{}).Where("candidature_id = ?", candidatureID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	var docs []model.Document
	err := query.Preload("Activite").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&docs).Error
	return docs, total, err
}
