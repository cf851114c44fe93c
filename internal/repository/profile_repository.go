package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Save(p *model.Profile) error
	FindByCandidatureID(candidatureID uint) (*model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Save(p *model.Profile) error {
	return r.db.Save(p).Error
}

func (r *profileRepository) FindByCandidatureID(candidatureID uint) (*model.Profile, error) {
	var p model.Profile
	err := r.db.Where("candidature_id = ?", candidatureID).First(&p).Error
	return &p, err
}
