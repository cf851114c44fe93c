package repository

import (
	"errors"

	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	FindOrInit(candidatureID uint) (*model.Result, error)
	Save(r *model.Result) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) FindOrInit(candidatureID uint) (*model.Result, error) {
	var res model.Result
	err := r.db.Where("candidature_id = ?", candidatureID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Result{CandidatureID: candidatureID}, nil
	}
	return &res, err
}

func (r *resultRepository) Save(res *model.Result) error {
	return r.db.Save(res).Error
}
