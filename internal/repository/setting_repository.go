package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type SettingRepository interface {
	Get() (*model.Setting, error)
	Save(s *model.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the single settings row, creating it with defaults on first use.
func (r *settingRepository) Get() (*model.Setting, error) {
	var s model.Setting
	err := r.db.First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = model.Setting{AppName: "Avancement", CandidatureOpen: true}
		if err := r.db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingRepository) Save(s *model.Setting) error {
	return r.db.Save(s).Error
}
