package repository

import (
	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type CommissionRepository interface {
	Create(c *model.Commission) error
	FindByID(id uint) (*model.Commission, error)
	FindAll() ([]model.Commission, error)
	FindByUserID(userID uint) (*model.Commission, *model.CommissionUser, error)
	AddMember(m *model.CommissionUser) error
	RemoveMember(commissionID, memberID uint) error
	Members(commissionID uint) ([]model.CommissionUser, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(c *model.Commission) error {
	return r.db.Create(c).Error
}

func (r *commissionRepository) FindByID(id uint) (*model.Commission, error) {
	var c model.Commission
	err := r.db.Preload("Members.User").First(&c, id).Error
	return &c, err
}

func (r *commissionRepository) FindAll() ([]model.Commission, error) {
	var list []model.Commission
	err := r.db.Preload("Members").Order("specialite ASC").Find(&list).Error
	return list, err
}

// FindByUserID resolves the commission a user sits on, the scoping handle
// for every commission/président listing.
func (r *commissionRepository) FindByUserID(userID uint) (*model.Commission, *model.CommissionUser, error) {
	var member model.CommissionUser
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, nil, err
	}
	var c model.Commission
	if err := r.db.First(&c, member.CommissionID).Error; err != nil {
		return nil, nil, err
	}
	return &c, &member, nil
}

func (r *commissionRepository) AddMember(m *model.CommissionUser) error {
	return r.db.Create(m).Error
}

func (r *commissionRepository) RemoveMember(commissionID, memberID uint) error {
	res := r.db.Where("commission_id = ?", commissionID).Delete(&model.CommissionUser{}, memberID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commissionRepository) Members(commissionID uint) ([]model.CommissionUser, error) {
	var members []model.CommissionUser
	err := r.db.Preload("User").
		Where("commission_id = ?", commissionID).
		Order("is_president DESC, id ASC").
		Find(&members).Error
	return members, err
}
