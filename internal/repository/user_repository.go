package repository

import (
	"time"

	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(page, perPage int, role string) ([]model.User, int64, error)
	Delete(id uint) error
	CountByRole(role string) (int64, error)
	RecentByRole(role string, limit int) ([]model.User, error)
	CreatedSince(role string, since time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *model.User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var u model.User
	err := r.db.First(&u, id).Error
	return &u, err
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *userRepository) List(page, perPage int, role string) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
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
	var users []model.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}

func (r *userRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (r *userRepository) RecentByRole(role string, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ?", role).Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) CreatedSince(role string, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.User{}).
		Where("role = ? AND created_at >= ?", role, since).
		Count(&n).Error
	return n, err
}
