package repository

import (
	"time"

	"github.com/hzerradi/avancement-api/internal/model"
	"gorm.io/gorm"
)

// DossierFilter narrows back-office listings. Specialite restricts to
// dossiers whose profile matches a commission's specialty; Statuses
// restricts the lifecycle states returned.
type DossierFilter struct {
	Specialite string
	Statuses   []string
	Page       int
	PerPage    int
}

type CandidatureRepository interface {
	Create(c *model.Candidature) error
	Update(c *model.Candidature) error
	FindByID(id uint) (*model.Candidature, error)
	FindByIDWithDetails(id uint) (*model.Candidature, error)
	FindByUserID(userID uint) (*model.Candidature, error)
	ListDossiers(filter DossierFilter) ([]model.Candidature, int64, error)
	CountByStatus() (map[string]int64, error)
	CountCreatedSince(since time.Time) (map[string]int64, error)
	CountSubmittedSince(since time.Time) (map[string]int64, error)
}

type candidatureRepository struct {
	db *gorm.DB
}

func NewCandidatureRepository(db *gorm.DB) CandidatureRepository {
	return &candidatureRepository{db: db}
}

func (r *candidatureRepository) Create(c *model.Candidature) error {
	return r.db.Create(c).Error
}

func (r *candidatureRepository) Update(c *model.Candidature) error {
	return r.db.Save(c).Error
}

func (r *candidatureRepository) FindByID(id uint) (*model.Candidature, error) {
	var c model.Candidature
	err := r.db.First(&c, id).Error
	return &c, err
}

func (r *candidatureRepository) FindByIDWithDetails(id uint) (*model.Candidature, error) {
	var c model.Candidature
	err := r.db.
		Preload("User").
		Preload("Profile").
		Preload("Enseignements").
		Preload("Pfes").
		Preload("Activites.Document").
		Preload("Documents").
		First(&c, id).Error
	return &c, err
}

func (r *candidatureRepository) FindByUserID(userID uint) (*model.Candidature, error) {
	var c model.Candidature
	err := r.db.Preload("Profile").Where("user_id = ?", userID).First(&c).Error
	return &c, err
}

func (r *candidatureRepository) ListDossiers(filter DossierFilter) ([]model.Candidature, int64, error) {
	query := r.db.Model(&model.Candidature{}).
		Joins("LEFT JOIN profiles ON profiles.candidature_id = candidatures.id AND profiles.deleted_at IS NULL")

	if filter.Specialite != "" {
		query = query.Where("profiles.specialite = ?", filter.Specialite)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("candidatures.status IN ?", filter.Statuses)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 15
	}

	var dossiers []model.Candidature
	err := query.
		Preload("User").
		Preload("Profile").
		Order("candidatures.submitted_at DESC NULLS LAST, candidatures.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&dossiers).Error
	return dossiers, total, err
}

func (r *candidatureRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.Model(&model.Candidature{}).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *candidatureRepository) CountCreatedSince(since time.Time) (map[string]int64, error) {
	return r.countByDay("created_at", since)
}

func (r *candidatureRepository) CountSubmittedSince(since time.Time) (map[string]int64, error) {
	return r.countByDay("submitted_at", since)
}

func (r *candidatureRepository) countByDay(column string, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Day string
		N   int64
	}
	err := r.db.Model(&model.Candidature{}).
		Select("DATE("+column+") as day, COUNT(*) as n").
		Where(column+" >= ?", since).
		Group("DATE(" + column + ")").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Day] = row.N
	}
	return out, nil
}
