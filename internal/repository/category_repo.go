package repository

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository product category data access
type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id uint64) (*domain.Category, error)
	FindAll() ([]*domain.Category, error)
	UpdateTargets(id uint64, targets domain.Targets) error
	Count() (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(id uint64) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll returns all categories ordered by name
func (r *categoryRepository) FindAll() ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Order("category_name ASC").Find(&categories).Error
	return categories, err
}

// UpdateTargets overwrites all six targets, zeros included
func (r *categoryRepository) UpdateTargets(id uint64, targets domain.Targets) error {
	result := r.db.Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"target_ctr":  targets.CTR,
			"target_cpc":  targets.CPC,
			"target_mcvr": targets.MCVR,
			"target_mcpa": targets.MCPA,
			"target_cvr":  targets.CVR,
			"target_cpa":  targets.CPA,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Category{}).Count(&count).Error
	return count, err
}
