package repository

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// PlatformRepository ad platform data access
type PlatformRepository interface {
	Create(platform *domain.Platform) error
	FindByID(id uint64) (*domain.Platform, error)
	FindActive() ([]*domain.Platform, error)
	FindAll() ([]*domain.Platform, error)
	Update(id uint64, fields map[string]interface{}) error
	Deactivate(id uint64) error
	UsageCounts() (*domain.PlatformUsage, error)
}

type platformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository creates a new PlatformRepository
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

func (r *platformRepository) Create(platform *domain.Platform) error {
	return r.db.Create(platform).Error
}

func (r *platformRepository) FindByID(id uint64) (*domain.Platform, error) {
	var platform domain.Platform
	if err := r.db.First(&platform, id).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

// FindActive returns active platforms by sort order
func (r *platformRepository) FindActive() ([]*domain.Platform, error) {
	var platforms []*domain.Platform
	err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC, platform_name ASC").
		Find(&platforms).Error
	return platforms, err
}

func (r *platformRepository) FindAll() ([]*domain.Platform, error) {
	var platforms []*domain.Platform
	err := r.db.Order("sort_order ASC, platform_name ASC").Find(&platforms).Error
	return platforms, err
}

func (r *platformRepository) Update(id uint64, fields map[string]interface{}) error {
	result := r.db.Model(&domain.Platform{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate logical delete; rows stay referenced by scripts and results
func (r *platformRepository) Deactivate(id uint64) error {
	return r.Update(id, map[string]interface{}{"is_active": false})
}

// UsageCounts counts platform values across scripts and campaign results
func (r *platformRepository) UsageCounts() (*domain.PlatformUsage, error) {
	usage := &domain.PlatformUsage{}
	targets := []struct {
		table string
		dest  *[]domain.PlatformCount
	}{
		{"effective_scripts", &usage.EffectiveScripts},
		{"generated_scripts", &usage.GeneratedScripts},
		{"campaign_results", &usage.CampaignResults},
	}

	for _, t := range targets {
		err := r.db.Table(t.table).
			Select("platform, COUNT(*) AS count").
			Group("platform").
			Order("count DESC, platform ASC").
			Scan(t.dest).Error
		if err != nil {
			return nil, err
		}
	}
	return usage, nil
}
