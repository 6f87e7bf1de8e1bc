package repository

import (
	"time"

	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// CampaignRepository campaign result data access
type CampaignRepository interface {
	Create(result *domain.CampaignResult) error
	List(filter domain.CampaignFilter) ([]*domain.CampaignResult, error)
	Summary(filter domain.CampaignFilter) (*domain.CampaignSummary, error)
	Count() (int64, error)
	ScoresSince(categoryID uint64, since time.Time) ([]*domain.CampaignResult, error)
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(result *domain.CampaignResult) error {
	return r.db.Create(result).Error
}

func applyCampaignFilter(q *gorm.DB, filter domain.CampaignFilter) *gorm.DB {
	if filter.CategoryID != 0 {
		q = q.Where("cr.category_id = ?", filter.CategoryID)
	}
	if filter.Platform != "" {
		q = q.Where("cr.platform = ?", filter.Platform)
	}
	switch filter.Performance {
	case domain.PerformanceGood:
		q = q.Where("cr.is_good_performance = ?", true)
	case domain.PerformancePoor:
		q = q.Where("cr.is_good_performance = ?", false)
	}
	return q
}

// List returns results newest first with category name and script title
func (r *campaignRepository) List(filter domain.CampaignFilter) ([]*domain.CampaignResult, error) {
	var results []*domain.CampaignResult
	q := r.db.Table("campaign_results AS cr").
		Select("cr.*, pc.category_name, COALESCE(es.title, gs.title, '') AS script_title").
		Joins("LEFT JOIN product_categories pc ON pc.id = cr.category_id").
		Joins("LEFT JOIN effective_scripts es ON cr.script_type = ? AND es.id = cr.script_id", domain.ScriptTypeEffective).
		Joins("LEFT JOIN generated_scripts gs ON cr.script_type = ? AND gs.id = cr.script_id", domain.ScriptTypeGenerated)
	err := applyCampaignFilter(q, filter).
		Order("cr.created_at DESC, cr.id DESC").
		Find(&results).Error
	return results, err
}

// Summary counts total and good results under the filter
func (r *campaignRepository) Summary(filter domain.CampaignFilter) (*domain.CampaignSummary, error) {
	var row struct {
		Total int64
		Good  int64
	}
	q := r.db.Table("campaign_results AS cr").
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN cr.is_good_performance THEN 1 ELSE 0 END), 0) AS good")
	if err := applyCampaignFilter(q, filter).Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &domain.CampaignSummary{Total: row.Total, Good: row.Good}
	if row.Total > 0 {
		summary.GoodRate = float64(row.Good) / float64(row.Total)
	}
	return summary, nil
}

func (r *campaignRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.CampaignResult{}).Count(&count).Error
	return count, err
}

// ScoresSince returns created_at and score of a category's results, oldest first
func (r *campaignRepository) ScoresSince(categoryID uint64, since time.Time) ([]*domain.CampaignResult, error) {
	var results []*domain.CampaignResult
	q := r.db.Select("id, created_at, performance_score, is_good_performance").
		Where("category_id = ?", categoryID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Order("created_at ASC, id ASC").Find(&results).Error
	return results, err
}
