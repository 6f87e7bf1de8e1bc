package repository

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// APIUsageRepository provider usage log data access
type APIUsageRepository interface {
	Create(log *domain.APIUsageLog) error
	DailyUsage(date string) (*domain.DailyUsage, error)
}

type apiUsageRepository struct {
	db *gorm.DB
}

// NewAPIUsageRepository creates a new APIUsageRepository
func NewAPIUsageRepository(db *gorm.DB) APIUsageRepository {
	return &apiUsageRepository{db: db}
}

func (r *apiUsageRepository) Create(log *domain.APIUsageLog) error {
	return r.db.Create(log).Error
}

// DailyUsage aggregates one day's log; date is YYYY-MM-DD
func (r *apiUsageRepository) DailyUsage(date string) (*domain.DailyUsage, error) {
	var usage domain.DailyUsage
	err := r.db.Model(&domain.APIUsageLog{}).
		Select("COUNT(*) AS request_count, COALESCE(SUM(tokens_used), 0) AS total_tokens, COALESCE(SUM(cost_jpy), 0) AS total_cost").
		Where("date = ?", date).
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}
