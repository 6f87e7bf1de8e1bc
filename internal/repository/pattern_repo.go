package repository

import (
	"context"
	"errors"
	"time"

	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/learning"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger limits for the generation read path
const (
	PositivePatternLimit = 20
	NegativePatternLimit = 10
)

// PatternKey the ledger slice one campaign result folds into
type PatternKey struct {
	CategoryID uint64
	Platform   string
}

// PatternRepository learning pattern ledger data access
type PatternRepository interface {
	// Fold adds one weighted observation to every token's running mean in a single transaction
	Fold(ctx context.Context, key PatternKey, tokens []learning.Token, weighted float64) error
	List(filter domain.PatternFilter) ([]*domain.Pattern, error)
	Statistics(categoryID uint64) ([]domain.PatternTypeStat, error)
	Positive(key PatternKey, limit int) ([]*domain.Pattern, error)
	Negative(key PatternKey, limit int) ([]*domain.Pattern, error)
	Count() (int64, error)
}

type patternRepository struct {
	db *gorm.DB
}

// NewPatternRepository creates a new PatternRepository
func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) Fold(ctx context.Context, key PatternKey, tokens []learning.Token, weighted float64) error {
	if len(tokens) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, tok := range tokens {
			var p domain.Pattern
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("category_id = ? AND platform = ? AND pattern_type = ? AND pattern_content = ?",
					key.CategoryID, key.Platform, tok.Type, tok.Content).
				Take(&p).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				p = domain.Pattern{
					CategoryID:         key.CategoryID,
					Platform:           key.Platform,
					PatternType:        tok.Type,
					PatternContent:     tok.Content,
					EffectivenessScore: weighted,
					FrequencyCount:     1,
					LastUpdated:        now,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				score, count := learning.FoldMean(p.EffectivenessScore, p.FrequencyCount, weighted)
				err := tx.Model(&domain.Pattern{}).
					Where("id = ?", p.ID).
					Updates(map[string]interface{}{
						"effectiveness_score": score,
						"frequency_count":     count,
						"last_updated":        now,
					}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// List returns patterns at or above the floor, best first
func (r *patternRepository) List(filter domain.PatternFilter) ([]*domain.Pattern, error) {
	var patterns []*domain.Pattern
	q := r.db.Where("effectiveness_score >= ?", filter.MinEffectiveness)
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	q = q.Order("effectiveness_score DESC, frequency_count DESC, id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Find(&patterns).Error
	return patterns, err
}

// Statistics groups the ledger by pattern type; categoryID 0 covers all categories
func (r *patternRepository) Statistics(categoryID uint64) ([]domain.PatternTypeStat, error) {
	var stats []domain.PatternTypeStat
	q := r.db.Model(&domain.Pattern{}).
		Select("pattern_type, COUNT(*) AS count, AVG(effectiveness_score) AS avg_score")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Group("pattern_type").Order("avg_score DESC").Scan(&stats).Error
	return stats, err
}

func (r *patternRepository) Positive(key PatternKey, limit int) ([]*domain.Pattern, error) {
	var patterns []*domain.Pattern
	err := r.db.Where("category_id = ? AND platform = ? AND effectiveness_score > 0", key.CategoryID, key.Platform).
		Order("effectiveness_score DESC, frequency_count DESC, id ASC").
		Limit(limit).
		Find(&patterns).Error
	return patterns, err
}

func (r *patternRepository) Negative(key PatternKey, limit int) ([]*domain.Pattern, error) {
	var patterns []*domain.Pattern
	err := r.db.Where("category_id = ? AND platform = ? AND effectiveness_score < 0", key.CategoryID, key.Platform).
		Order("effectiveness_score ASC, id ASC").
		Limit(limit).
		Find(&patterns).Error
	return patterns, err
}

func (r *patternRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Pattern{}).Count(&count).Error
	return count, err
}
