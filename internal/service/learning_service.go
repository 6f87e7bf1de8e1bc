package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/learning"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/adscript/adscript-backend/pkg/cache"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Minimum effectiveness of the patterns shown on reports
const ReportPatternFloor = 0.5

// LearningService owns the pattern ledger
type LearningService interface {
	// Learn folds one stored result into the ledger slice of its category and platform
	Learn(ctx context.Context, result *domain.CampaignResult) (*domain.LearningOutcome, error)
	ListPatterns(filter domain.PatternFilter) ([]*domain.Pattern, error)
	Statistics(ctx context.Context, categoryID uint64) ([]domain.PatternTypeStat, error)
	LearningData(ctx context.Context, categoryID uint64, platform string) (*domain.LearningData, error)
}

type learningService struct {
	patterns      repository.PatternRepository
	scripts       repository.ScriptRepository
	cache         cache.Service
	learnFromPoor bool
	log           zerolog.Logger

	// serializes folds within this process; the storage tx guards across processes
	mu sync.Mutex
}

// NewLearningService creates a new LearningService
func NewLearningService(
	patterns repository.PatternRepository,
	scripts repository.ScriptRepository,
	cacheService cache.Service,
	learnFromPoor bool,
	log zerolog.Logger,
) LearningService {
	return &learningService{
		patterns:      patterns,
		scripts:       scripts,
		cache:         cacheService,
		learnFromPoor: learnFromPoor,
		log:           log,
	}
}

func (s *learningService) Learn(ctx context.Context, result *domain.CampaignResult) (*domain.LearningOutcome, error) {
	if result == nil {
		return nil, fmt.Errorf("no campaign result to learn from: %w", common.ErrInvalidInput)
	}
	if !result.IsGoodPerformance && !s.learnFromPoor {
		return &domain.LearningOutcome{Message: "result below target; patterns unchanged"}, nil
	}

	ref := result.Ref()
	categoryID, platform := result.CategoryID, result.Platform

	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.scripts.Text(ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn().Str("script", ref.String()).Msg("script missing, nothing to learn")
		return &domain.LearningOutcome{Message: "script not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load script text: %w", err)
	}

	tokens := learning.Extract(text.Hook, text.MainContent, text.CallToAction)
	weighted := learning.Contribution(result.PerformanceScore, result.SpendAmount, result.IsGoodPerformance)
	key := repository.PatternKey{CategoryID: categoryID, Platform: platform}

	err = s.patterns.Fold(ctx, key, tokens, weighted)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// another writer inserted the same key first; the retry takes the update path
		err = s.patterns.Fold(ctx, key, tokens, weighted)
	}
	if err != nil {
		learning.ObserveFoldFailure()
		return nil, fmt.Errorf("fold patterns: %w", err)
	}
	learning.ObserveFold(result.IsGoodPerformance, len(tokens))

	if err := s.cache.InvalidateLearning(ctx, categoryID, platform); err != nil {
		s.log.Warn().Err(err).Uint64("category_id", categoryID).Str("platform", platform).Msg("learning cache invalidation failed")
	}

	s.log.Info().
		Uint64("result_id", result.ID).
		Str("script", ref.String()).
		Uint64("category_id", categoryID).
		Str("platform", platform).
		Int("patterns", len(tokens)).
		Float64("weighted_score", weighted).
		Msg("patterns updated")

	return &domain.LearningOutcome{
		Updated:  len(tokens) > 0,
		Patterns: len(tokens),
		Message:  fmt.Sprintf("%d patterns updated", len(tokens)),
	}, nil
}

func (s *learningService) ListPatterns(filter domain.PatternFilter) ([]*domain.Pattern, error) {
	return s.patterns.List(filter)
}

func (s *learningService) Statistics(ctx context.Context, categoryID uint64) ([]domain.PatternTypeStat, error) {
	key := cache.StatsKey(categoryID)

	var stats []domain.PatternTypeStat
	if err := s.cache.Get(ctx, key, &stats); err == nil {
		return stats, nil
	}

	stats, err := s.patterns.Statistics(categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, stats, cache.TTLShort); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
	return stats, nil
}

// LearningData returns the ranked positive and negative patterns used to steer generation
func (s *learningService) LearningData(ctx context.Context, categoryID uint64, platform string) (*domain.LearningData, error) {
	var data domain.LearningData
	if err := s.cache.GetLearningData(ctx, categoryID, platform, &data); err == nil {
		return &data, nil
	}

	key := repository.PatternKey{CategoryID: categoryID, Platform: platform}
	positive, err := s.patterns.Positive(key, repository.PositivePatternLimit)
	if err != nil {
		return nil, fmt.Errorf("load positive patterns: %w", err)
	}
	negative, err := s.patterns.Negative(key, repository.NegativePatternLimit)
	if err != nil {
		return nil, fmt.Errorf("load negative patterns: %w", err)
	}

	data = domain.LearningData{
		Positive: ranked(positive),
		Negative: ranked(negative),
	}
	if err := s.cache.SetLearningData(ctx, categoryID, platform, &data); err != nil {
		s.log.Debug().Err(err).Msg("learning cache set failed")
	}
	return &data, nil
}

func ranked(patterns []*domain.Pattern) []domain.RankedPattern {
	out := make([]domain.RankedPattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, domain.RankedPattern{
			PatternType:        p.PatternType,
			PatternContent:     p.PatternContent,
			EffectivenessScore: p.EffectivenessScore,
			FrequencyCount:     p.FrequencyCount,
		})
	}
	return out
}
