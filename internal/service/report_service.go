package service

import (
	"context"
	"time"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
)

const reportTopPatterns = 10

// ReportService dashboard aggregates
type ReportService interface {
	Overview() (*domain.Overview, error)
	CategoryReport(ctx context.Context, categoryID uint64) (*domain.CategoryReport, error)
}

type reportService struct {
	categories repository.CategoryRepository
	scripts    repository.ScriptRepository
	campaigns  repository.CampaignRepository
	patterns   repository.PatternRepository
	learning   LearningService
	loc        *time.Location
}

// NewReportService creates a new ReportService; trend days are cut in loc
func NewReportService(
	categories repository.CategoryRepository,
	scripts repository.ScriptRepository,
	campaigns repository.CampaignRepository,
	patterns repository.PatternRepository,
	learningService LearningService,
	loc *time.Location,
) ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{
		categories: categories,
		scripts:    scripts,
		campaigns:  campaigns,
		patterns:   patterns,
		learning:   learningService,
		loc:        loc,
	}
}

func (s *reportService) Overview() (*domain.Overview, error) {
	var (
		o   domain.Overview
		err error
	)
	if o.EffectiveScripts, err = s.scripts.CountEffective(0); err != nil {
		return nil, err
	}
	if o.Categories, err = s.categories.Count(); err != nil {
		return nil, err
	}
	if o.GeneratedScripts, err = s.scripts.CountGenerated(0); err != nil {
		return nil, err
	}
	if o.CampaignResults, err = s.campaigns.Count(); err != nil {
		return nil, err
	}
	if o.Patterns, err = s.patterns.Count(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *reportService) CategoryReport(ctx context.Context, categoryID uint64) (*domain.CategoryReport, error) {
	category, err := s.categories.FindByID(categoryID)
	if err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}

	report := &domain.CategoryReport{Category: category}
	if report.EffectiveScripts, err = s.scripts.CountEffective(categoryID); err != nil {
		return nil, err
	}
	if report.GeneratedScripts, err = s.scripts.CountGenerated(categoryID); err != nil {
		return nil, err
	}

	summary, err := s.campaigns.Summary(domain.CampaignFilter{CategoryID: categoryID, Performance: domain.PerformanceAll})
	if err != nil {
		return nil, err
	}
	report.Results = *summary

	if report.Statistics, err = s.learning.Statistics(ctx, categoryID); err != nil {
		return nil, err
	}
	if report.TopPatterns, err = s.learning.ListPatterns(domain.PatternFilter{
		CategoryID:       categoryID,
		MinEffectiveness: ReportPatternFloor,
		Limit:            reportTopPatterns,
	}); err != nil {
		return nil, err
	}

	results, err := s.campaigns.ScoresSince(categoryID, time.Time{})
	if err != nil {
		return nil, err
	}
	report.Trend = dailyTrend(results, s.loc)

	return report, nil
}

// dailyTrend averages performance scores per local calendar day, oldest first.
// results must be ordered by created_at ascending.
func dailyTrend(results []*domain.CampaignResult, loc *time.Location) []domain.TrendPoint {
	trend := []domain.TrendPoint{}
	var sum float64
	for _, r := range results {
		day := r.CreatedAt.In(loc).Format(dateLayout)
		if n := len(trend); n == 0 || trend[n-1].Date != day {
			if n > 0 {
				trend[n-1].AvgScore = sum / float64(trend[n-1].Count)
			}
			trend = append(trend, domain.TrendPoint{Date: day})
			sum = 0
		}
		trend[len(trend)-1].Count++
		sum += r.PerformanceScore
	}
	if n := len(trend); n > 0 {
		trend[n-1].AvgScore = sum / float64(trend[n-1].Count)
	}
	return trend
}
