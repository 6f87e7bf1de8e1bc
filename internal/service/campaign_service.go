package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/learning"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// CampaignService records campaign results and judges them against category targets
type CampaignService interface {
	Record(ctx context.Context, req *domain.RecordCampaignResultRequest) (*domain.RecordCampaignResultResponse, error)
	List(filter domain.CampaignFilter) ([]*domain.CampaignResult, error)
	Summary(filter domain.CampaignFilter) (*domain.CampaignSummary, error)
}

type campaignService struct {
	repo       repository.CampaignRepository
	categories repository.CategoryRepository
	scripts    ScriptService
	learning   LearningService
	log        zerolog.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	repo repository.CampaignRepository,
	categories repository.CategoryRepository,
	scripts ScriptService,
	learningService LearningService,
	log zerolog.Logger,
) CampaignService {
	return &campaignService{
		repo:       repo,
		categories: categories,
		scripts:    scripts,
		learning:   learningService,
		log:        log,
	}
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, common.ErrInvalidInput)
	}
	return &t, nil
}

// Record stores the result with its frozen verdict, then lets the ledger learn from it.
// A ledger failure does not undo the stored result.
func (s *campaignService) Record(ctx context.Context, req *domain.RecordCampaignResultRequest) (*domain.RecordCampaignResultResponse, error) {
	ref := domain.ScriptRef{ID: req.ScriptID, Type: req.ScriptType}
	if !ref.Type.Valid() {
		return nil, fmt.Errorf("unknown script type %q: %w", ref.Type, common.ErrInvalidInput)
	}

	categoryID, platform, err := s.scripts.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != 0 {
		categoryID = req.CategoryID
	}
	if req.Platform != "" {
		platform = req.Platform
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("end date before start date: %w", common.ErrInvalidInput)
	}

	var targets learning.Targets
	category, err := s.categories.FindByID(categoryID)
	if err != nil {
		// without targets nothing can be satisfied, so the result is judged poor with score 0
		s.log.Warn().Err(err).Uint64("category_id", categoryID).Msg("category targets unavailable")
	} else {
		targets = category.Targets.ForJudge()
	}

	observed := req.Metrics.Observed()
	verdict := learning.Judge(observed, targets)
	learning.ObserveVerdict(verdict)

	result := &domain.CampaignResult{
		ScriptID:            ref.ID,
		ScriptType:          ref.Type,
		CategoryID:          categoryID,
		Platform:            platform,
		CTR:                 learning.Coerce(observed[learning.MetricCTR]).Float(),
		CPC:                 learning.Coerce(observed[learning.MetricCPC]).Float(),
		MCVR:                learning.Coerce(observed[learning.MetricMCVR]).Float(),
		MCPA:                learning.Coerce(observed[learning.MetricMCPA]).Float(),
		CVR:                 learning.Coerce(observed[learning.MetricCVR]).Float(),
		CPA:                 learning.Coerce(observed[learning.MetricCPA]).Float(),
		SpendAmount:         req.SpendAmount,
		Impressions:         req.Impressions,
		Clicks:              req.Clicks,
		Conversions:         req.Conversions,
		CampaignPeriodStart: start,
		CampaignPeriodEnd:   end,
		IsGoodPerformance:   verdict.Good,
		PerformanceScore:    verdict.Score,
	}
	if err := s.repo.Create(result); err != nil {
		return nil, fmt.Errorf("store campaign result: %w", err)
	}

	s.log.Info().
		Uint64("result_id", result.ID).
		Str("script", ref.String()).
		Bool("good", verdict.Good).
		Float64("score", verdict.Score).
		Int("satisfied", verdict.Satisfied).
		Msg("campaign result recorded")

	resp := &domain.RecordCampaignResultResponse{Result: result}
	outcome, err := s.learning.Learn(ctx, result)
	if err != nil {
		s.log.Error().Err(err).Uint64("result_id", result.ID).Msg("learning update failed")
		resp.Learning = domain.LearningOutcome{Message: "learning update failed; result was saved"}
		return resp, nil
	}
	resp.Learning = *outcome
	return resp, nil
}

func (s *campaignService) List(filter domain.CampaignFilter) ([]*domain.CampaignResult, error) {
	return s.repo.List(filter)
}

func (s *campaignService) Summary(filter domain.CampaignFilter) (*domain.CampaignSummary, error) {
	return s.repo.Summary(filter)
}
