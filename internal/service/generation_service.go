package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/adscript/adscript-backend/pkg/llm"
	"github.com/rs/zerolog"
)

// RequestTypeGeneration is the usage log type of one generation call
const RequestTypeGeneration = "integrated_script_generation"

// GenerationOptions provider parameters and spending limits
type GenerationOptions struct {
	Temperature       float32
	MaxTokens         int
	CostPer1KTokens   float64
	DailyRequestLimit int64
	DailyCostLimitJPY float64
	Location          *time.Location
}

// GenerationService drafts new scripts from learned patterns and reference scripts
type GenerationService interface {
	Generate(ctx context.Context, req *domain.GenerateScriptRequest) (*domain.GenerateScriptResponse, error)
	Usage() (*domain.DailyUsage, error)
	CheckDailyLimit() error
	AnalyzeQuality(draft domain.ScriptDraft) domain.QualityAnalysis
}

type generationService struct {
	client     llm.Client
	categories repository.CategoryRepository
	scripts    repository.ScriptRepository
	usage      repository.APIUsageRepository
	learning   LearningService
	ngWords    NGWordService
	opts       GenerationOptions
	log        zerolog.Logger
	now        func() time.Time
}

// NewGenerationService creates a new GenerationService; a nil client leaves generation unavailable
func NewGenerationService(
	client llm.Client,
	categories repository.CategoryRepository,
	scripts repository.ScriptRepository,
	usage repository.APIUsageRepository,
	learningService LearningService,
	ngWords NGWordService,
	opts GenerationOptions,
	log zerolog.Logger,
) GenerationService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &generationService{
		client:     client,
		categories: categories,
		scripts:    scripts,
		usage:      usage,
		learning:   learningService,
		ngWords:    ngWords,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

func (s *generationService) today() string {
	return s.now().In(s.opts.Location).Format(dateLayout)
}

func (s *generationService) Usage() (*domain.DailyUsage, error) {
	return s.usage.DailyUsage(s.today())
}

// CheckDailyLimit fails once today's request count or spend has reached its limit
func (s *generationService) CheckDailyLimit() error {
	usage, err := s.Usage()
	if err != nil {
		return fmt.Errorf("load daily usage: %w", err)
	}
	if s.opts.DailyRequestLimit > 0 && usage.RequestCount >= s.opts.DailyRequestLimit {
		return fmt.Errorf("%d requests today: %w", usage.RequestCount, common.ErrDailyLimitExceeded)
	}
	if s.opts.DailyCostLimitJPY > 0 && usage.TotalCost >= s.opts.DailyCostLimitJPY {
		return fmt.Errorf("%.2f JPY spent today: %w", usage.TotalCost, common.ErrDailyLimitExceeded)
	}
	return nil
}

func (s *generationService) cost(tokens int) float64 {
	return float64(tokens) / 1000 * s.opts.CostPer1KTokens
}

func (s *generationService) Generate(ctx context.Context, req *domain.GenerateScriptRequest) (*domain.GenerateScriptResponse, error) {
	if s.client == nil {
		return nil, common.ErrGeneratorUnavailable
	}
	if err := s.CheckDailyLimit(); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(req.CategoryID)
	if err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}

	references, err := s.scripts.ListEffective(domain.ScriptFilter{CategoryID: req.CategoryID, Platform: req.Platform})
	if err != nil {
		return nil, fmt.Errorf("load reference scripts: %w", err)
	}

	data, err := s.learning.LearningData(ctx, req.CategoryID, req.Platform)
	if err != nil {
		// generation proceeds on the reference scripts alone
		s.log.Warn().Err(err).Uint64("category_id", req.CategoryID).Msg("learning data unavailable")
		data = &domain.LearningData{}
	}

	words, err := s.ngWords.List(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load ng words: %w", err)
	}

	prompt, err := buildPrompt(promptInput{
		Category:       category.Name,
		TargetAudience: req.TargetAudience,
		Platform:       req.Platform,
		ScriptLength:   req.ScriptLength,
		References:     references,
		Positive:       data.Positive,
		Negative:       data.Negative,
		Analysis:       AnalyzeReferences(references),
		NGWords:        words,
	})
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	completion, err := s.client.Complete(ctx, systemPersona, prompt, llm.Params{
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	draft := parseDraft(completion.Content, category.Name)
	draft, violations, err := s.ngWords.Clean(req.CategoryID, draft)
	if err != nil {
		return nil, fmt.Errorf("clean draft: %w", err)
	}
	if len(violations) > 0 {
		s.log.Warn().Strs("violations", violations).Uint64("category_id", req.CategoryID).Msg("ng words removed from draft")
	}

	entry := &domain.APIUsageLog{
		Date:        s.today(),
		RequestType: RequestTypeGeneration,
		TokensUsed:  completion.TotalTokens,
		CostJPY:     s.cost(completion.TotalTokens),
	}
	if err := s.usage.Create(entry); err != nil {
		s.log.Error().Err(err).Msg("api usage log failed")
	}

	s.log.Info().
		Uint64("category_id", req.CategoryID).
		Str("platform", req.Platform).
		Int("references", len(references)).
		Int("positive_patterns", len(data.Positive)).
		Int("tokens", completion.TotalTokens).
		Msg("script generated")

	return &domain.GenerateScriptResponse{
		Draft:      draft,
		Violations: violations,
		Analysis:   AnalyzeQuality(draft),
		TokensUsed: completion.TotalTokens,
	}, nil
}

func (s *generationService) AnalyzeQuality(draft domain.ScriptDraft) domain.QualityAnalysis {
	return AnalyzeQuality(draft)
}

// parseDraft reads the JSON object embedded in the provider's answer.
// An unreadable answer becomes a placeholder draft carrying the raw text.
func parseDraft(content, category string) domain.ScriptDraft {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	var fields map[string]any
	if start < 0 || end < start || json.Unmarshal([]byte(content[start:end+1]), &fields) != nil {
		return domain.ScriptDraft{
			Title:         category + "の統合分析台本",
			Hook:          "効果実証済みの強力なフック",
			MainContent:   "配信結果とエキスパート分析を統合したメインコンテンツ",
			CallToAction:  "高コンバージョンが実証されたCTA",
			ScriptContent: content,
		}
	}

	field := func(key string) string {
		v, ok := fields[key]
		if !ok {
			return "統合分析による" + key
		}
		switch t := v.(type) {
		case string:
			return t
		case nil:
			return ""
		default:
			return fmt.Sprint(t)
		}
	}

	draft := domain.ScriptDraft{
		Title:        field("title"),
		Hook:         field("hook"),
		MainContent:  field("main_content"),
		CallToAction: field("call_to_action"),
	}
	if v, ok := fields["script_content"].(string); ok {
		draft.ScriptContent = v
	}
	if draft.ScriptContent == "" {
		draft.ScriptContent = fmt.Sprintf("🎣 フック: %s\n\n💬 メインコンテンツ: %s\n\n📢 CTA: %s",
			draft.Hook, draft.MainContent, draft.CallToAction)
	}
	return draft
}
