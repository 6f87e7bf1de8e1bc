package service

import (
	"context"
	"testing"

	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/learning"
	"github.com/adscript/adscript-backend/internal/migration"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/adscript/adscript-backend/pkg/cache"
	"github.com/adscript/adscript-backend/pkg/llm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testRepos struct {
	db         *gorm.DB
	categories repository.CategoryRepository
	scripts    repository.ScriptRepository
	campaigns  repository.CampaignRepository
	patterns   repository.PatternRepository
	ngWords    repository.NGWordRepository
	usage      repository.APIUsageRepository
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migration.Models()...))

	return &testRepos{
		db:         db,
		categories: repository.NewCategoryRepository(db),
		scripts:    repository.NewScriptRepository(db),
		campaigns:  repository.NewCampaignRepository(db),
		patterns:   repository.NewPatternRepository(db),
		ngWords:    repository.NewNGWordRepository(db),
		usage:      repository.NewAPIUsageRepository(db),
	}
}

func (r *testRepos) learning(learnFromPoor bool) LearningService {
	return NewLearningService(r.patterns, r.scripts, cache.NewService(nil, 0), learnFromPoor, zerolog.Nop())
}

func seedCategory(t *testing.T, r *testRepos, name string, targets domain.Targets) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Targets: targets}
	require.NoError(t, r.categories.Create(c))
	return c
}

func seedEffective(t *testing.T, r *testRepos, categoryID uint64, platform, hook, main, cta string) *domain.EffectiveScript {
	t.Helper()
	s := &domain.EffectiveScript{
		CategoryID:    categoryID,
		Title:         "参考台本",
		Hook:          hook,
		MainContent:   main,
		CallToAction:  cta,
		ScriptContent: domain.ComposeScriptContent(hook, main, cta),
		Platform:      platform,
	}
	require.NoError(t, r.scripts.CreateEffective(s))
	return s
}

func standardTargets() domain.Targets {
	return domain.Targets{CTR: 2.0, CPC: 100, MCVR: 1.0, MCPA: 2000, CVR: 0.5, CPA: 3000}
}

// MockLLMClient is a mock implementation of llm.Client
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, system, user string, params llm.Params) (*llm.Completion, error) {
	args := m.Called(ctx, system, user, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Completion), args.Error(1)
}

// MockLearningService is a mock implementation of LearningService
type MockLearningService struct {
	mock.Mock
}

func (m *MockLearningService) Learn(ctx context.Context, result *domain.CampaignResult) (*domain.LearningOutcome, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningOutcome), args.Error(1)
}

func (m *MockLearningService) ListPatterns(filter domain.PatternFilter) ([]*domain.Pattern, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pattern), args.Error(1)
}

func (m *MockLearningService) Statistics(ctx context.Context, categoryID uint64) ([]domain.PatternTypeStat, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PatternTypeStat), args.Error(1)
}

func (m *MockLearningService) LearningData(ctx context.Context, categoryID uint64, platform string) (*domain.LearningData, error) {
	args := m.Called(ctx, categoryID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningData), args.Error(1)
}

// MockPatternRepository is a mock implementation of repository.PatternRepository
type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Fold(ctx context.Context, key repository.PatternKey, tokens []learning.Token, weighted float64) error {
	args := m.Called(ctx, key, tokens, weighted)
	return args.Error(0)
}

func (m *MockPatternRepository) List(filter domain.PatternFilter) ([]*domain.Pattern, error) {
	args := m.Called(filter)
	return args.Get(0).([]*domain.Pattern), args.Error(1)
}

func (m *MockPatternRepository) Statistics(categoryID uint64) ([]domain.PatternTypeStat, error) {
	args := m.Called(categoryID)
	return args.Get(0).([]domain.PatternTypeStat), args.Error(1)
}

func (m *MockPatternRepository) Positive(key repository.PatternKey, limit int) ([]*domain.Pattern, error) {
	args := m.Called(key, limit)
	return args.Get(0).([]*domain.Pattern), args.Error(1)
}

func (m *MockPatternRepository) Negative(key repository.PatternKey, limit int) ([]*domain.Pattern, error) {
	args := m.Called(key, limit)
	return args.Get(0).([]*domain.Pattern), args.Error(1)
}

func (m *MockPatternRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
