package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/adscript/adscript-backend/internal/handler"
	"github.com/adscript/adscript-backend/internal/learning"
	"github.com/adscript/adscript-backend/internal/middleware"
	"github.com/adscript/adscript-backend/internal/migration"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/cache"
	"github.com/adscript/adscript-backend/pkg/llm"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubLLM struct {
	content string
}

func (s *stubLLM) Complete(_ context.Context, _, _ string, _ llm.Params) (*llm.Completion, error) {
	return &llm.Completion{Content: s.content, TotalTokens: 1000}, nil
}

// APISuite exercises the HTTP API end to end on an in-memory store
type APISuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(migration.Run(db))
	s.db = db

	log := zerolog.Nop()
	cacheService := cache.NewService(nil, 0)

	categoryRepo := repository.NewCategoryRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	scriptRepo := repository.NewScriptRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	patternRepo := repository.NewPatternRepository(db)
	ngWordRepo := repository.NewNGWordRepository(db)
	usageRepo := repository.NewAPIUsageRepository(db)

	scriptService := service.NewScriptService(scriptRepo, categoryRepo)
	learningService := service.NewLearningService(patternRepo, scriptRepo, cacheService, false, log)
	ngWordService := service.NewNGWordService(ngWordRepo, categoryRepo, log)
	generationService := service.NewGenerationService(
		&stubLLM{content: `{"title": "T", "hook": "3日で実感？", "main_content": "1,980円", "call_to_action": "今すぐチェック"}`},
		categoryRepo, scriptRepo, usageRepo, learningService, ngWordService,
		service.GenerationOptions{Temperature: 0.7, MaxTokens: 1200, CostPer1KTokens: 0.045, DailyRequestLimit: 100, DailyCostLimitJPY: 500},
		log,
	)

	s.router = gin.New()
	Setup(s.router, &Handlers{
		Category:   handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Platform:   handler.NewPlatformHandler(service.NewPlatformService(platformRepo)),
		Script:     handler.NewScriptHandler(scriptService),
		Generation: handler.NewGenerationHandler(generationService),
		Campaign:   handler.NewCampaignHandler(service.NewCampaignService(campaignRepo, categoryRepo, scriptService, learningService, log)),
		Pattern:    handler.NewPatternHandler(learningService),
		NGWord:     handler.NewNGWordHandler(ngWordService),
		Report:     handler.NewReportHandler(service.NewReportService(categoryRepo, scriptRepo, campaignRepo, patternRepo, learningService, nil)),
		Health:     handler.NewHealthHandler(db, cacheService),
	}, Middleware{
		GenerateLimit: middleware.RateLimit(nil, middleware.GenerationRateLimitConfig(10)),
		ReportCache:   middleware.ResponseCache(cacheService, time.Minute),
	})
}

func (s *APISuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *APISuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// data decodes the data field of the response envelope
func (s *APISuite) data(w *httptest.ResponseRecorder, dest interface{}) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, dest))
}

func (s *APISuite) createCategory(name string) uint64 {
	w := s.do(http.MethodPost, "/api/v1/categories", gin.H{
		"name":    name,
		"targets": gin.H{"ctr": 2.0, "cpc": 100, "mcvr": 1.0, "mcpa": 2000, "cvr": 0.5, "cpa": 3000},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint64 `json:"id"`
	}
	s.data(w, &created)
	return created.ID
}

func (s *APISuite) createScript(categoryID uint64) uint64 {
	w := s.do(http.MethodPost, "/api/v1/scripts/effective", gin.H{
		"category_id":    categoryID,
		"title":          "参考台本",
		"hook":           "3日で実感？",
		"main_content":   "1,980円で研究実証済み",
		"call_to_action": "今すぐチェック",
		"platform":       "tiktok",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint64 `json:"id"`
	}
	s.data(w, &created)
	return created.ID
}

func (s *APISuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"database":"ok"`)
}

func (s *APISuite) TestCategories() {
	id := s.createCategory("美容")

	w := s.do(http.MethodPost, "/api/v1/categories", gin.H{"name": "美容"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPut, "/api/v1/categories/"+itoa(id)+"/targets", gin.H{"ctr": 1.5})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/categories/999", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/categories/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestPlatformsSeeded() {
	w := s.do(http.MethodGet, "/api/v1/platforms", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var platforms []struct {
		Code string `json:"code"`
	}
	s.data(w, &platforms)
	s.Len(platforms, len(migration.DefaultPlatforms()))
}

func (s *APISuite) TestRecordResultLearnsPatterns() {
	categoryID := s.createCategory("美容")
	scriptID := s.createScript(categoryID)

	w := s.do(http.MethodPost, "/api/v1/campaign-results", gin.H{
		"script_id":    scriptID,
		"script_type":  "effective",
		"metrics":      gin.H{"ctr": 2.5, "cpc": "80", "mcvr": 1.2, "mcpa": 3000, "cvr": "", "cpa": nil},
		"spend_amount": 200000,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var recorded struct {
		Result struct {
			IsGood bool    `json:"is_good_performance"`
			Score  float64 `json:"performance_score"`
		} `json:"result"`
		Learning struct {
			Updated  bool `json:"updated"`
			Patterns int  `json:"patterns"`
		} `json:"learning"`
	}
	s.data(w, &recorded)
	s.True(recorded.Result.IsGood)
	s.True(recorded.Learning.Updated)
	s.Positive(recorded.Learning.Patterns)

	w = s.do(http.MethodGet, "/api/v1/patterns?category_id="+itoa(categoryID)+"&platform=tiktok", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var patterns []struct {
		Content string  `json:"pattern_content"`
		Score   float64 `json:"effectiveness_score"`
	}
	s.data(w, &patterns)
	s.Len(patterns, recorded.Learning.Patterns)

	w = s.do(http.MethodGet, "/api/v1/patterns/statistics?category_id="+itoa(categoryID), nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/campaign-results?performance=good", nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/campaign-results?performance=best", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/reports/categories/"+itoa(categoryID), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestPatternListReturnsEveryMatch() {
	categoryID := s.createCategory("健康食品")
	tokens := make([]learning.Token, 0, 150)
	for i := 0; i < 150; i++ {
		tokens = append(tokens, learning.Token{Type: learning.PatternKeyword, Content: fmt.Sprintf("語%03d", i)})
	}
	key := repository.PatternKey{CategoryID: categoryID, Platform: "tiktok"}
	s.Require().NoError(repository.NewPatternRepository(s.db).Fold(context.Background(), key, tokens, 1))

	w := s.do(http.MethodGet, "/api/v1/patterns?category_id="+itoa(categoryID), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var body struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Data, 150)
	s.Equal(int64(150), body.Meta.Total)

	w = s.do(http.MethodGet, "/api/v1/patterns?category_id="+itoa(categoryID)+"&limit=20", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page []json.RawMessage
	s.data(w, &page)
	s.Len(page, 20)
}

func (s *APISuite) TestRecordResultValidation() {
	w := s.do(http.MethodPost, "/api/v1/campaign-results", gin.H{"script_id": 1, "script_type": "draft"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/campaign-results", gin.H{"script_id": 1, "script_type": "effective"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestGenerateAndSave() {
	categoryID := s.createCategory("健康食品")
	s.createScript(categoryID)

	w := s.do(http.MethodPost, "/api/v1/scripts/generate", gin.H{
		"category_id":     categoryID,
		"platform":        "tiktok",
		"target_audience": "40代男性",
		"script_length":   "30秒",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var generated struct {
		Draft struct {
			Title         string `json:"title"`
			ScriptContent string `json:"script_content"`
		} `json:"draft"`
		TokensUsed int `json:"tokens_used"`
	}
	s.data(w, &generated)
	s.Equal("T", generated.Draft.Title)
	s.Contains(generated.Draft.ScriptContent, "🎣 フック: 3日で実感？")
	s.Equal(1000, generated.TokensUsed)

	w = s.do(http.MethodGet, "/api/v1/generation/usage", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var usage struct {
		RequestCount int64 `json:"request_count"`
	}
	s.data(w, &usage)
	s.EqualValues(1, usage.RequestCount)

	w = s.do(http.MethodPost, "/api/v1/scripts/generated", gin.H{
		"category_id":    categoryID,
		"platform":       "tiktok",
		"title":          generated.Draft.Title,
		"script_content": generated.Draft.ScriptContent,
	})
	s.Equal(http.StatusCreated, w.Code)
}

func (s *APISuite) TestNGWords() {
	categoryID := s.createCategory("健康食品")

	w := s.do(http.MethodPost, "/api/v1/ng-words", gin.H{"category_id": categoryID, "word": "完治", "reason": "薬機法"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/v1/ng-words/check", gin.H{"category_id": categoryID, "text": "必ず完治します"})
	s.Require().Equal(http.StatusOK, w.Code)
	var check struct {
		Violations []string `json:"violations"`
	}
	s.data(w, &check)
	s.Equal([]string{"完治"}, check.Violations)

	w = s.do(http.MethodDelete, "/api/v1/ng-words/999", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestAnalyzeAndOverview() {
	w := s.do(http.MethodPost, "/api/v1/scripts/analyze", gin.H{"hook": "3日で？", "call_to_action": "今すぐ"})
	s.Require().Equal(http.StatusOK, w.Code)
	var q struct {
		HookStrength int `json:"hook_strength"`
		CTAStrength  int `json:"cta_strength"`
	}
	s.data(w, &q)
	s.Equal(3, q.HookStrength)
	s.Equal(2, q.CTAStrength)

	w = s.do(http.MethodGet, "/api/v1/reports/overview", nil)
	s.Equal(http.StatusOK, w.Code)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
