package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adscript/adscript-backend/internal/config"
	"github.com/adscript/adscript-backend/internal/database"
	"github.com/adscript/adscript-backend/internal/handler"
	"github.com/adscript/adscript-backend/internal/middleware"
	"github.com/adscript/adscript-backend/internal/migration"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/adscript/adscript-backend/internal/routes"
	"github.com/adscript/adscript-backend/internal/service"
	pkgcache "github.com/adscript/adscript-backend/pkg/cache"
	"github.com/adscript/adscript-backend/pkg/llm"
	pkglogger "github.com/adscript/adscript-backend/pkg/logger"
	pkgredis "github.com/adscript/adscript-backend/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// @title           AdScript Backend API
// @version         1.0
// @description     広告台本の生成と配信結果からの学習
//
// @host            localhost:8080
// @BasePath        /api/v1

// getConfigPath returns config file path based on CONFIG_PATH or APP_ENV
func getConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)
	gin.SetMode(cfg.Server.Mode)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	pkglogger.Info("Connected to %s database", cfg.Database.Driver)

	// Redis is optional: caches and the generation rate limit are skipped without it
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}
	cacheService := pkgcache.NewService(redisClient, cfg.CacheTTL())

	var llmClient llm.Client
	openaiClient, err := llm.NewOpenAIClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}, pkglogger.WithComponent("llm"))
	if err != nil {
		pkglogger.Warn("Script generation disabled: %v", err)
	} else {
		llmClient = openaiClient
	}

	location, _ := time.LoadLocation(cfg.Generation.Timezone) // validated by config.Load

	// Repositories
	categoryRepo := repository.NewCategoryRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	scriptRepo := repository.NewScriptRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	patternRepo := repository.NewPatternRepository(db)
	ngWordRepo := repository.NewNGWordRepository(db)
	usageRepo := repository.NewAPIUsageRepository(db)

	// Services
	scriptService := service.NewScriptService(scriptRepo, categoryRepo)
	learningService := service.NewLearningService(
		patternRepo, scriptRepo, cacheService,
		cfg.Learning.LearnFromPoorResults, pkglogger.WithComponent("learning"),
	)
	ngWordService := service.NewNGWordService(ngWordRepo, categoryRepo, pkglogger.WithComponent("ngword"))
	campaignService := service.NewCampaignService(
		campaignRepo, categoryRepo, scriptService, learningService, pkglogger.WithComponent("campaign"),
	)
	generationService := service.NewGenerationService(
		llmClient, categoryRepo, scriptRepo, usageRepo, learningService, ngWordService,
		service.GenerationOptions{
			Temperature:       cfg.OpenAI.Temperature,
			MaxTokens:         cfg.OpenAI.MaxTokens,
			CostPer1KTokens:   cfg.OpenAI.CostPer1KTokens,
			DailyRequestLimit: cfg.Generation.DailyRequestLimit,
			DailyCostLimitJPY: cfg.Generation.DailyCostLimitJPY,
			Location:          location,
		},
		pkglogger.WithComponent("generation"),
	)
	reportService := service.NewReportService(categoryRepo, scriptRepo, campaignRepo, patternRepo, learningService, location)

	h := &routes.Handlers{
		Category:   handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Platform:   handler.NewPlatformHandler(service.NewPlatformService(platformRepo)),
		Script:     handler.NewScriptHandler(scriptService),
		Generation: handler.NewGenerationHandler(generationService),
		Campaign:   handler.NewCampaignHandler(campaignService),
		Pattern:    handler.NewPatternHandler(learningService),
		NGWord:     handler.NewNGWordHandler(ngWordService),
		Report:     handler.NewReportHandler(reportService),
		Health:     handler.NewHealthHandler(db, cacheService),
	}

	router := gin.New()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(cfg.CORS.AllowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	routes.Setup(router, h, routes.Middleware{
		GenerateLimit: middleware.RateLimit(redisClient, middleware.GenerationRateLimitConfig(cfg.Generation.RateLimitPerMin)),
		ReportCache:   middleware.ResponseCache(cacheService, pkgcache.TTLShort),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go reportPoolStats(ctx, db)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		pkglogger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	pkglogger.Info("Server exited")
}

// reportPoolStats publishes the open connection count to the db_connections_open gauge
func reportPoolStats(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		middleware.SetDBConnectionsOpen(sqlDB.Stats().OpenConnections)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func splitAndTrim(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
