package routes

import (
	"github.com/adscript/adscript-backend/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every API handler
type Handlers struct {
	Category   *handler.CategoryHandler
	Platform   *handler.PlatformHandler
	Script     *handler.ScriptHandler
	Generation *handler.GenerationHandler
	Campaign   *handler.CampaignHandler
	Pattern    *handler.PatternHandler
	NGWord     *handler.NGWordHandler
	Report     *handler.ReportHandler
	Health     *handler.HealthHandler
}

// Middleware route-scoped middleware
type Middleware struct {
	GenerateLimit gin.HandlerFunc // paid generation endpoint
	ReportCache   gin.HandlerFunc // report reads
}

// Setup configures all API routes
func Setup(router *gin.Engine, h *Handlers, mw Middleware) {
	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	// 商材カテゴリー
	categories := api.Group("/categories")
	categories.GET("", h.Category.ListCategories)
	categories.POST("", h.Category.CreateCategory)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id/targets", h.Category.UpdateTargets)

	// プラットフォーム
	platforms := api.Group("/platforms")
	platforms.GET("", h.Platform.ListPlatforms)
	platforms.POST("", h.Platform.CreatePlatform)
	platforms.GET("/usage", h.Platform.PlatformUsage)
	platforms.PUT("/:id", h.Platform.UpdatePlatform)
	platforms.DELETE("/:id", h.Platform.DeletePlatform)

	// 台本
	scripts := api.Group("/scripts")
	scripts.GET("/effective", h.Script.ListEffective)
	scripts.POST("/effective", h.Script.CreateEffective)
	scripts.GET("/effective/:id", h.Script.GetEffective)
	scripts.PUT("/effective/:id", h.Script.UpdateEffective)
	scripts.GET("/generated", h.Script.ListGenerated)
	scripts.POST("/generated", h.Script.SaveGenerated)
	scripts.GET("/generated/:id", h.Script.GetGenerated)
	scripts.POST("/generate", mw.GenerateLimit, h.Generation.Generate)
	scripts.POST("/analyze", h.Generation.Analyze)

	api.GET("/generation/usage", h.Generation.Usage)

	// 配信結果
	results := api.Group("/campaign-results")
	results.GET("", h.Campaign.ListResults)
	results.POST("", h.Campaign.RecordResult)
	results.GET("/summary", h.Campaign.Summary)

	// 学習パターン
	patterns := api.Group("/patterns")
	patterns.GET("", h.Pattern.ListPatterns)
	patterns.GET("/statistics", h.Pattern.Statistics)

	// NGワード
	ngWords := api.Group("/ng-words")
	ngWords.GET("", h.NGWord.ListNGWords)
	ngWords.POST("", h.NGWord.CreateNGWord)
	ngWords.DELETE("/:id", h.NGWord.DeleteNGWord)
	ngWords.POST("/check", h.NGWord.CheckText)

	// レポート
	reports := api.Group("/reports", mw.ReportCache)
	reports.GET("/overview", h.Report.Overview)
	reports.GET("/categories/:id", h.Report.CategoryReport)
}
