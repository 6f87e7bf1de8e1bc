package handler

import (
	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// GenerationHandler handles script generation
type GenerationHandler struct {
	service service.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(service service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// Generate godoc
// @Summary      台本生成
// @Description  学習パターン(60%)と効果的台本の分析(40%)を統合して台本を生成します。保存はされません
// @Tags         generation
// @Accept       json
// @Produce      json
// @Param        request  body  domain.GenerateScriptRequest  true  "生成条件"
// @Success      200  {object}  common.APIResponse{data=domain.GenerateScriptResponse}
// @Failure      404  {object}  common.APIResponse
// @Failure      429  {object}  common.APIResponse
// @Failure      503  {object}  common.APIResponse
// @Router       /scripts/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req domain.GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to generate script", err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Analyze godoc
// @Summary      台本の品質分析
// @Tags         generation
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ScriptDraft  true  "台本"
// @Success      200  {object}  common.APIResponse{data=domain.QualityAnalysis}
// @Router       /scripts/analyze [post]
func (h *GenerationHandler) Analyze(c *gin.Context) {
	var draft domain.ScriptDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		invalidRequest(c, err)
		return
	}
	common.SuccessResponse(c, h.service.AnalyzeQuality(draft), nil)
}

// Usage godoc
// @Summary      本日のAPI使用量
// @Tags         generation
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.DailyUsage}
// @Router       /generation/usage [get]
func (h *GenerationHandler) Usage(c *gin.Context) {
	usage, err := h.service.Usage()
	if err != nil {
		respondError(c, "Failed to fetch usage", err)
		return
	}
	common.SuccessResponse(c, usage, nil)
}
