package handler

import (
	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// PatternHandler exposes the learned pattern ledger
type PatternHandler struct {
	service service.LearningService
}

// NewPatternHandler creates a new PatternHandler
func NewPatternHandler(service service.LearningService) *PatternHandler {
	return &PatternHandler{service: service}
}

// ListPatterns godoc
// @Summary      学習パターン一覧
// @Description  効果スコアの降順、同点は出現回数の降順
// @Tags         patterns
// @Produce      json
// @Param        category_id        query  int     false  "カテゴリーID"
// @Param        platform           query  string  false  "プラットフォーム"
// @Param        min_effectiveness  query  number  false  "効果スコアの下限 (既定 0)"
// @Param        limit              query  int     false  "件数 (既定 無制限)"
// @Success      200  {object}  common.APIResponse{data=[]domain.Pattern}
// @Router       /patterns [get]
func (h *PatternHandler) ListPatterns(c *gin.Context) {
	filter := domain.PatternFilter{
		CategoryID:       ginutil.QueryUint64(c, "category_id"),
		Platform:         c.Query("platform"),
		MinEffectiveness: ginutil.QueryFloat(c, "min_effectiveness", 0),
		Limit:            ginutil.QueryInt(c, "limit", 0),
	}

	patterns, err := h.service.ListPatterns(filter)
	if err != nil {
		respondError(c, "Failed to fetch patterns", err)
		return
	}
	common.SuccessResponse(c, patterns, &common.Meta{Total: int64(len(patterns)), Limit: filter.Limit})
}

// Statistics godoc
// @Summary      パターン種別ごとの統計
// @Tags         patterns
// @Produce      json
// @Param        category_id  query  int  false  "カテゴリーID"
// @Success      200  {object}  common.APIResponse{data=[]domain.PatternTypeStat}
// @Router       /patterns/statistics [get]
func (h *PatternHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context(), ginutil.QueryUint64(c, "category_id"))
	if err != nil {
		respondError(c, "Failed to fetch pattern statistics", err)
		return
	}
	common.SuccessResponse(c, stats, nil)
}
