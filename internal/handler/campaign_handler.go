package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CampaignHandler handles campaign results
type CampaignHandler struct {
	service service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func campaignFilter(c *gin.Context) (domain.CampaignFilter, bool) {
	perf := domain.PerformanceFilter(c.DefaultQuery("performance", string(domain.PerformanceAll)))
	switch perf {
	case domain.PerformanceAll, domain.PerformanceGood, domain.PerformancePoor:
	default:
		return domain.CampaignFilter{}, false
	}
	return domain.CampaignFilter{
		CategoryID:  ginutil.QueryUint64(c, "category_id"),
		Platform:    c.Query("platform"),
		Performance: perf,
	}, true
}

// RecordResult godoc
// @Summary      配信結果の登録
// @Description  目標値で判定し、良い結果なら台本のパターンを学習します。学習に失敗しても結果は保存されます
// @Tags         campaign-results
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RecordCampaignResultRequest  true  "配信結果"
// @Success      201  {object}  common.APIResponse{data=domain.RecordCampaignResultResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /campaign-results [post]
func (h *CampaignHandler) RecordResult(c *gin.Context) {
	var req domain.RecordCampaignResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	resp, err := h.service.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to record campaign result", err)
		return
	}
	common.CreatedResponse(c, resp)
}

// ListResults godoc
// @Summary      配信結果一覧
// @Tags         campaign-results
// @Produce      json
// @Param        category_id  query  int     false  "カテゴリーID"
// @Param        platform     query  string  false  "プラットフォーム"
// @Param        performance  query  string  false  "all | good | poor"
// @Success      200  {object}  common.APIResponse{data=[]domain.CampaignResult}
// @Router       /campaign-results [get]
func (h *CampaignHandler) ListResults(c *gin.Context) {
	filter, ok := campaignFilter(c)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "performance must be all, good or poor", nil)
		return
	}

	results, err := h.service.List(filter)
	if err != nil {
		respondError(c, "Failed to fetch campaign results", err)
		return
	}
	common.SuccessResponse(c, results, &common.Meta{Total: int64(len(results))})
}

// Summary godoc
// @Summary      配信結果の集計
// @Tags         campaign-results
// @Produce      json
// @Param        category_id  query  int     false  "カテゴリーID"
// @Param        platform     query  string  false  "プラットフォーム"
// @Success      200  {object}  common.APIResponse{data=domain.CampaignSummary}
// @Router       /campaign-results/summary [get]
func (h *CampaignHandler) Summary(c *gin.Context) {
	filter, ok := campaignFilter(c)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "performance must be all, good or poor", nil)
		return
	}

	summary, err := h.service.Summary(filter)
	if err != nil {
		respondError(c, "Failed to summarize campaign results", err)
		return
	}
	common.SuccessResponse(c, summary, nil)
}
