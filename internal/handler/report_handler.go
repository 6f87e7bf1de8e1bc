package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles dashboard reports
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Overview godoc
// @Summary      全体サマリー
// @Tags         reports
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.Overview}
// @Router       /reports/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview()
	if err != nil {
		respondError(c, "Failed to build overview", err)
		return
	}
	common.SuccessResponse(c, overview, nil)
}

// CategoryReport godoc
// @Summary      カテゴリー別レポート
// @Tags         reports
// @Produce      json
// @Param        id  path  int  true  "カテゴリーID"
// @Success      200  {object}  common.APIResponse{data=domain.CategoryReport}
// @Failure      404  {object}  common.APIResponse
// @Router       /reports/categories/{id} [get]
func (h *ReportHandler) CategoryReport(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	report, err := h.service.CategoryReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to build category report", err)
		return
	}
	common.SuccessResponse(c, report, nil)
}
