package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// PlatformHandler handles ad platform requests
type PlatformHandler struct {
	service service.PlatformService
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(service service.PlatformService) *PlatformHandler {
	return &PlatformHandler{service: service}
}

// ListPlatforms godoc
// @Summary      プラットフォーム一覧
// @Tags         platforms
// @Produce      json
// @Param        all  query  bool  false  "無効なプラットフォームも含める"
// @Success      200  {object}  common.APIResponse{data=[]domain.Platform}
// @Router       /platforms [get]
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	var (
		platforms []*domain.Platform
		err       error
	)
	if c.Query("all") == "true" {
		platforms, err = h.service.ListAll()
	} else {
		platforms, err = h.service.ListActive()
	}
	if err != nil {
		respondError(c, "Failed to fetch platforms", err)
		return
	}
	common.SuccessResponse(c, platforms, &common.Meta{Total: int64(len(platforms))})
}

// CreatePlatform godoc
// @Summary      プラットフォーム登録
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreatePlatformRequest  true  "プラットフォーム"
// @Success      201  {object}  common.APIResponse{data=domain.Platform}
// @Failure      409  {object}  common.APIResponse
// @Router       /platforms [post]
func (h *PlatformHandler) CreatePlatform(c *gin.Context) {
	var req domain.CreatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	platform, err := h.service.Create(&req)
	if err != nil {
		respondError(c, "Failed to create platform", err)
		return
	}
	common.CreatedResponse(c, platform)
}

// UpdatePlatform godoc
// @Summary      プラットフォーム更新
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        id       path  int                           true  "プラットフォームID"
// @Param        request  body  domain.UpdatePlatformRequest  true  "変更内容"
// @Success      200  {object}  common.APIResponse{data=domain.Platform}
// @Failure      404  {object}  common.APIResponse
// @Router       /platforms/{id} [put]
func (h *PlatformHandler) UpdatePlatform(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid platform ID", err)
		return
	}

	var req domain.UpdatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	platform, err := h.service.Update(id, &req)
	if err != nil {
		respondError(c, "Failed to update platform", err)
		return
	}
	common.SuccessResponse(c, platform, nil)
}

// DeletePlatform godoc
// @Summary      プラットフォーム無効化
// @Description  論理削除。既存の台本・配信結果はそのまま残ります
// @Tags         platforms
// @Param        id  path  int  true  "プラットフォームID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /platforms/{id} [delete]
func (h *PlatformHandler) DeletePlatform(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid platform ID", err)
		return
	}

	if err := h.service.Deactivate(id); err != nil {
		respondError(c, "Failed to deactivate platform", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PlatformUsage godoc
// @Summary      プラットフォーム別の利用状況
// @Tags         platforms
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.PlatformUsage}
// @Router       /platforms/usage [get]
func (h *PlatformHandler) PlatformUsage(c *gin.Context) {
	usage, err := h.service.Usage()
	if err != nil {
		respondError(c, "Failed to fetch platform usage", err)
		return
	}
	common.SuccessResponse(c, usage, nil)
}
