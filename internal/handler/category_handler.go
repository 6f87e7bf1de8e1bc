package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles product category requests
type CategoryHandler struct {
	service service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListCategories godoc
// @Summary      商材カテゴリー一覧
// @Tags         categories
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.Category}
// @Failure      500  {object}  common.APIResponse
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.List()
	if err != nil {
		respondError(c, "Failed to fetch categories", err)
		return
	}
	common.SuccessResponse(c, categories, &common.Meta{Total: int64(len(categories))})
}

// CreateCategory godoc
// @Summary      商材カテゴリー登録
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateCategoryRequest  true  "カテゴリー"
// @Success      201  {object}  common.APIResponse{data=domain.Category}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	category, err := h.service.Create(&req)
	if err != nil {
		respondError(c, "Failed to create category", err)
		return
	}
	common.CreatedResponse(c, category)
}

// GetCategory godoc
// @Summary      商材カテゴリー取得
// @Tags         categories
// @Produce      json
// @Param        id  path  int  true  "カテゴリーID"
// @Success      200  {object}  common.APIResponse{data=domain.Category}
// @Failure      404  {object}  common.APIResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	category, err := h.service.Get(id)
	if err != nil {
		respondError(c, "Category not found", err)
		return
	}
	common.SuccessResponse(c, category, nil)
}

// UpdateTargets godoc
// @Summary      目標値の更新
// @Description  既存の配信結果の判定は再計算されません
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path  int                          true  "カテゴリーID"
// @Param        request  body  domain.UpdateTargetsRequest  true  "目標値"
// @Success      200  {object}  common.APIResponse{data=domain.Category}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /categories/{id}/targets [put]
func (h *CategoryHandler) UpdateTargets(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var req domain.UpdateTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	category, err := h.service.UpdateTargets(id, &req)
	if err != nil {
		respondError(c, "Failed to update targets", err)
		return
	}
	common.SuccessResponse(c, category, nil)
}
