package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// NGWordHandler handles regulated phrases
type NGWordHandler struct {
	service service.NGWordService
}

// NewNGWordHandler creates a new NGWordHandler
func NewNGWordHandler(service service.NGWordService) *NGWordHandler {
	return &NGWordHandler{service: service}
}

// ListNGWords godoc
// @Summary      NGワード一覧
// @Tags         ng-words
// @Produce      json
// @Param        category_id  query  int  false  "カテゴリーID"
// @Success      200  {object}  common.APIResponse{data=[]domain.NGWord}
// @Router       /ng-words [get]
func (h *NGWordHandler) ListNGWords(c *gin.Context) {
	words, err := h.service.List(ginutil.QueryUint64(c, "category_id"))
	if err != nil {
		respondError(c, "Failed to fetch ng words", err)
		return
	}
	common.SuccessResponse(c, words, &common.Meta{Total: int64(len(words))})
}

// CreateNGWord godoc
// @Summary      NGワード登録
// @Tags         ng-words
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateNGWordRequest  true  "NGワード"
// @Success      201  {object}  common.APIResponse{data=domain.NGWord}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /ng-words [post]
func (h *NGWordHandler) CreateNGWord(c *gin.Context) {
	var req domain.CreateNGWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	word, err := h.service.Add(&req)
	if err != nil {
		respondError(c, "Failed to create ng word", err)
		return
	}
	common.CreatedResponse(c, word)
}

// DeleteNGWord godoc
// @Summary      NGワード削除
// @Tags         ng-words
// @Param        id  path  int  true  "NGワードID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /ng-words/{id} [delete]
func (h *NGWordHandler) DeleteNGWord(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid ng word ID", err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, "Failed to delete ng word", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckText godoc
// @Summary      NGワードチェック
// @Tags         ng-words
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CheckNGWordsRequest  true  "チェック対象"
// @Success      200  {object}  common.APIResponse{data=domain.CheckNGWordsResponse}
// @Router       /ng-words/check [post]
func (h *NGWordHandler) CheckText(c *gin.Context) {
	var req domain.CheckNGWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	violations, err := h.service.Check(req.CategoryID, req.Text)
	if err != nil {
		respondError(c, "Failed to check text", err)
		return
	}
	common.SuccessResponse(c, domain.CheckNGWordsResponse{Violations: violations}, nil)
}
