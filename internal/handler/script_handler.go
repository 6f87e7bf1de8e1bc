package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/service"
	"github.com/adscript/adscript-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ScriptHandler handles the script library
type ScriptHandler struct {
	service service.ScriptService
}

// NewScriptHandler creates a new ScriptHandler
func NewScriptHandler(service service.ScriptService) *ScriptHandler {
	return &ScriptHandler{service: service}
}

func scriptFilter(c *gin.Context) domain.ScriptFilter {
	return domain.ScriptFilter{
		CategoryID: ginutil.QueryUint64(c, "category_id"),
		Platform:   c.Query("platform"),
	}
}

// ListEffective godoc
// @Summary      効果的台本一覧
// @Tags         scripts
// @Produce      json
// @Param        category_id  query  int     false  "カテゴリーID"
// @Param        platform     query  string  false  "プラットフォーム"
// @Success      200  {object}  common.APIResponse{data=[]domain.EffectiveScript}
// @Router       /scripts/effective [get]
func (h *ScriptHandler) ListEffective(c *gin.Context) {
	scripts, err := h.service.ListEffective(scriptFilter(c))
	if err != nil {
		respondError(c, "Failed to fetch scripts", err)
		return
	}
	common.SuccessResponse(c, scripts, &common.Meta{Total: int64(len(scripts))})
}

// CreateEffective godoc
// @Summary      効果的台本登録
// @Tags         scripts
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateEffectiveScriptRequest  true  "台本"
// @Success      201  {object}  common.APIResponse{data=domain.EffectiveScript}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /scripts/effective [post]
func (h *ScriptHandler) CreateEffective(c *gin.Context) {
	var req domain.CreateEffectiveScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	script, err := h.service.AddEffective(&req)
	if err != nil {
		respondError(c, "Failed to create script", err)
		return
	}
	common.CreatedResponse(c, script)
}

// GetEffective godoc
// @Summary      効果的台本取得
// @Tags         scripts
// @Produce      json
// @Param        id  path  int  true  "台本ID"
// @Success      200  {object}  common.APIResponse{data=domain.EffectiveScript}
// @Failure      404  {object}  common.APIResponse
// @Router       /scripts/effective/{id} [get]
func (h *ScriptHandler) GetEffective(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid script ID", err)
		return
	}

	script, err := h.service.GetEffective(id)
	if err != nil {
		respondError(c, "Script not found", err)
		return
	}
	common.SuccessResponse(c, script, nil)
}

// UpdateEffective godoc
// @Summary      効果的台本更新
// @Tags         scripts
// @Accept       json
// @Produce      json
// @Param        id       path  int                                  true  "台本ID"
// @Param        request  body  domain.UpdateEffectiveScriptRequest  true  "変更内容"
// @Success      200  {object}  common.APIResponse{data=domain.EffectiveScript}
// @Failure      404  {object}  common.APIResponse
// @Router       /scripts/effective/{id} [put]
func (h *ScriptHandler) UpdateEffective(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid script ID", err)
		return
	}

	var req domain.UpdateEffectiveScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	script, err := h.service.UpdateEffective(id, &req)
	if err != nil {
		respondError(c, "Failed to update script", err)
		return
	}
	common.SuccessResponse(c, script, nil)
}

// ListGenerated godoc
// @Summary      生成台本一覧
// @Tags         scripts
// @Produce      json
// @Param        category_id  query  int     false  "カテゴリーID"
// @Param        platform     query  string  false  "プラットフォーム"
// @Success      200  {object}  common.APIResponse{data=[]domain.GeneratedScript}
// @Router       /scripts/generated [get]
func (h *ScriptHandler) ListGenerated(c *gin.Context) {
	scripts, err := h.service.ListGenerated(scriptFilter(c))
	if err != nil {
		respondError(c, "Failed to fetch scripts", err)
		return
	}
	common.SuccessResponse(c, scripts, &common.Meta{Total: int64(len(scripts))})
}

// SaveGenerated godoc
// @Summary      生成台本の保存
// @Tags         scripts
// @Accept       json
// @Produce      json
// @Param        request  body  domain.SaveGeneratedScriptRequest  true  "生成台本"
// @Success      201  {object}  common.APIResponse{data=domain.GeneratedScript}
// @Failure      404  {object}  common.APIResponse
// @Router       /scripts/generated [post]
func (h *ScriptHandler) SaveGenerated(c *gin.Context) {
	var req domain.SaveGeneratedScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	script, err := h.service.SaveGenerated(&req)
	if err != nil {
		respondError(c, "Failed to save script", err)
		return
	}
	common.CreatedResponse(c, script)
}

// GetGenerated godoc
// @Summary      生成台本取得
// @Tags         scripts
// @Produce      json
// @Param        id  path  int  true  "台本ID"
// @Success      200  {object}  common.APIResponse{data=domain.GeneratedScript}
// @Failure      404  {object}  common.APIResponse
// @Router       /scripts/generated/{id} [get]
func (h *ScriptHandler) GetGenerated(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid script ID", err)
		return
	}

	script, err := h.service.GetGenerated(id)
	if err != nil {
		respondError(c, "Script not found", err)
		return
	}
	common.SuccessResponse(c, script, nil)
}
