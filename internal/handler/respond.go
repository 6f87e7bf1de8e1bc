package handler

import (
	"net/http"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// respondError writes err with the status its sentinel maps to
func respondError(c *gin.Context, message string, err error) {
	status := common.StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	common.ErrorResponse(c, status, message, err)
}

func invalidRequest(c *gin.Context, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
}
