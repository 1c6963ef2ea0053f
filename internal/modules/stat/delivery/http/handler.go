package http

import (
	"github.com/gin-gonic/gin"
	statService "trackzen.io/backend/internal/modules/stat/service"
	"trackzen.io/backend/pkg/response"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) Overview(c *gin.Context) {
	overview, err := h.statService.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, overview)
}
