package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackzen.io/backend/internal/modules/update/dto"
	"trackzen.io/backend/internal/modules/update/service"
	"trackzen.io/backend/pkg/response"
	"trackzen.io/backend/pkg/validator"
)

type UpdateHandler struct {
	service service.UpdateService
}

func NewUpdateHandler(service service.UpdateService) *UpdateHandler {
	return &UpdateHandler{service: service}
}

func (h *UpdateHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	update, err := h.service.Submit(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, update)
}

func (h *UpdateHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, userID)
}

func (h *UpdateHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id")
		return
	}
	h.list(c, userID)
}

func (h *UpdateHandler) list(c *gin.Context, userID uuid.UUID) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	updates, err := h.service.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, updates)
}

func (h *UpdateHandler) Streak(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	streak, err := h.service.Streak(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, streak)
}
