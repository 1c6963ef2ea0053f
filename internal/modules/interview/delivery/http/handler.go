package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackzen.io/backend/internal/modules/interview/dto"
	"trackzen.io/backend/internal/modules/interview/service"
	"trackzen.io/backend/pkg/response"
	"trackzen.io/backend/pkg/validator"
)

type InterviewHandler struct {
	service service.InterviewService
}

func NewInterviewHandler(service service.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

func actor(c *gin.Context) (service.Actor, bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return service.Actor{}, false
	}
	return service.Actor{ID: userID, Role: response.GetRole(c)}, true
}

func interviewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid interview id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var input dto.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	interview, err := h.service.Schedule(c.Request.Context(), a, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, interview)
}

func (h *InterviewHandler) ListMine(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	interviews, err := h.service.ListMine(c.Request.Context(), a.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, interviews)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := interviewID(c)
	if !ok {
		return
	}

	interview, err := h.service.Get(c.Request.Context(), a, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, interview)
}

func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var input dto.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	interview, err := h.service.UpdateStatus(c.Request.Context(), a, id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, interview)
}

func (h *InterviewHandler) SubmitFeedback(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := interviewID(c)
	if !ok {
		return
	}

	var input dto.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	feedback, err := h.service.SubmitFeedback(c.Request.Context(), a, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, feedback)
}
