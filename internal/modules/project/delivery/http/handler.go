package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackzen.io/backend/internal/modules/project/dto"
	"trackzen.io/backend/internal/modules/project/service"
	"trackzen.io/backend/pkg/response"
	"trackzen.io/backend/pkg/validator"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func actor(c *gin.Context) (service.Actor, bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return service.Actor{}, false
	}
	return service.Actor{ID: userID, Role: response.GetRole(c)}, true
}

func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Fail(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return false
	}
	return true
}

func (h *ProjectHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var input dto.CreateProjectInput
	if !bind(c, &input) {
		return
	}

	project, err := h.service.Create(c.Request.Context(), a, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

func (h *ProjectHandler) ListMine(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projects, err := h.service.ListMine(c.Request.Context(), a.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dto.ProjectStatusInput
	if !bind(c, &input) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "project status updated")
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dto.MemberInput
	if !bind(c, &input) {
		return
	}

	if err := h.service.AddMember(c.Request.Context(), a, id, input.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "member added")
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "member removed")
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	members, err := h.service.ListMembers(c.Request.Context(), a, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

func (h *ProjectHandler) CreateTicket(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dto.CreateTicketInput
	if !bind(c, &input) {
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), a, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ticket)
}

func (h *ProjectHandler) ListTickets(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), a, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tickets)
}

func (h *ProjectHandler) UpdateTicketStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dto.TicketStatusInput
	if !bind(c, &input) {
		return
	}

	ticket, err := h.service.UpdateTicketStatus(c.Request.Context(), a, id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ticket)
}
