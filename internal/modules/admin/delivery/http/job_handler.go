package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"trackzen.io/backend/internal/scheduler"
	"trackzen.io/backend/pkg/response"
)

type JobRunner interface {
	RunByName(ctx context.Context, name string) error
	Jobs() []string
}

// JobHandler lets admins list background jobs and trigger one on demand.
type JobHandler struct {
	runner JobRunner
}

func NewJobHandler(runner JobRunner) *JobHandler {
	return &JobHandler{runner: runner}
}

func (h *JobHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"jobs": h.runner.Jobs()})
}

func (h *JobHandler) Run(c *gin.Context) {
	name := c.Param("name")
	if err := h.runner.RunByName(c.Request.Context(), name); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			response.Fail(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Message(c, "job "+name+" completed")
}
