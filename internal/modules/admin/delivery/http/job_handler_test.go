package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/internal/scheduler"
	"trackzen.io/backend/pkg/response"
)

type fakeRunner struct {
	ran []string
	err error
}

func (f *fakeRunner) RunByName(_ context.Context, name string) error {
	if name != "update_reminder" {
		return fmt.Errorf("%w: %s", scheduler.ErrUnknownJob, name)
	}
	f.ran = append(f.ran, name)
	return f.err
}

func (f *fakeRunner) Jobs() []string { return []string{"update_reminder"} }

func newJobRouter(runner JobRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewJobHandler(runner)
	r := gin.New()
	r.GET("/jobs", h.List)
	r.POST("/jobs/:name/run", h.Run)
	return r
}

func TestJobHandlerRun(t *testing.T) {
	t.Run("known job", func(t *testing.T) {
		runner := &fakeRunner{}
		w := httptest.NewRecorder()
		newJobRouter(runner).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/update_reminder/run", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"update_reminder"}, runner.ran)
	})

	t.Run("unknown job", func(t *testing.T) {
		w := httptest.NewRecorder()
		newJobRouter(&fakeRunner{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/nope/run", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("job failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		newJobRouter(&fakeRunner{err: errors.New("boom")}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/update_reminder/run", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestJobHandlerList(t *testing.T) {
	w := httptest.NewRecorder()
	newJobRouter(&fakeRunner{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
}
