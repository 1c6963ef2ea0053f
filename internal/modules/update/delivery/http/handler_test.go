package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	"trackzen.io/backend/internal/modules/update/dto"
	"trackzen.io/backend/pkg/apperror"
)

type stubService struct {
	submitted []dto.CreateUpdateInput
	err       error
}

func (s *stubService) Submit(_ context.Context, userID uuid.UUID, input dto.CreateUpdateInput) (*entity.DailyUpdate, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.submitted = append(s.submitted, input)
	return &entity.DailyUpdate{UserID: userID, ProgressScore: input.ProgressScore}, nil
}

func (s *stubService) ListByUser(context.Context, uuid.UUID, int) ([]*entity.DailyUpdate, error) {
	return []*entity.DailyUpdate{}, nil
}

func (s *stubService) Streak(context.Context, uuid.UUID) (scoring.Streak, error) {
	return scoring.Streak{Current: 2, Longest: 4}, nil
}

func setup(svc *stubService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUpdateHandler(svc)
	withUser := func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
	r.POST("/updates", withUser, h.Submit)
	r.GET("/updates/streak", withUser, h.Streak)
	r.GET("/updates/user/:id", h.ListByUser)
	return r
}

func TestSubmitHandler(t *testing.T) {
	svc := &stubService{}
	r := setup(svc, uuid.New())

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"progressScore":7,"accomplishments":"done"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/updates", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, svc.submitted, 1)
		assert.Equal(t, 7, svc.submitted[0].ProgressScore)
	})

	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"progressScore":12,"accomplishments":"done"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/updates", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("duplicate", func(t *testing.T) {
		r := setup(&stubService{err: apperror.ErrConflict}, uuid.New())
		w := httptest.NewRecorder()
		body := `{"progressScore":7,"accomplishments":"done"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/updates", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestStreakHandler(t *testing.T) {
	r := setup(&stubService{}, uuid.New())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/updates/streak", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Data["currentStreak"])
	assert.Equal(t, 4, body.Data["longestStreak"])
}

func TestListByUserRejectsBadID(t *testing.T) {
	r := setup(&stubService{}, uuid.New())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/updates/user/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
