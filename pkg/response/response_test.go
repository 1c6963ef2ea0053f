package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/pkg/apperror"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	return c, w
}

func TestErrorHidesInternalDetails(t *testing.T) {
	c, w := newContext()

	Error(c, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
}

func TestErrorKeepsClientMessages(t *testing.T) {
	c, w := newContext()

	Error(c, apperror.NotFound("User not found in leaderboard"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User not found in leaderboard"}`, w.Body.String())
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := newContext()

	Success(c, gin.H{"period": "weekly"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"period":"weekly"}}`, w.Body.String())
}

func TestGetUserID(t *testing.T) {
	c, _ := newContext()

	_, err := GetUserID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	c.Set("user_id", "not-a-uuid")
	_, err = GetUserID(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	id := uuid.New()
	c.Set("user_id", id.String())
	got, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
