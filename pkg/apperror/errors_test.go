package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: ErrNotFound, expected: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("interview 42: %w", ErrNotFound), expected: http.StatusNotFound},
		{name: "unauthorized", err: ErrUnauthorized, expected: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, expected: http.StatusForbidden},
		{name: "bad request", err: ErrBadRequest, expected: http.StatusBadRequest},
		{name: "invalid input", err: fmt.Errorf("score: %w", ErrInvalidInput), expected: http.StatusBadRequest},
		{name: "conflict", err: ErrConflict, expected: http.StatusConflict},
		{name: "rate limit", err: ErrRateLimitExceeded, expected: http.StatusTooManyRequests},
		{name: "app error code wins", err: New(http.StatusTeapot, "short and stout", nil), expected: http.StatusTeapot},
		{name: "unknown error", err: errors.New("connection refused"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatus(tt.err))
		})
	}
}

func TestNotFoundKeepsSentinel(t *testing.T) {
	err := NotFound("User not found in leaderboard")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "User not found in leaderboard", err.Error())
	assert.Equal(t, http.StatusNotFound, MapErrorToStatus(err))
}
