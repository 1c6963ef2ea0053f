package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	leaderboardService "trackzen.io/backend/internal/modules/leaderboard/service"
	"trackzen.io/backend/pkg/response"
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard handles GET /api/leaderboard?period=weekly|monthly|quarterly.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	period, err := scoring.ParsePeriod(c.Query("period"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.service.GetLeaderboard(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, board)
}

// GetUserRank handles GET /api/leaderboard/rank for the caller.
func (h *LeaderboardHandler) GetUserRank(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	period, err := scoring.ParsePeriod(c.Query("period"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.GetUserRank(c.Request.Context(), userID, period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, entry)
}
