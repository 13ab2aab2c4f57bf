package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
)

type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
	badges      *service.BadgeService
}

func NewLeaderboardHandler(leaderboard *service.LeaderboardService, badges *service.BadgeService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, badges: badges}
}

// GetLeaderboard returns the top voters, creators, commenters and
// trending polls
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	board, err := h.leaderboard.Build()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// GetUserBadges returns the badges a user has earned
func (h *LeaderboardHandler) GetUserBadges(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	badges, err := h.badges.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if badges == nil {
		badges = []models.Badge{}
	}

	c.JSON(http.StatusOK, badges)
}
