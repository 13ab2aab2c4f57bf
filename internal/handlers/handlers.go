package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/service"
	"github.com/emilythestrangee/pollboard/backend/internal/storage"
)

// Handler combines all handler types
type Handler struct {
	Auth        *AuthHandler
	Poll        *PollHandler
	Comment     *CommentHandler
	Leaderboard *LeaderboardHandler
	Admin       *AdminHandler
	Profile     *ProfileHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, files storage.FileStore) *Handler {
	badges := service.NewBadgeService(db)
	polls := service.NewPollService(db, badges)
	votes := service.NewVoteService(db, badges)
	reactions := service.NewReactionService(db)
	comments := service.NewCommentService(db, badges)
	leaderboard := service.NewLeaderboardService(db, polls)

	return &Handler{
		Auth:        NewAuthHandler(db),
		Poll:        NewPollHandler(polls, votes, reactions, comments, files),
		Comment:     NewCommentHandler(comments),
		Leaderboard: NewLeaderboardHandler(leaderboard, badges),
		Admin:       NewAdminHandler(db, polls, comments),
		Profile:     NewProfileHandler(db, badges, files),
	}
}

// respondError translates domain errors into HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidReactionType),
		errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsPolicyViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
