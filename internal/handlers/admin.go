package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/middleware"
	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
)

type AdminHandler struct {
	db       *gorm.DB
	polls    *service.PollService
	comments *service.CommentService
}

func NewAdminHandler(db *gorm.DB, polls *service.PollService, comments *service.CommentService) *AdminHandler {
	return &AdminHandler{db: db, polls: polls, comments: comments}
}

// requireAdmin checks the admin role explicitly at the start of each
// admin operation. Returns false after writing the 403.
func requireAdmin(c *gin.Context) bool {
	if !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return false
	}
	return true
}

// Dashboard returns site totals, reported comments and recent activity
func (h *AdminHandler) Dashboard(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var totalUsers, totalPolls, totalVotes, totalComments int64
	h.db.Model(&models.User{}).Count(&totalUsers)
	h.db.Model(&models.Poll{}).Count(&totalPolls)
	h.db.Model(&models.Vote{}).Count(&totalVotes)
	h.db.Model(&models.Comment{}).Count(&totalComments)

	var reported []models.Comment
	if err := h.db.Preload("User").Where("is_reported = ?", true).Find(&reported).Error; err != nil {
		respondError(c, err)
		return
	}
	if reported == nil {
		reported = []models.Comment{}
	}

	var recentPolls []models.Poll
	h.db.Preload("Creator").Order("created_at desc").Limit(5).Find(&recentPolls)

	var recentUsers []models.User
	h.db.Order("created_at desc").Limit(5).Find(&recentUsers)

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_polls":       totalPolls,
		"total_votes":       totalVotes,
		"total_comments":    totalComments,
		"reported_comments": reported,
		"recent_polls":      recentPolls,
		"recent_users":      recentUsers,
	})
}

// DeletePoll removes a poll and everything attached to it (ADMIN)
func (h *AdminHandler) DeletePoll(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.polls.Delete(pollID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted successfully"})
}

// DeleteComment removes a comment and its replies (ADMIN)
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
