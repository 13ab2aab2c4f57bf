package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/pollboard/backend/internal/middleware"
	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// GetComments returns all top-level comments for a poll
func (h *CommentHandler) GetComments(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.ListTopLevel(pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, comments)
}

// GetReplies returns the direct replies to a comment
func (h *CommentHandler) GetReplies(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	replies, err := h.comments.ChildrenOf(commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if replies == nil {
		replies = []models.Comment{}
	}

	c.JSON(http.StatusOK, replies)
}

// CreateComment adds a comment or reply to a poll (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID := middleware.CurrentUserID(c)
	comment, err := h.comments.Add(pollID, authorID, input.Body, input.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ReportComment flags a comment for admin review (PROTECTED)
func (h *CommentHandler) ReportComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Report(commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment reported to admin"})
}
