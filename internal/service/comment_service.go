package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

// maxCommentsPerPoll caps an author's comments (replies included) on one poll.
const maxCommentsPerPoll = 5

var (
	positiveWords = []string{"good", "great", "excellent", "awesome", "love", "best", "amazing"}
	negativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "horrible", "poor"}
)

// SentimentScore gives a comment a naive sentiment value: +0.1 for each
// distinct positive word present, -0.1 for each distinct negative word.
// Presence is a case-insensitive substring test, so repeats of the same
// word count once.
func SentimentScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score += 0.1
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score -= 0.1
		}
	}
	return score
}

// CommentService manages the flat parent/child comment thread on a poll.
type CommentService struct {
	db     *gorm.DB
	badges *BadgeService
}

func NewCommentService(db *gorm.DB, badges *BadgeService) *CommentService {
	return &CommentService{db: db, badges: badges}
}

// Add writes a comment or reply. Authors are always authenticated and
// are limited to 5 comments per poll, replies included.
func (c *CommentService) Add(pollID, authorID int, body string, parentID *int) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}

	var poll models.Poll
	if err := c.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find poll: %w", err)
	}

	if parentID != nil {
		var parent models.Comment
		if err := c.db.Where("id = ? AND poll_id = ?", *parentID, pollID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("find parent comment: %w", err)
		}
	}

	var count int64
	if err := c.db.Model(&models.Comment{}).
		Where("poll_id = ? AND user_id = ?", pollID, authorID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if count >= maxCommentsPerPoll {
		return nil, ErrCommentQuota
	}

	comment := models.Comment{
		PollID:         pollID,
		UserID:         authorID,
		Body:           body,
		SentimentScore: SentimentScore(body),
		ParentID:       parentID,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	c.badges.Evaluate(authorID)

	return &comment, nil
}

// ListTopLevel returns a poll's top-level comments, newest first.
func (c *CommentService) ListTopLevel(pollID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.db.Preload("User").
		Where("poll_id = ? AND parent_id IS NULL", pollID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ChildrenOf returns the direct replies to a comment, oldest first.
// Replies are fetched on demand; there is no materialized tree.
func (c *CommentService) ChildrenOf(commentID int) ([]models.Comment, error) {
	var replies []models.Comment
	err := c.db.Preload("User").
		Where("parent_id = ?", commentID).
		Order("created_at").
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}

// Report flags a comment for admin review. Reporting twice is a no-op;
// there is no unreport.
func (c *CommentService) Report(commentID int) error {
	var comment models.Comment
	if err := c.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}
	if comment.IsReported {
		return nil
	}
	if err := c.db.Model(&comment).Update("is_reported", true).Error; err != nil {
		return fmt.Errorf("report comment: %w", err)
	}
	return nil
}

// Delete removes a comment and its direct replies. Admin only; the
// handler checks the role.
func (c *CommentService) Delete(commentID int) error {
	var comment models.Comment
	if err := c.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
