package models

import "time"

type Comment struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	PollID         int       `gorm:"not null;index" json:"poll_id"`
	UserID         int       `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	Body           string    `gorm:"not null" json:"body"`
	SentimentScore float64   `gorm:"default:0" json:"sentiment_score"`
	ParentID       *int      `json:"parent_id,omitempty"`
	IsReported     bool      `gorm:"default:false" json:"is_reported"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Body     string `json:"body" binding:"required"`
	ParentID *int   `json:"parent_id,omitempty"`
}
