package models

import "time"

// Reaction types a poll accepts.
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

var ReactionTypes = []string{ReactionLike, ReactionLove, ReactionWow, ReactionSad, ReactionAngry}

// Reaction is a single per-identity reaction on a poll. Same identity rule
// as Vote: UserID for authenticated users, Email for guests.
type Reaction struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	PollID       int       `gorm:"not null;index" json:"poll_id"`
	UserID       *int      `json:"user_id,omitempty"`
	Email        *string   `json:"email,omitempty"`
	ReactionType string    `gorm:"not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReactRequest struct {
	ReactionType string `json:"reaction_type" binding:"required"`
	Email        string `json:"email"` // required for guest reactions
}
