package models

import "time"

// Vote is one ballot on a poll. Exactly one of UserID/Email is set:
// UserID for authenticated voters, Email for guests. Votes are immutable;
// there is no update or delete endpoint.
type Vote struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	PollID      int       `gorm:"not null;index" json:"poll_id"`
	OptionID    int       `gorm:"not null;index" json:"option_id"`
	UserID      *int      `json:"user_id,omitempty"`
	Email       *string   `json:"email,omitempty"`
	IsAnonymous bool      `gorm:"default:false" json:"is_anonymous"` // copied from the poll at cast time
	CreatedAt   time.Time `json:"created_at"`
}

type CastVoteRequest struct {
	OptionID int    `json:"option_id" binding:"required"`
	Email    string `json:"email"` // required for guest voters
}
