package models

import "time"

type Poll struct {
	ID                int        `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `json:"description"`
	Category          string     `gorm:"default:General" json:"category"`
	CreatedBy         int        `gorm:"not null;index" json:"created_by"`
	Creator           User       `gorm:"foreignKey:CreatedBy" json:"creator"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ScheduledFor      *time.Time `json:"scheduled_for,omitempty"`
	IsMasked          bool       `gorm:"default:false" json:"is_masked"`
	IsAnonymousVoting bool       `gorm:"default:false" json:"is_anonymous_voting"`
	Image             *string    `json:"image,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Option struct {
	ID         int     `gorm:"primaryKey" json:"id"`
	PollID     int     `gorm:"not null;index" json:"poll_id"`
	OptionText string  `gorm:"not null" json:"option_text"`
	Image      *string `json:"image,omitempty"`
}

// PollCategories is the fixed set of categories a poll can be filed under.
var PollCategories = []string{
	"General", "Politics", "Sports", "Technology",
	"Entertainment", "Health", "Education", "Business",
}
