package models

import "time"

// Badge types and the activity thresholds that earn them.
const (
	BadgeActiveVoter  = "Active Voter"  // >= 10 votes cast
	BadgePollCreator  = "Poll Creator"  // >= 5 polls created
	BadgeTopCommenter = "Top Commenter" // >= 20 comments made
)

// Badge is a one-time achievement marker. At most one row per
// (user_id, badge_type); awarding is idempotent.
type Badge struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_badges_user_type" json:"user_id"`
	BadgeType string    `gorm:"not null;uniqueIndex:idx_badges_user_type" json:"badge_type"`
	EarnedAt  time.Time `gorm:"autoCreateTime" json:"earned_at"`
}
