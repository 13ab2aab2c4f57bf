package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

const leaderboardSize = 10

// RankedUser is one leaderboard row.
type RankedUser struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// TrendingPoll pairs a poll with its total vote count.
type TrendingPoll struct {
	Poll  models.Poll `json:"poll"`
	Votes int64       `json:"votes"`
}

// Leaderboard is the full leaderboard read model.
type Leaderboard struct {
	TopVoters     []RankedUser   `json:"top_voters"`
	TopCreators   []RankedUser   `json:"top_creators"`
	TopCommenters []RankedUser   `json:"top_commenters"`
	Trending      []TrendingPoll `json:"trending_polls"`
}

// LeaderboardService surfaces the most active users and busiest polls.
type LeaderboardService struct {
	db    *gorm.DB
	polls *PollService
}

func NewLeaderboardService(db *gorm.DB, polls *PollService) *LeaderboardService {
	return &LeaderboardService{db: db, polls: polls}
}

// Build computes the top-10 lists with group-by counts.
func (l *LeaderboardService) Build() (*Leaderboard, error) {
	board := &Leaderboard{}

	voters, err := l.rank("votes", "votes.user_id")
	if err != nil {
		return nil, err
	}
	board.TopVoters = voters

	creators, err := l.rank("polls", "polls.created_by")
	if err != nil {
		return nil, err
	}
	board.TopCreators = creators

	commenters, err := l.rank("comments", "comments.user_id")
	if err != nil {
		return nil, err
	}
	board.TopCommenters = commenters

	polls, err := l.polls.List(ListFilter{Sort: "trending"})
	if err != nil {
		return nil, err
	}
	if len(polls) > leaderboardSize {
		polls = polls[:leaderboardSize]
	}
	for _, poll := range polls {
		var votes int64
		if err := l.db.Model(&models.Vote{}).Where("poll_id = ?", poll.ID).Count(&votes).Error; err != nil {
			return nil, fmt.Errorf("count poll votes: %w", err)
		}
		board.Trending = append(board.Trending, TrendingPoll{Poll: poll, Votes: votes})
	}

	return board, nil
}

// rank joins users against one activity table and returns the ten
// busiest users.
func (l *LeaderboardService) rank(table, userColumn string) ([]RankedUser, error) {
	var ranked []RankedUser
	err := l.db.Table("users").
		Select("users.id as user_id, users.name as name, count(*) as count").
		Joins(fmt.Sprintf("JOIN %s ON %s = users.id", table, userColumn)).
		Group("users.id").
		Order("count desc").
		Limit(leaderboardSize).
		Scan(&ranked).Error
	if err != nil {
		return nil, fmt.Errorf("rank by %s: %w", table, err)
	}
	return ranked, nil
}
