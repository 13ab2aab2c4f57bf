package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

// VoteService enforces at-most-one-vote-per-identity-per-poll.
type VoteService struct {
	db     *gorm.DB
	badges *BadgeService
	now    func() time.Time
}

func NewVoteService(db *gorm.DB, badges *BadgeService) *VoteService {
	return &VoteService{db: db, badges: badges, now: func() time.Time { return time.Now().UTC() }}
}

// Cast records a vote. Checks run in order, each with its own failure:
// poll exists, poll open for this voter, option belongs to the poll, no
// prior vote by this identity. Votes are immutable once written.
func (s *VoteService) Cast(pollID, optionID int, identity Identity) (*models.Vote, error) {
	if !identity.Authenticated() && identity.Email == "" {
		return nil, fmt.Errorf("%w: email is required for guest voting", ErrValidation)
	}

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find poll: %w", err)
	}

	now := s.now()
	if poll.ExpiresAt != nil && !poll.ExpiresAt.After(now) {
		return nil, ErrPollClosed
	}
	if !IsVisible(&poll, now) && identity.UserID != poll.CreatedBy {
		return nil, ErrPollNotYetVisible
	}

	// The option must belong to this poll, not just exist.
	var option models.Option
	if err := s.db.Where("id = ? AND poll_id = ?", optionID, pollID).First(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find option: %w", err)
	}

	var existing int64
	if err := identity.scope(s.db.Model(&models.Vote{}), pollID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing vote: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateVote
	}

	vote := models.Vote{
		PollID:      pollID,
		OptionID:    optionID,
		UserID:      identity.userIDPtr(),
		Email:       identity.emailPtr(),
		IsAnonymous: poll.IsAnonymousVoting,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		// The unique index catches concurrent double submission that
		// slipped past the pre-check. Same outcome as the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("create vote: %w", err)
	}

	// Guest votes never feed badges.
	if identity.Authenticated() {
		s.badges.Evaluate(identity.UserID)
	}

	return &vote, nil
}

// HasVoted reports whether the identity already voted on the poll.
func (s *VoteService) HasVoted(pollID int, identity Identity) (bool, error) {
	var count int64
	if err := identity.scope(s.db.Model(&models.Vote{}), pollID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check vote: %w", err)
	}
	return count > 0, nil
}
