package service

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ReactionOutcome says what React did with the submitted reaction.
type ReactionOutcome string

const (
	ReactionAdded   ReactionOutcome = "added"
	ReactionUpdated ReactionOutcome = "updated"
	ReactionRemoved ReactionOutcome = "removed"
)

// ReactionService enforces at-most-one-reaction-per-identity-per-poll
// with toggle semantics: same type removes, different type replaces.
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

func validReactionType(t string) bool {
	for _, known := range models.ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// React adds, updates or removes the identity's reaction on a poll.
func (s *ReactionService) React(pollID int, identity Identity, reactionType string) (ReactionOutcome, error) {
	if !validReactionType(reactionType) {
		return "", ErrInvalidReactionType
	}

	if !identity.Authenticated() {
		if identity.Email == "" {
			return "", fmt.Errorf("%w: email is required for reactions", ErrValidation)
		}
		if !emailPattern.MatchString(identity.Email) {
			return "", ErrInvalidEmail
		}
	}

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find poll: %w", err)
	}

	var existing models.Reaction
	err := identity.scope(s.db, pollID).First(&existing).Error
	switch {
	case err == nil:
		if existing.ReactionType == reactionType {
			// Same type again toggles the reaction off.
			if err := s.db.Delete(&existing).Error; err != nil {
				return "", fmt.Errorf("remove reaction: %w", err)
			}
			return ReactionRemoved, nil
		}
		if err := s.db.Model(&existing).Update("reaction_type", reactionType).Error; err != nil {
			return "", fmt.Errorf("update reaction: %w", err)
		}
		return ReactionUpdated, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := models.Reaction{
			PollID:       pollID,
			UserID:       identity.userIDPtr(),
			Email:        identity.emailPtr(),
			ReactionType: reactionType,
		}
		if err := s.db.Create(&reaction).Error; err != nil {
			// Lost a race with another request from the same identity.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return "", ErrConcurrentReaction
			}
			return "", fmt.Errorf("create reaction: %w", err)
		}
		return ReactionAdded, nil

	default:
		return "", fmt.Errorf("find reaction: %w", err)
	}
}

// Counts aggregates reactions per type for one poll. Derived on read,
// never stored.
func (s *ReactionService) Counts(pollID int) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.ReactionTypes))
	for _, rt := range models.ReactionTypes {
		var count int64
		if err := s.db.Model(&models.Reaction{}).
			Where("poll_id = ? AND reaction_type = ?", pollID, rt).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count reactions: %w", err)
		}
		counts[rt] = count
	}
	return counts, nil
}

// UserReaction returns the identity's current reaction type on a poll,
// or "" if there is none.
func (s *ReactionService) UserReaction(pollID int, identity Identity) (string, error) {
	var reaction models.Reaction
	err := identity.scope(s.db, pollID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find reaction: %w", err)
	}
	return reaction.ReactionType, nil
}
