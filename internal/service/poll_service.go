package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

// scheduledForLayout matches the datetime-local input format the web
// form submits.
const scheduledForLayout = "2006-01-02T15:04"

// PollService governs poll creation, visibility windows and read-side
// vote aggregation.
type PollService struct {
	db     *gorm.DB
	badges *BadgeService
	now    func() time.Time
}

func NewPollService(db *gorm.DB, badges *BadgeService) *PollService {
	return &PollService{db: db, badges: badges, now: func() time.Time { return time.Now().UTC() }}
}

// CreatePollInput carries the poll-creation form. Option image references
// are parallel to Options; missing entries mean no image.
type CreatePollInput struct {
	Title             string
	Description       string
	Category          string
	Options           []string
	OptionImages      []*string
	Image             *string
	IsMasked          bool
	IsAnonymousVoting bool
	Expiration        string // "never", "custom", or an hour count like "24"
	CustomHours       int    // used when Expiration == "custom"
	ScheduledFor      string // datetime-local string; bad input clears the schedule
}

// Create validates the input and writes the poll plus its options in one
// transaction. The creator's badges are re-evaluated on success.
func (s *PollService) Create(creatorID int, in CreatePollInput) (*models.Poll, error) {
	title := strings.TrimSpace(in.Title)

	var optionTexts []string
	for _, opt := range in.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			optionTexts = append(optionTexts, trimmed)
		}
	}

	if title == "" || len(optionTexts) < 2 {
		return nil, fmt.Errorf("%w: poll title and at least two options are required", ErrValidation)
	}

	category := in.Category
	if category == "" {
		category = "General"
	}

	poll := models.Poll{
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		Category:          category,
		CreatedBy:         creatorID,
		IsMasked:          in.IsMasked,
		IsAnonymousVoting: in.IsAnonymousVoting,
		ExpiresAt:         s.resolveExpiry(in.Expiration, in.CustomHours),
		ScheduledFor:      parseScheduledFor(in.ScheduledFor),
		Image:             in.Image,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&poll).Error; err != nil {
			return err
		}
		for i, text := range optionTexts {
			option := models.Option{PollID: poll.ID, OptionText: text}
			if i < len(in.OptionImages) {
				option.Image = in.OptionImages[i]
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	s.badges.Evaluate(creatorID)

	return &poll, nil
}

// resolveExpiry turns the expiry policy into an absolute timestamp, or
// nil for polls that never expire.
func (s *PollService) resolveExpiry(expiration string, customHours int) *time.Time {
	if expiration == "" || expiration == "never" {
		return nil
	}
	hours := customHours
	if expiration != "custom" {
		parsed, err := strconv.Atoi(expiration)
		if err != nil {
			return nil
		}
		hours = parsed
	}
	if hours <= 0 {
		return nil
	}
	t := s.now().Add(time.Duration(hours) * time.Hour)
	return &t
}

// parseScheduledFor parses the scheduled publish time. Unparseable input
// degrades to "not scheduled" rather than failing the request; the frontend
// depends on that.
func parseScheduledFor(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(scheduledForLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// IsVisible reports whether the poll shows up in general listings.
func IsVisible(poll *models.Poll, now time.Time) bool {
	return poll.ScheduledFor == nil || !poll.ScheduledFor.After(now)
}

// IsOpenForVoting reports whether viewerID may cast a vote right now.
// The creator can vote on their own scheduled poll before it goes
// public; nobody can vote after expiry.
func IsOpenForVoting(poll *models.Poll, viewerID int, now time.Time) bool {
	if poll.ExpiresAt != nil && !poll.ExpiresAt.After(now) {
		return false
	}
	return IsVisible(poll, now) || viewerID == poll.CreatedBy
}

// Get fetches one poll. Scheduled-future polls are only visible to their
// creator.
func (s *PollService) Get(pollID, viewerID int) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.Preload("Creator").First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get poll: %w", err)
	}
	if !IsVisible(&poll, s.now()) && viewerID != poll.CreatedBy {
		return nil, ErrPollNotYetVisible
	}
	return &poll, nil
}

// Options returns the poll's options in creation order.
func (s *PollService) Options(pollID int) ([]models.Option, error) {
	var options []models.Option
	if err := s.db.Where("poll_id = ?", pollID).Order("id").Find(&options).Error; err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return options, nil
}

// OptionTally is the vote count and share for a single option.
type OptionTally struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TallyResult maps option id to its tally. Percentages are all zero when
// nobody has voted. Ties are not broken; the consumer sorts if it wants to.
type TallyResult struct {
	TotalVotes int                 `json:"total_votes"`
	Options    map[int]OptionTally `json:"options"`
}

// Tally aggregates live vote counts per option.
func (s *PollService) Tally(pollID int) (*TallyResult, error) {
	options, err := s.Options(pollID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.Vote{}).Where("poll_id = ?", pollID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	result := &TallyResult{TotalVotes: int(total), Options: make(map[int]OptionTally, len(options))}
	for _, option := range options {
		var count int64
		if err := s.db.Model(&models.Vote{}).Where("option_id = ?", option.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count option votes: %w", err)
		}
		tally := OptionTally{Count: int(count)}
		if total > 0 {
			tally.Percentage = float64(count) / float64(total) * 100
		}
		result.Options[option.ID] = tally
	}
	return result, nil
}

// ListFilter narrows and orders the public poll listing.
type ListFilter struct {
	Search   string
	Category string
	Sort     string // "trending" (default) or "recent"
}

// List returns polls visible to the general public: scheduled-future
// polls are excluded. Trending sorts by vote count, recent by creation time.
func (s *PollService) List(filter ListFilter) ([]models.Poll, error) {
	now := s.now()
	q := s.db.Preload("Creator").Where("scheduled_for IS NULL OR scheduled_for <= ?", now)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if filter.Sort == "recent" {
		q = q.Order("created_at desc")
	}

	var polls []models.Poll
	if err := q.Find(&polls).Error; err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}

	if filter.Sort != "recent" {
		polls = s.sortByVotes(polls)
	}
	return polls, nil
}

// sortByVotes orders polls by total vote count, busiest first.
func (s *PollService) sortByVotes(polls []models.Poll) []models.Poll {
	type entry struct {
		poll  models.Poll
		votes int64
	}
	entries := make([]entry, 0, len(polls))
	for _, poll := range polls {
		var count int64
		s.db.Model(&models.Vote{}).Where("poll_id = ?", poll.ID).Count(&count)
		entries = append(entries, entry{poll: poll, votes: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].votes > entries[j].votes
	})
	sorted := make([]models.Poll, len(entries))
	for i, e := range entries {
		sorted[i] = e.poll
	}
	return sorted
}

// Delete removes a poll and everything hanging off it. The cascade is
// explicit: options, votes, comments and reactions go in the same
// transaction as the poll row.
func (s *PollService) Delete(pollID int) error {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find poll: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Vote{}, &models.Reaction{}, &models.Comment{}, &models.Option{}} {
			if err := tx.Where("poll_id = ?", pollID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&poll).Error
	})
	if err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}
	return nil
}

// SiteStats are the headline numbers shown on the index page.
type SiteStats struct {
	TotalPolls    int64 `json:"total_polls"`
	TotalVotes    int64 `json:"total_votes"`
	TotalComments int64 `json:"total_comments"`
}

// Stats counts polls, votes and comments site-wide.
func (s *PollService) Stats() (*SiteStats, error) {
	stats := &SiteStats{}
	if err := s.db.Model(&models.Poll{}).Count(&stats.TotalPolls).Error; err != nil {
		return nil, fmt.Errorf("count polls: %w", err)
	}
	if err := s.db.Model(&models.Vote{}).Count(&stats.TotalVotes).Error; err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	if err := s.db.Model(&models.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return stats, nil
}
