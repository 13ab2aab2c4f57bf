package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

func TestActiveVoterBadge(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db)
	votes := NewVoteService(db, badges)
	voter := createUser(t, db, "bob")
	creator := createUser(t, db, "alice")

	// nine votes across nine polls: no badge yet
	for i := 0; i < 9; i++ {
		poll, options := createPoll(t, db, creator.ID, nil)
		_, err := votes.Cast(poll.ID, options[0].ID, UserIdentity(voter.ID))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ?", voter.ID, models.BadgeActiveVoter).
		Count(&count).Error)
	assert.Zero(t, count)

	// the tenth vote earns the badge
	poll, options := createPoll(t, db, creator.ID, nil)
	_, err := votes.Cast(poll.ID, options[0].ID, UserIdentity(voter.ID))
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ?", voter.ID, models.BadgeActiveVoter).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// re-evaluating twice more never duplicates the row
	badges.Evaluate(voter.ID)
	badges.Evaluate(voter.ID)

	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ?", voter.ID, models.BadgeActiveVoter).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPollCreatorBadge(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db)
	polls := NewPollService(db, badges)
	creator := createUser(t, db, "alice")

	for i := 0; i < 5; i++ {
		_, err := polls.Create(creator.ID, CreatePollInput{
			Title:   fmt.Sprintf("poll %d", i),
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ?", creator.ID, models.BadgePollCreator).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTopCommenterBadge(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db)
	comments := NewCommentService(db, badges)
	author := createUser(t, db, "alice")

	// spread across polls to stay inside the per-poll quota
	for i := 0; i < 4; i++ {
		poll, _ := createPoll(t, db, author.ID, nil)
		for j := 0; j < 5; j++ {
			_, err := comments.Add(poll.ID, author.ID, fmt.Sprintf("comment %d-%d", i, j), nil)
			require.NoError(t, err)
		}
	}

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ?", author.ID, models.BadgeTopCommenter).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGuestVotesDoNotFeedBadges(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db)
	votes := NewVoteService(db, badges)
	creator := createUser(t, db, "alice")

	for i := 0; i < 12; i++ {
		poll, options := createPoll(t, db, creator.ID, nil)
		_, err := votes.Cast(poll.ID, options[0].ID, GuestIdentity("guest@mail.com"))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).Count(&count).Error)
	assert.Zero(t, count)
}
