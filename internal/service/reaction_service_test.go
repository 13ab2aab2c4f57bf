package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

func TestReactToggleMatrix(t *testing.T) {
	db := newTestDB(t)
	reactions := NewReactionService(db)
	creator := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, creator.ID, nil)
	identity := UserIdentity(creator.ID)

	// none -> added
	outcome, err := reactions.React(poll.ID, identity, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, outcome)

	current, err := reactions.UserReaction(poll.ID, identity)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLove, current)

	// different type -> updated, still exactly one row
	outcome, err = reactions.React(poll.ID, identity, models.ReactionWow)
	require.NoError(t, err)
	assert.Equal(t, ReactionUpdated, outcome)

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("poll_id = ?", poll.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	current, err = reactions.UserReaction(poll.ID, identity)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionWow, current)

	// same type -> removed, no row left
	outcome, err = reactions.React(poll.ID, identity, models.ReactionWow)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, outcome)

	require.NoError(t, db.Model(&models.Reaction{}).Where("poll_id = ?", poll.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReactValidation(t *testing.T) {
	db := newTestDB(t)
	reactions := NewReactionService(db)
	creator := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, creator.ID, nil)

	t.Run("invalid type", func(t *testing.T) {
		_, err := reactions.React(poll.ID, UserIdentity(creator.ID), "meh")
		assert.ErrorIs(t, err, ErrInvalidReactionType)
	})

	t.Run("guest without email", func(t *testing.T) {
		_, err := reactions.React(poll.ID, GuestIdentity(""), models.ReactionLike)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("guest email format", func(t *testing.T) {
		for _, bad := range []string{"not-an-email", "a@b", "a@b.c", "@b.com", "a b@c.com"} {
			_, err := reactions.React(poll.ID, GuestIdentity(bad), models.ReactionLike)
			assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", bad)
		}
	})

	t.Run("missing poll", func(t *testing.T) {
		_, err := reactions.React(99999, UserIdentity(creator.ID), models.ReactionLike)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReactGuestIdentity(t *testing.T) {
	db := newTestDB(t)
	reactions := NewReactionService(db)
	creator := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, creator.ID, nil)

	outcome, err := reactions.React(poll.ID, GuestIdentity("guest@mail.com"), models.ReactionSad)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, outcome)

	// separate guest emails are separate identities
	outcome, err = reactions.React(poll.ID, GuestIdentity("other@mail.com"), models.ReactionSad)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, outcome)

	counts, err := reactions.Counts(poll.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[models.ReactionSad])
	assert.EqualValues(t, 0, counts[models.ReactionLike])
	assert.Len(t, counts, len(models.ReactionTypes))
}
