package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db)
	polls := NewPollService(db, badges)
	votes := NewVoteService(db, badges)
	comments := NewCommentService(db, badges)
	leaderboard := NewLeaderboardService(db, polls)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// alice creates two polls, bob one
	var pollIDs []int
	for i := 0; i < 2; i++ {
		poll, _ := createPoll(t, db, alice.ID, nil)
		pollIDs = append(pollIDs, poll.ID)
	}
	bobPoll, bobOptions := createPoll(t, db, bob.ID, nil)
	pollIDs = append(pollIDs, bobPoll.ID)

	// bob votes on everything, alice only on bob's poll
	for _, pollID := range pollIDs {
		options, err := polls.Options(pollID)
		require.NoError(t, err)
		_, err = votes.Cast(pollID, options[0].ID, UserIdentity(bob.ID))
		require.NoError(t, err)
	}
	_, err := votes.Cast(bobPoll.ID, bobOptions[0].ID, UserIdentity(alice.ID))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := comments.Add(bobPoll.ID, alice.ID, fmt.Sprintf("comment %d", i), nil)
		require.NoError(t, err)
	}

	board, err := leaderboard.Build()
	require.NoError(t, err)

	require.NotEmpty(t, board.TopVoters)
	assert.Equal(t, bob.ID, board.TopVoters[0].UserID)
	assert.EqualValues(t, 3, board.TopVoters[0].Count)

	require.NotEmpty(t, board.TopCreators)
	assert.Equal(t, alice.ID, board.TopCreators[0].UserID)
	assert.EqualValues(t, 2, board.TopCreators[0].Count)

	require.NotEmpty(t, board.TopCommenters)
	assert.Equal(t, alice.ID, board.TopCommenters[0].UserID)

	require.NotEmpty(t, board.Trending)
	assert.Equal(t, bobPoll.ID, board.Trending[0].Poll.ID)
	assert.EqualValues(t, 2, board.Trending[0].Votes)
}
