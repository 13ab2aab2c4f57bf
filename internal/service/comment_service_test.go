package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"This is the best and most awesome poll", 0.2},
		{"terrible and awful", -0.2},
		{"GOOD GOOD GOOD", 0.1}, // repeats count once
		{"love it but the options are poor", 0.0},
		{"nothing to see here", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.InDelta(t, tt.want, SentimentScore(tt.text), 0.0001)
		})
	}
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db, NewBadgeService(db))
	author := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, author.ID, nil)

	t.Run("empty body", func(t *testing.T) {
		_, err := comments.Add(poll.ID, author.ID, "   ", nil)
		assert.ErrorIs(t, err, ErrEmptyComment)
	})

	t.Run("missing poll", func(t *testing.T) {
		_, err := comments.Add(99999, author.ID, "hello", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("stores sentiment", func(t *testing.T) {
		comment, err := comments.Add(poll.ID, author.ID, "great poll, love it", nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, comment.SentimentScore, 0.0001)
	})
}

func TestCommentQuota(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db, NewBadgeService(db))
	author := createUser(t, db, "alice")
	other := createUser(t, db, "bob")
	poll, _ := createPoll(t, db, author.ID, nil)

	// four top-level comments plus one reply: replies count toward the quota
	var firstID int
	for i := 0; i < 4; i++ {
		comment, err := comments.Add(poll.ID, author.ID, fmt.Sprintf("comment %d", i), nil)
		require.NoError(t, err)
		if i == 0 {
			firstID = comment.ID
		}
	}
	_, err := comments.Add(poll.ID, author.ID, "a reply", &firstID)
	require.NoError(t, err)

	// the sixth fails
	_, err = comments.Add(poll.ID, author.ID, "one too many", nil)
	assert.ErrorIs(t, err, ErrCommentQuota)

	// but other authors are unaffected
	_, err = comments.Add(poll.ID, other.ID, "plenty of room here", nil)
	assert.NoError(t, err)
}

func TestCommentReplies(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db, NewBadgeService(db))
	author := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, author.ID, nil)

	parent, err := comments.Add(poll.ID, author.ID, "top level", nil)
	require.NoError(t, err)
	reply, err := comments.Add(poll.ID, author.ID, "a reply", &parent.ID)
	require.NoError(t, err)

	// nesting below one level is allowed by the data model
	_, err = comments.Add(poll.ID, author.ID, "nested reply", &reply.ID)
	require.NoError(t, err)

	t.Run("reply parent must be on the same poll", func(t *testing.T) {
		otherPoll, _ := createPoll(t, db, author.ID, nil)
		_, err := comments.Add(otherPoll.ID, author.ID, "wrong thread", &parent.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("top-level listing excludes replies", func(t *testing.T) {
		topLevel, err := comments.ListTopLevel(poll.ID)
		require.NoError(t, err)
		require.Len(t, topLevel, 1)
		assert.Equal(t, parent.ID, topLevel[0].ID)
	})

	t.Run("children are fetched on demand", func(t *testing.T) {
		children, err := comments.ChildrenOf(parent.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, reply.ID, children[0].ID)
	})
}

func TestReportComment(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db, NewBadgeService(db))
	author := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, author.ID, nil)

	comment, err := comments.Add(poll.ID, author.ID, "report me", nil)
	require.NoError(t, err)

	require.NoError(t, comments.Report(comment.ID))
	require.NoError(t, comments.Report(comment.ID)) // idempotent

	var reloaded models.Comment
	require.NoError(t, db.First(&reloaded, comment.ID).Error)
	assert.True(t, reloaded.IsReported)

	assert.ErrorIs(t, comments.Report(99999), ErrNotFound)
}

func TestDeleteCommentRemovesReplies(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentService(db, NewBadgeService(db))
	author := createUser(t, db, "alice")
	poll, _ := createPoll(t, db, author.ID, nil)

	parent, err := comments.Add(poll.ID, author.ID, "top level", nil)
	require.NoError(t, err)
	_, err = comments.Add(poll.ID, author.ID, "a reply", &parent.ID)
	require.NoError(t, err)

	require.NoError(t, comments.Delete(parent.ID))

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("poll_id = ?", poll.ID).Count(&count).Error)
	assert.Zero(t, count)
}
