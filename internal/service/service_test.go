package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

// newTestDB opens an in-memory sqlite database with the full schema,
// including the uniqueness indexes the ledgers depend on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Poll{},
		&models.Option{},
		&models.Vote{},
		&models.Comment{},
		&models.Reaction{},
		&models.Badge{},
	))

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_poll_identity
		 ON votes (poll_id, COALESCE(user_id, 0), COALESCE(email, ''))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reactions_poll_identity
		 ON reactions (poll_id, COALESCE(user_id, 0), COALESCE(email, ''))`,
	}
	for _, stmt := range indexes {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createPoll writes a poll with two options directly, bypassing the
// service, for tests that want full control over the fields.
func createPoll(t *testing.T, db *gorm.DB, creatorID int, mutate func(*models.Poll)) (*models.Poll, []models.Option) {
	t.Helper()
	poll := models.Poll{
		Title:     "Favorite color?",
		Category:  "General",
		CreatedBy: creatorID,
	}
	if mutate != nil {
		mutate(&poll)
	}
	require.NoError(t, db.Create(&poll).Error)

	options := []models.Option{
		{PollID: poll.ID, OptionText: "A"},
		{PollID: poll.ID, OptionText: "B"},
	}
	for i := range options {
		require.NoError(t, db.Create(&options[i]).Error)
	}
	return &poll, options
}

func futureTime(d time.Duration) *time.Time {
	t := time.Now().UTC().Add(d)
	return &t
}
