package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
)

// Badge thresholds on cumulative activity counts.
const (
	activeVoterThreshold  = 10
	pollCreatorThreshold  = 5
	topCommenterThreshold = 20
)

// BadgeService derives achievement badges from activity counts. Evaluate
// is idempotent: the badges table has a unique (user_id, badge_type)
// index and inserts are ON CONFLICT DO NOTHING.
type BadgeService struct {
	db *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

// Evaluate recomputes the three activity counts for a user and awards
// whatever badges are newly earned. Called as an observer after votes,
// poll creations and comments; failures are logged, never propagated to
// the triggering write.
func (b *BadgeService) Evaluate(userID int) {
	if err := b.evaluate(userID); err != nil {
		log.Printf("badge evaluation failed for user %d: %v", userID, err)
	}
}

func (b *BadgeService) evaluate(userID int) error {
	var votes int64
	if err := b.db.Model(&models.Vote{}).Where("user_id = ?", userID).Count(&votes).Error; err != nil {
		return fmt.Errorf("count votes: %w", err)
	}
	if votes >= activeVoterThreshold {
		if err := b.award(userID, models.BadgeActiveVoter); err != nil {
			return err
		}
	}

	var polls int64
	if err := b.db.Model(&models.Poll{}).Where("created_by = ?", userID).Count(&polls).Error; err != nil {
		return fmt.Errorf("count polls: %w", err)
	}
	if polls >= pollCreatorThreshold {
		if err := b.award(userID, models.BadgePollCreator); err != nil {
			return err
		}
	}

	var comments int64
	if err := b.db.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&comments).Error; err != nil {
		return fmt.Errorf("count comments: %w", err)
	}
	if comments >= topCommenterThreshold {
		if err := b.award(userID, models.BadgeTopCommenter); err != nil {
			return err
		}
	}

	return nil
}

func (b *BadgeService) award(userID int, badgeType string) error {
	badge := models.Badge{UserID: userID, BadgeType: badgeType}
	err := b.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge).Error
	if err != nil {
		return fmt.Errorf("award %s: %w", badgeType, err)
	}
	return nil
}

// ListForUser returns the badges a user has earned.
func (b *BadgeService) ListForUser(userID int) ([]models.Badge, error) {
	var badges []models.Badge
	if err := b.db.Where("user_id = ?", userID).Order("earned_at").Find(&badges).Error; err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return badges, nil
}
