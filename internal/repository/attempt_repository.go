package repository

import (
	"errors"
	"time"

	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
)

// ErrAttemptLimitExceeded is returned by CreateWithLimit when the link
// already carries its maximum number of attempts.
var ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")

type AttemptRepository interface {
	// CreateWithLimit inserts the attempt, enforcing maxAttempts atomically.
	// A nil maxAttempts means unlimited.
	CreateWithLimit(attempt *model.Attempt, maxAttempts *int) error
	CountByLink(testLinkID uint) (int64, error)
	FindByIDWithDetails(id uint) (*model.Attempt, error)
	FindAllForOrg(orgID string, testID uint, submitted *bool, limit, offset int) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// CreateWithLimit runs the count check and the insert in one transaction.
// Touching the parent link row first takes its write lock, so concurrent
// submissions against the same link serialize and the count below cannot go
// stale between check and insert.
func (r *attemptRepository) CreateWithLimit(attempt *model.Attempt, maxAttempts *int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if maxAttempts != nil {
			if err := tx.Model(&model.TestLink{}).
				Where("id = ?", attempt.TestLinkID).
				Update("updated_at", time.Now()).Error; err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&model.Attempt{}).
				Where("test_link_id = ?", attempt.TestLinkID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*maxAttempts) {
				return ErrAttemptLimitExceeded
			}
		}
		return tx.Create(attempt).Error
	})
}

func (r *attemptRepository) CountByLink(testLinkID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).Where("test_link_id = ?", testLinkID).Count(&count).Error
	return count, err
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("TestLink.Test").
		Preload("Candidate").
		Preload("Report").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllForOrg(orgID string, testID uint, submitted *bool, limit, offset int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	query := r.db.Model(&model.Attempt{}).
		Joins("JOIN test_links ON test_links.id = attempts.test_link_id AND test_links.deleted_at IS NULL").
		Joins("JOIN tests ON tests.id = test_links.test_id AND tests.deleted_at IS NULL").
		Where("tests.organization_id = ?", orgID).
		Preload("TestLink.Test").
		Preload("Candidate").
		Preload("Report").
		Order("attempts.started_at DESC")
	if testID != 0 {
		query = query.Where("test_links.test_id = ?", testID)
	}
	if submitted != nil {
		if *submitted {
			query = query.Where("attempts.submitted_at IS NOT NULL")
		} else {
			query = query.Where("attempts.submitted_at IS NULL")
		}
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&attempts).Error
	return attempts, err
}
