package model

import (
	"time"

	"gorm.io/gorm"
)

// Derived TestLink statuses. Never stored; always computed from the raw
// columns so a link cannot carry a stale status.
const (
	LinkStatusActive    = "active"
	LinkStatusExpired   = "expired"
	LinkStatusCompleted = "completed"
)

// TestLink is one tokenized invitation to attempt a Test. The token is the
// sole public capability: anyone holding it can submit. Domain columns are
// written once; only updated_at moves, when the submission path serializes
// attempt inserts on the row.
type TestLink struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Token       string         `json:"token" gorm:"not null;uniqueIndex"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	MaxAttempts *int           `json:"max_attempts,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Status derives the link state from expiry and attempt count. A nil
// ExpiresAt never expires; a nil MaxAttempts never completes.
func (l *TestLink) Status(attemptCount int, now time.Time) string {
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return LinkStatusExpired
	}
	if l.MaxAttempts != nil && attemptCount >= *l.MaxAttempts {
		return LinkStatusCompleted
	}
	return LinkStatusActive
}
