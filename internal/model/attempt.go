package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt is one submission against a TestLink. CandidateID stays nil for
// anonymous submissions. SubmittedAt nil would mean in-progress, though the
// submission pipeline always sets it immediately.
type Attempt struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	TestLinkID  uint              `json:"test_link_id" gorm:"not null;index"`
	TestLink    TestLink          `json:"test_link,omitempty" gorm:"foreignKey:TestLinkID"`
	CandidateID *uint             `json:"candidate_id,omitempty" gorm:"index"`
	Candidate   *Candidate        `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	StartedAt   time.Time         `json:"started_at" gorm:"autoCreateTime"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Content     string            `json:"content" gorm:"type:text"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	Report      *Report           `json:"report,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}
