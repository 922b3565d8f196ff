package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Candidate is a person identified by email within one organization. The
// composite unique index backs the lookup-or-create flow: concurrent inserts
// for the same address collapse onto a single row at the store level.
type Candidate struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	OrganizationID string            `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_candidates_org_email"`
	Email          string            `json:"email" gorm:"not null;uniqueIndex:idx_candidates_org_email"`
	Name           string            `json:"name,omitempty"`
	Metadata       datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}
