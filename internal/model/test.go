package model

import (
	"time"

	"gorm.io/gorm"
)

// ModuleKeyWriting is the only assessment module this service hosts. The
// column exists so tests from other modules can share the table later.
const ModuleKeyWriting = "writing"

// Test statuses.
const (
	TestStatusDraft    = "draft"
	TestStatusActive   = "active"
	TestStatusArchived = "archived"
)

// Test is an assessment template owned by one organization. ModuleKey is
// immutable after creation.
type Test struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrganizationID   string         `json:"organization_id" gorm:"type:uuid;not null;index"`
	ModuleKey        string         `json:"module_key" gorm:"not null;default:'writing'"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty"`
	Prompt           string         `json:"prompt" gorm:"type:text;not null"`
	Instructions     string         `json:"instructions,omitempty" gorm:"type:text"`
	TimeLimitMinutes *int           `json:"time_limit_minutes,omitempty"`
	Status           string         `json:"status" gorm:"not null;default:'draft'"`
	CreatedBy        string         `json:"created_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
