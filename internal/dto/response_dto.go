package dto

import (
	"time"

	"github.com/scribehire/scribehire/internal/model"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// TestResponseDTO is the admin view of a test.
type TestResponseDTO struct {
	ID               uint      `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	ModuleKey        string    `json:"module_key"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Prompt           string    `json:"prompt"`
	Instructions     string    `json:"instructions,omitempty"`
	TimeLimitMinutes *int      `json:"time_limit_minutes,omitempty"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PublicTestDTO is what a candidate holding a token is allowed to see. No
// organization or authorship detail leaks through it.
type PublicTestDTO struct {
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Prompt           string     `json:"prompt"`
	Instructions     string     `json:"instructions,omitempty"`
	TimeLimitMinutes *int       `json:"time_limit_minutes,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	MaxAttempts      *int       `json:"max_attempts,omitempty"`
	AttemptsUsed     int        `json:"attempts_used"`
}

type CandidateResponseDTO struct {
	ID             uint      `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TestLinkResponseDTO carries the stored link columns plus the derived
// status and the attempt count it was derived from.
type TestLinkResponseDTO struct {
	ID           uint       `json:"id"`
	TestID       uint       `json:"test_id"`
	Token        string     `json:"token"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	MaxAttempts  *int       `json:"max_attempts,omitempty"`
	Status       string     `json:"status"`
	AttemptCount int        `json:"attempt_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// InviteResponseDTO is returned by the invitation endpoint.
type InviteResponseDTO struct {
	Candidate CandidateResponseDTO `json:"candidate"`
	TestLink  TestLinkResponseDTO  `json:"test_link"`
	InviteURL string               `json:"invite_url"`
}

type AttemptResponseDTO struct {
	ID          uint                  `json:"id"`
	TestLinkID  uint                  `json:"test_link_id"`
	TestID      uint                  `json:"test_id,omitempty"`
	TestTitle   string                `json:"test_title,omitempty"`
	CandidateID *uint                 `json:"candidate_id,omitempty"`
	Candidate   *CandidateResponseDTO `json:"candidate,omitempty"`
	StartedAt   time.Time             `json:"started_at"`
	SubmittedAt *time.Time            `json:"submitted_at,omitempty"`
	Content     string                `json:"content,omitempty"`
	HasReport   bool                  `json:"has_report"`
	CreatedAt   time.Time             `json:"created_at"`
}

type ReportResponseDTO struct {
	ID             uint        `json:"id"`
	AttemptID      uint        `json:"attempt_id"`
	OrganizationID string      `json:"organization_id"`
	Score          model.Score `json:"score,omitempty"`
	Feedback       string      `json:"feedback,omitempty"`
	GeneratedAt    time.Time   `json:"generated_at"`
}

// ScoringResultDTO is the AI path's return value; it includes the narrative
// lists that are not persisted on the report row.
type ScoringResultDTO struct {
	Report       ReportResponseDTO `json:"report"`
	Strengths    []string          `json:"strengths,omitempty"`
	Improvements []string          `json:"improvements,omitempty"`
}
