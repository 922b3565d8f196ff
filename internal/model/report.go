package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Score is the rubric breakdown persisted on a Report. Any subset of the five
// categories may be present; each value is 0-100.
type Score struct {
	Overall         *float64 `json:"overall,omitempty"`
	Grammar         *float64 `json:"grammar,omitempty"`
	Vocabulary      *float64 `json:"vocabulary,omitempty"`
	Coherence       *float64 `json:"coherence,omitempty"`
	TaskAchievement *float64 `json:"task_achievement,omitempty"`
}

// IsEmpty reports whether no category is set.
func (s Score) IsEmpty() bool {
	return s.Overall == nil && s.Grammar == nil && s.Vocabulary == nil &&
		s.Coherence == nil && s.TaskAchievement == nil
}

// Report is the scored evaluation of one Attempt. At most one exists per
// attempt; writes replace the whole score object and refresh GeneratedAt.
type Report struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	AttemptID      uint           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	Attempt        *Attempt       `json:"attempt,omitempty" gorm:"foreignKey:AttemptID"`
	OrganizationID string         `json:"organization_id" gorm:"type:uuid;not null;index"`
	Score          datatypes.JSON `json:"score,omitempty" gorm:"type:jsonb"`
	Feedback       string         `json:"feedback,omitempty" gorm:"type:text"`
	GeneratedAt    time.Time      `json:"generated_at" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// SetScore serializes the breakdown into the JSON column. An empty breakdown
// clears the column.
func (r *Report) SetScore(s Score) error {
	if s.IsEmpty() {
		r.Score = nil
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.Score = datatypes.JSON(raw)
	return nil
}

// ScoreBreakdown parses the JSON column. A missing score yields the zero
// breakdown.
func (r *Report) ScoreBreakdown() (Score, error) {
	var s Score
	if len(r.Score) == 0 {
		return s, nil
	}
	err := json.Unmarshal(r.Score, &s)
	return s, err
}
