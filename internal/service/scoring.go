package service

import "context"

// ScoringCriteria is everything the scoring collaborator sees about an
// attempt.
type ScoringCriteria struct {
	Prompt       string
	Instructions string
	Content      string
}

// ScoringResult is the rubric produced by the collaborator. Scores are
// nominally 0-100 but the caller clamps them again regardless of what the
// collaborator returned.
type ScoringResult struct {
	Overall         float64  `json:"overall_score"`
	Grammar         float64  `json:"grammar_score"`
	Vocabulary      float64  `json:"vocabulary_score"`
	Coherence       float64  `json:"coherence_score"`
	TaskAchievement float64  `json:"task_achievement_score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

// ScoringService scores one writing sample against its test's prompt and
// instructions.
type ScoringService interface {
	ScoreWritingTest(ctx context.Context, criteria ScoringCriteria) (*ScoringResult, error)
}
