package dto

// SubmitAttemptDTO is the public submission payload. The token travels in the
// URL path; candidate fields are optional (anonymous submissions are allowed).
type SubmitAttemptDTO struct {
	Content        string `json:"content" binding:"required,min=50,max=10000"`
	CandidateEmail string `json:"candidate_email,omitempty" binding:"omitempty,email"`
	CandidateName  string `json:"candidate_name,omitempty" binding:"omitempty,min=1,max=100"`
}

// ReportUpsertDTO carries a manual reviewer's score and feedback. Every
// category is optional; present values must already be in range.
type ReportUpsertDTO struct {
	AttemptID       uint     `json:"attempt_id" binding:"required"`
	Overall         *float64 `json:"overall,omitempty" binding:"omitempty,min=0,max=100"`
	Grammar         *float64 `json:"grammar,omitempty" binding:"omitempty,min=0,max=100"`
	Vocabulary      *float64 `json:"vocabulary,omitempty" binding:"omitempty,min=0,max=100"`
	Coherence       *float64 `json:"coherence,omitempty" binding:"omitempty,min=0,max=100"`
	TaskAchievement *float64 `json:"task_achievement,omitempty" binding:"omitempty,min=0,max=100"`
	Feedback        string   `json:"feedback,omitempty" binding:"omitempty,max=5000"`
}
