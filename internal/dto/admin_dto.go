package dto

// TestCreateDTO creates a new writing test. Ranges mirror what the admin form
// enforces client-side.
type TestCreateDTO struct {
	Title            string `json:"title" binding:"required,min=1,max=200"`
	Description      string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Prompt           string `json:"prompt" binding:"required,min=10,max=5000"`
	Instructions     string `json:"instructions,omitempty" binding:"omitempty,max=2000"`
	TimeLimitMinutes *int   `json:"time_limit_minutes,omitempty" binding:"omitempty,min=5,max=480"`
	Status           string `json:"status,omitempty" binding:"omitempty,oneof=draft active archived"`
}

// TestUpdateDTO is a partial update; nil fields are left untouched. The
// module key is immutable and deliberately absent.
type TestUpdateDTO struct {
	Title            *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description      *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Prompt           *string `json:"prompt,omitempty" binding:"omitempty,min=10,max=5000"`
	Instructions     *string `json:"instructions,omitempty" binding:"omitempty,max=2000"`
	TimeLimitMinutes *int    `json:"time_limit_minutes,omitempty" binding:"omitempty,min=5,max=480"`
	Status           *string `json:"status,omitempty" binding:"omitempty,oneof=draft active archived"`
}

// InviteCandidateDTO invites one candidate to a test. ExpiresInDays defaults
// to 7, MaxAttempts to 1. Notify opts in to sending the invitation email.
type InviteCandidateDTO struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty" binding:"omitempty,min=1,max=90"`
	MaxAttempts   *int   `json:"max_attempts,omitempty" binding:"omitempty,min=1,max=10"`
	Notify        bool   `json:"notify,omitempty"`
}

// TestListQuery filters the admin test listing.
type TestListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=draft active archived"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// AttemptListQuery filters the admin attempt listing. Submitted=nil returns
// everything.
type AttemptListQuery struct {
	TestID    uint  `form:"test_id" binding:"omitempty"`
	Submitted *bool `form:"submitted" binding:"omitempty"`
	Limit     int   `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset    int   `form:"offset" binding:"omitempty,min=0"`
}

// ListQuery is plain pagination for listings without extra filters.
type ListQuery struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
