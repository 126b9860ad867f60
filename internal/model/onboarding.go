package model

import "time"

// Onboarding step statuses. Steps complete individually in order; the final
// "review" step is terminal for the whole flow.
const (
	OnboardingStepPending = "pending"
	OnboardingStepDone    = "done"
)

// Onboarding step kinds.
const (
	OnboardingKindTask   = "task"
	OnboardingKindReview = "review"
)

// OnboardingStep is one entry of an employee's sequential onboarding list.
type OnboardingStep struct {
	StepID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"step_id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	EmployeeID  string     `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Position    int        `gorm:"type:smallint;not null"                         json:"position"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Kind        string     `gorm:"type:varchar(20);not null;default:'task'"       json:"kind"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	BaseModel
}

func (OnboardingStep) TableName() string { return "onboarding_steps" }
