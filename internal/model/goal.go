package model

import "time"

// Development goal statuses.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// DevelopmentGoal is a tracked improvement target for an employee, optionally
// tied to a skill and target level. Overdue = active with a due date in the
// past.
type DevelopmentGoal struct {
	GoalID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"goal_id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	EmployeeID  string     `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	SkillCode   *string    `gorm:"type:varchar(63)"                               json:"skill_code,omitempty"`
	TargetLevel *int       `gorm:"type:smallint"                                  json:"target_level,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	DueDate     *time.Time `gorm:"type:date"                                      json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (DevelopmentGoal) TableName() string { return "development_goals" }
