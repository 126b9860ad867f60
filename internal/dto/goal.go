package dto

// CreateGoalRequest opens a development goal for an employee.
type CreateGoalRequest struct {
	EmployeeID  string  `json:"employee_id"  binding:"required,uuid"`
	Title       string  `json:"title"        binding:"required,min=2,max=200"`
	SkillCode   *string `json:"skill_code"   binding:"omitempty,min=2,max=63"`
	TargetLevel *int    `json:"target_level" binding:"omitempty,min=0,max=5"`
	DueDate     *string `json:"due_date"     binding:"omitempty,datetime=2006-01-02"`
}

// UpdateGoalRequest patches a goal.
type UpdateGoalRequest struct {
	Title       *string `json:"title"        binding:"omitempty,min=2,max=200"`
	TargetLevel *int    `json:"target_level" binding:"omitempty,min=0,max=5"`
	DueDate     *string `json:"due_date"     binding:"omitempty,datetime=2006-01-02"`
}

// GoalResponse is the goal view. Overdue is derived, never stored.
type GoalResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Title       string  `json:"title"`
	SkillCode   *string `json:"skill_code,omitempty"`
	TargetLevel *int    `json:"target_level,omitempty"`
	Status      string  `json:"status"`
	DueDate     string  `json:"due_date,omitempty"`
	Overdue     bool    `json:"overdue"`
	CompletedAt string  `json:"completed_at,omitempty"`
}
