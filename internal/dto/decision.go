package dto

// CreateDecisionRequest proposes a talent decision for an employee.
type CreateDecisionRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Type       string `json:"type"        binding:"required,oneof=promote lateral_move role_change monitor_risk compensation_review exit"`
	Rationale  string `json:"rationale"   binding:"omitempty,max=4000"`
}

// DecisionListRequest filters decision listings.
type DecisionListRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Type       string `form:"type"        binding:"omitempty,oneof=promote lateral_move role_change monitor_risk compensation_review exit"`
	Status     string `form:"status"      binding:"omitempty,oneof=proposed approved implemented rejected"`
	Since      string `form:"since"       binding:"omitempty,datetime=2006-01-02"`
	Until      string `form:"until"       binding:"omitempty,datetime=2006-01-02"`
}

// TransitionDecisionRequest moves a decision through its state machine.
type TransitionDecisionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved implemented rejected"`
}

// DecisionResponse is the decision view.
type DecisionResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Rationale    string `json:"rationale,omitempty"`
	CreatedAt    string `json:"created_at"`
	ResolvedAt   string `json:"resolved_at,omitempty"`
}
