package dto

// CreateRiskCaseRequest opens a risk case manually.
type CreateRiskCaseRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Level      string  `json:"level"       binding:"required,oneof=low medium high"`
	Reason     string  `json:"reason"      binding:"required,min=2,max=200"`
	OwnerID    *string `json:"owner_id"    binding:"omitempty,uuid"`
}

// TransitionRiskCaseRequest moves a case through its state machine. Note is
// required when resolving.
type TransitionRiskCaseRequest struct {
	Status string `json:"status" binding:"required,oneof=monitoring resolved"`
	Note   string `json:"note"   binding:"omitempty,max=4000"`
}

// RiskCaseResponse is the case view.
type RiskCaseResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	Level          string  `json:"level"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason"`
	OwnerID        *string `json:"owner_id,omitempty"`
	ResolutionNote string  `json:"resolution_note,omitempty"`
	CreatedAt      string  `json:"created_at"`
	ResolvedAt     string  `json:"resolved_at,omitempty"`
}

// EmployeeRiskEntry is one row of the workspace risk list. Every active
// employee appears; Problems explains why (or carries the single "no skill
// ratings recorded" entry when there is no evidence at all).
type EmployeeRiskEntry struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Position     string   `json:"position"`
	AtRisk       bool     `json:"at_risk"`
	Problems     []string `json:"problems"`
}
