package dto

// ManagerHomeSummary is the landing view for a manager: their direct reports
// with the signals that need attention, plus a suggested action list.
type ManagerHomeSummary struct {
	TeamSize         int                 `json:"team_size"`
	Reports          []TeamMemberSummary `json:"reports"`
	OpenRiskCases    int                 `json:"open_risk_cases"`
	OverdueGoals     int                 `json:"overdue_goals"`
	UpcomingMeetings []MeetingResponse   `json:"upcoming_meetings"`
	Actions          []SuggestedAction   `json:"actions"`
}

// ScheduleMeetingRequest books a one-on-one with a direct report.
type ScheduleMeetingRequest struct {
	EmployeeID  string `json:"employee_id"  binding:"required,uuid"`
	Title       string `json:"title"        binding:"required,min=2,max=200"`
	StartsAt    string `json:"starts_at"    binding:"required"`
	DurationMin int    `json:"duration_min" binding:"omitempty,min=5,max=480"`
}

// MeetingResponse is one scheduled one-on-one.
type MeetingResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Title        string `json:"title"`
	StartsAt     string `json:"starts_at"`
	DurationMin  int    `json:"duration_min"`
}

// TeamMemberSummary is one direct report row.
type TeamMemberSummary struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	ActiveGoals  int    `json:"active_goals"`
	OverdueGoals int    `json:"overdue_goals"`
	OpenRisks    int    `json:"open_risks"`
	InPilot      bool   `json:"in_pilot"`
}

// SuggestedAction is one rule-derived prompt for the manager.
type SuggestedAction struct {
	Kind       string `json:"kind"`
	EmployeeID string `json:"employee_id,omitempty"`
	Message    string `json:"message"`
}
