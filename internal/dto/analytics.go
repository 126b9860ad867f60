package dto

// OverviewQuery optionally narrows the time-bounded overview metrics (goals,
// surveys) to records created inside [since, until].
type OverviewQuery struct {
	Since string `form:"since" binding:"omitempty,datetime=2006-01-02"`
	Until string `form:"until" binding:"omitempty,datetime=2006-01-02"`
}

// WorkspaceOverview is the top-of-dashboard aggregate. Served from cache when
// a fresh copy exists.
type WorkspaceOverview struct {
	ActiveEmployees  int               `json:"active_employees"`
	RoleDistribution []RoleCountEntry  `json:"role_distribution"`
	SkillGap         SkillGapOverview  `json:"skill_gap"`
	Goals            GoalCountsEntry   `json:"goals"`
	OpenRiskCases    int               `json:"open_risk_cases"`
	ActivePilots     int               `json:"active_pilots"`
	PendingDecisions int               `json:"pending_decisions"`
	TrackedSkills    int               `json:"tracked_skills"`
	AvgSkillLevel    float64           `json:"avg_skill_level"`
	// SurveyResponseRate is total responses over total invites across all
	// surveys, as a 0..100 percentage.
	SurveyResponseRate float64           `json:"survey_response_rate"`
	TopSkills          []SkillLevelEntry `json:"top_skills"`
}

// RoleCountEntry is one position bucket of the role distribution.
type RoleCountEntry struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// GoalCountsEntry summarises development goals.
type GoalCountsEntry struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// SkillGapOverview aggregates requirement satisfaction across every active
// employee x applicable role requirement pair. PercentSatisfied is 0 when
// TotalCombos is 0.
type SkillGapOverview struct {
	TotalCombos      int     `json:"total_combos"`
	Satisfied        int     `json:"satisfied"`
	PercentSatisfied float64 `json:"percent_satisfied"`
	MissingRatings   int     `json:"missing_ratings"`
	WeightedAvgGap   float64 `json:"weighted_avg_gap"`
}

// SkillLevelEntry is one skill averaged across rated employees.
type SkillLevelEntry struct {
	SkillCode  string  `json:"skill_code"`
	SkillName  string  `json:"skill_name"`
	AvgLevel   float64 `json:"avg_level"`
	RatedCount int     `json:"rated_count"`
}

// EmployeeGapEntry is one unmet requirement for a single employee.
type EmployeeGapEntry struct {
	SkillCode     string `json:"skill_code"`
	SkillName     string `json:"skill_name"`
	RequiredLevel int    `json:"required_level"`
	ActualLevel   *int   `json:"actual_level"` // nil when never rated
	Gap           int    `json:"gap"`
	Importance    int    `json:"importance"`
}

// EmployeeGapsResponse lists an employee's gaps against their role profile.
type EmployeeGapsResponse struct {
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  string             `json:"employee_name"`
	RoleProfileID string             `json:"role_profile_id,omitempty"`
	RoleName      string             `json:"role_name,omitempty"`
	Gaps          []EmployeeGapEntry `json:"gaps"`
}
