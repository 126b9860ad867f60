package dto

// CreateEmployeeRequest adds a person to the org chart.
type CreateEmployeeRequest struct {
	Name       string  `json:"name"        binding:"required,min=2,max=100"`
	Position   string  `json:"position"    binding:"required,min=2,max=100"`
	Level      int     `json:"level"       binding:"required,min=1,max=6"`
	Track      *string `json:"track"       binding:"omitempty,max=50"`
	TrackLevel *int    `json:"track_level" binding:"omitempty,min=1,max=6"`
	ManagerID  *string `json:"manager_id"  binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest patches an employee. Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Position   *string `json:"position"    binding:"omitempty,min=2,max=100"`
	Level      *int    `json:"level"       binding:"omitempty,min=1,max=6"`
	Track      *string `json:"track"       binding:"omitempty,max=50"`
	TrackLevel *int    `json:"track_level" binding:"omitempty,min=1,max=6"`
	ManagerID  *string `json:"manager_id"  binding:"omitempty,uuid"`
	IsActive   *bool   `json:"is_active"`
}

// EmployeeListRequest filters the employee listing.
type EmployeeListRequest struct {
	PaginationRequest
	ManagerID       string `form:"manager_id" binding:"omitempty,uuid"`
	Track           string `form:"track"`
	Position        string `form:"position"`
	IncludeInactive bool   `form:"include_inactive"`
}

// EmployeeResponse is the employee view.
type EmployeeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Level       int     `json:"level"`
	Track       *string `json:"track,omitempty"`
	TrackLevel  *int    `json:"track_level,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

// ImportEmployeesResponse summarizes a bulk .xlsx import.
type ImportEmployeesResponse struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError points at one bad spreadsheet row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ── onboarding ──

// StartOnboardingRequest creates the sequential step list for an employee.
type StartOnboardingRequest struct {
	Titles []string `json:"titles" binding:"required,min=1,max=20,dive,min=2,max=200"`
}

// OnboardingStepResponse is one onboarding step.
type OnboardingStepResponse struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// OnboardingResponse is the whole flow with its completion flag.
type OnboardingResponse struct {
	EmployeeID string                   `json:"employee_id"`
	Completed  bool                     `json:"completed"`
	Steps      []OnboardingStepResponse `json:"steps"`
}
