package dto

// CreatePilotRequest creates a pilot run with its ordered step titles.
type CreatePilotRequest struct {
	Name       string   `json:"name"       binding:"required,min=2,max=200"`
	Hypothesis string   `json:"hypothesis" binding:"omitempty,max=2000"`
	StartsAt   *string  `json:"starts_at"  binding:"omitempty,datetime=2006-01-02"`
	EndsAt     *string  `json:"ends_at"    binding:"omitempty,datetime=2006-01-02"`
	StepTitles []string `json:"step_titles" binding:"omitempty,max=30,dive,min=2,max=200"`
}

// UpdatePilotRequest patches a pilot run.
type UpdatePilotRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=200"`
	Hypothesis *string `json:"hypothesis" binding:"omitempty,max=2000"`
	Status     *string `json:"status"     binding:"omitempty,oneof=draft active completed cancelled"`
	StartsAt   *string `json:"starts_at"  binding:"omitempty,datetime=2006-01-02"`
	EndsAt     *string `json:"ends_at"    binding:"omitempty,datetime=2006-01-02"`
}

// UpdatePilotStepRequest moves a step through its state machine.
type UpdatePilotStepRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress done skipped"`
}

// AddParticipantRequest links an employee into a pilot.
type AddParticipantRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// AddPilotNoteRequest attaches an observation.
type AddPilotNoteRequest struct {
	Body string `json:"body" binding:"required,min=1,max=4000"`
}

// PilotStepResponse is one step view.
type PilotStepResponse struct {
	ID         string `json:"id"`
	Position   int    `json:"position"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// PilotParticipantResponse is one linked employee.
type PilotParticipantResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
}

// PilotNoteResponse is one note.
type PilotNoteResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// PilotResponse is the pilot view.
type PilotResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Hypothesis   string                     `json:"hypothesis,omitempty"`
	Status       string                     `json:"status"`
	StartsAt     string                     `json:"starts_at,omitempty"`
	EndsAt       string                     `json:"ends_at,omitempty"`
	Steps        []PilotStepResponse        `json:"steps"`
	Participants []PilotParticipantResponse `json:"participants"`
	Notes        []PilotNoteResponse        `json:"notes,omitempty"`
}
