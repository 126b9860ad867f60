package model

import "time"

// Pilot run statuses.
const (
	PilotStatusDraft     = "draft"
	PilotStatusActive    = "active"
	PilotStatusCompleted = "completed"
	PilotStatusCancelled = "cancelled"
)

// Pilot step statuses. pending → in_progress → done | skipped; done and
// skipped are terminal.
const (
	PilotStepPending    = "pending"
	PilotStepInProgress = "in_progress"
	PilotStepDone       = "done"
	PilotStepSkipped    = "skipped"
)

// PilotRun is a time-boxed HR initiative with ordered steps and linked
// participants.
type PilotRun struct {
	PilotRunID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pilot_run_id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	Name        string     `gorm:"type:varchar(200);not null"                     json:"name"`
	Hypothesis  string     `gorm:"type:text"                                      json:"hypothesis,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	StartsAt    *time.Time `gorm:"type:date"                                      json:"starts_at,omitempty"`
	EndsAt      *time.Time `gorm:"type:date"                                      json:"ends_at,omitempty"`
	VersionedModel

	Steps        []PilotRunStep        `gorm:"foreignKey:PilotRunID" json:"steps,omitempty"`
	Participants []PilotRunParticipant `gorm:"foreignKey:PilotRunID" json:"participants,omitempty"`
	Notes        []PilotRunNote        `gorm:"foreignKey:PilotRunID" json:"notes,omitempty"`
}

func (PilotRun) TableName() string { return "pilot_runs" }

// PilotRunStep is one ordered step of a pilot.
type PilotRunStep struct {
	StepID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"step_id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	PilotRunID  string     `gorm:"type:uuid;not null;index"                       json:"pilot_run_id"`
	Position    int        `gorm:"type:smallint;not null"                         json:"position"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	BaseModel
}

func (PilotRunStep) TableName() string { return "pilot_run_steps" }

// PilotRunParticipant links an employee into a pilot.
type PilotRunParticipant struct {
	ParticipantID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"participant_id"`
	WorkspaceID   string `gorm:"type:uuid;not null;index"                            json:"workspace_id"`
	PilotRunID    string `gorm:"type:uuid;not null;uniqueIndex:uq_pilot_participant" json:"pilot_run_id"`
	EmployeeID    string `gorm:"type:uuid;not null;uniqueIndex:uq_pilot_participant" json:"employee_id"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (PilotRunParticipant) TableName() string { return "pilot_run_participants" }

// PilotRunNote is a free-form observation attached to a pilot.
type PilotRunNote struct {
	NoteID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"note_id"`
	WorkspaceID string `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	PilotRunID  string `gorm:"type:uuid;not null;index"                       json:"pilot_run_id"`
	AuthorID    string `gorm:"type:uuid;not null"                             json:"author_id"`
	Body        string `gorm:"type:text;not null"                             json:"body"`
	BaseModel
}

func (PilotRunNote) TableName() string { return "pilot_run_notes" }
