package model

import "time"

// Risk case levels.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Risk case statuses. open → monitoring → resolved; resolved is terminal and
// requires a resolution note.
const (
	RiskStatusOpen       = "open"
	RiskStatusMonitoring = "monitoring"
	RiskStatusResolved   = "resolved"
)

// RiskCase tracks an at-risk employee situation until it is resolved. At most
// one non-resolved case exists per (employee, reason); EnsureOpen relies on
// that to stay idempotent.
type RiskCase struct {
	RiskCaseID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"risk_case_id"`
	WorkspaceID    string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	EmployeeID     string     `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Level          string     `gorm:"type:varchar(20);not null;default:'medium'"     json:"level"`
	Status         string     `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Reason         string     `gorm:"type:varchar(200);not null"                     json:"reason"`
	OwnerID        *string    `gorm:"type:uuid"                                      json:"owner_id,omitempty"`
	ResolutionNote string     `gorm:"type:text"                                      json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (RiskCase) TableName() string { return "risk_cases" }
