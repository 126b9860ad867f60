package model

import "time"

// Talent decision types. monitor_risk is the primary risk signal; promote and
// role_change feed the "wins" side of quarterly reports.
const (
	DecisionPromote            = "promote"
	DecisionLateralMove        = "lateral_move"
	DecisionRoleChange         = "role_change"
	DecisionMonitorRisk        = "monitor_risk"
	DecisionCompensationReview = "compensation_review"
	DecisionExit               = "exit"
)

// Talent decision statuses. proposed → approved → implemented; rejected is
// terminal and reachable from proposed or approved.
const (
	DecisionStatusProposed    = "proposed"
	DecisionStatusApproved    = "approved"
	DecisionStatusImplemented = "implemented"
	DecisionStatusRejected    = "rejected"
)

// TalentDecision is a recorded people-management decision for an employee.
type TalentDecision struct {
	DecisionID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"decision_id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	EmployeeID  string     `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Type        string     `gorm:"type:varchar(30);not null"                      json:"type"`
	Status      string     `gorm:"type:varchar(20);not null;default:'proposed'"   json:"status"`
	Rationale   string     `gorm:"type:text"                                      json:"rationale,omitempty"`
	DecidedBy   *string    `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (TalentDecision) TableName() string { return "talent_decisions" }
