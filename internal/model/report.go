package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReportPayload is the typed quarterly report body, persisted as JSONB.
// It implements the GORM Scanner/Valuer pair.
type ReportPayload struct {
	Headcount        int                 `json:"headcount"`
	RoleDistribution []RoleCount         `json:"role_distribution"`
	SkillGap         SkillGapSummary     `json:"skill_gap"`
	Goals            GoalCounts          `json:"goals"`
	Pilots           []PilotSummary      `json:"pilots"`
	Decisions        DecisionCounts      `json:"decisions"`
	TopRisks         []DecisionHighlight `json:"top_risks"`
	TopWins          []DecisionHighlight `json:"top_wins"`
}

// RoleCount is one slice of the role distribution.
type RoleCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// SkillGapSummary aggregates role×skill requirement coverage.
type SkillGapSummary struct {
	TotalCombos      int     `json:"total_combos"`
	Satisfied        int     `json:"satisfied"`
	PercentSatisfied float64 `json:"percent_satisfied"`
	MissingRatings   int     `json:"missing_ratings"`
	WeightedAvgGap   float64 `json:"weighted_avg_gap"`
}

// GoalCounts buckets development goals.
type GoalCounts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// PilotSummary is the per-pilot slice of a report.
type PilotSummary struct {
	PilotRunID   string `json:"pilot_run_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	StepsDone    int    `json:"steps_done"`
	StepsTotal   int    `json:"steps_total"`
	Participants int    `json:"participants"`
}

// DecisionCounts buckets talent decisions made in the quarter.
type DecisionCounts struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

// DecisionHighlight is one entry of the top-risks / top-wins lists.
type DecisionHighlight struct {
	DecisionID   string    `json:"decision_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Scan parses the JSONB column.
func (p *ReportPayload) Scan(src interface{}) error {
	if src == nil {
		*p = ReportPayload{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("ReportPayload.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, p)
}

// Value serializes the payload for the JSONB column.
func (p ReportPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// QuarterlyReport caches one computed report per (workspace, year, quarter).
// Regeneration overwrites payload and generated_at; is_locked only gates
// note edits.
type QuarterlyReport struct {
	ReportID    string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	WorkspaceID string        `gorm:"type:uuid;not null;uniqueIndex:uq_report_quarter" json:"workspace_id"`
	Year        int           `gorm:"not null;uniqueIndex:uq_report_quarter"         json:"year"`
	Quarter     int           `gorm:"type:smallint;not null;uniqueIndex:uq_report_quarter" json:"quarter"` // 1..4
	Payload     ReportPayload `gorm:"type:jsonb;not null"                            json:"payload"`
	IsLocked    bool          `gorm:"not null;default:false"                         json:"is_locked"`
	Notes       string        `gorm:"type:text"                                      json:"notes,omitempty"`
	GeneratedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"generated_at"`
	BaseModel
}

func (QuarterlyReport) TableName() string { return "quarterly_reports" }
