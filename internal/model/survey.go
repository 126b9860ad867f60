package model

import "time"

// Survey statuses.
const (
	SurveyStatusOpen   = "open"
	SurveyStatusClosed = "closed"
)

// Survey is a feedback pulse sent to workspace employees. The overview
// reports responses/invited as the response rate.
type Survey struct {
	SurveyID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"survey_id"`
	WorkspaceID  string     `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	Title        string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Status       string     `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	InvitedCount int        `gorm:"not null;default:0"                             json:"invited_count"`
	ClosesAt     *time.Time `gorm:"type:date"                                      json:"closes_at,omitempty"`
	BaseModel
}

func (Survey) TableName() string { return "surveys" }

// SurveyResponse is one employee's answer. One response per employee per
// survey.
type SurveyResponse struct {
	ResponseID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"response_id"`
	WorkspaceID string `gorm:"type:uuid;not null;index"                         json:"workspace_id"`
	SurveyID    string `gorm:"type:uuid;not null;uniqueIndex:uq_survey_response" json:"survey_id"`
	EmployeeID  string `gorm:"type:uuid;not null;uniqueIndex:uq_survey_response" json:"employee_id"`
	Score       int    `gorm:"type:smallint;not null"                           json:"score"` // 1..10
	Comment     string `gorm:"type:text"                                        json:"comment,omitempty"`
	BaseModel
}

func (SurveyResponse) TableName() string { return "survey_responses" }
