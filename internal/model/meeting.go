package model

import "time"

// Meeting is a scheduled one-on-one between a manager and an employee. Feeds
// the manager home "upcoming meetings" panel and the iCalendar feed.
type Meeting struct {
	MeetingID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"meeting_id"`
	WorkspaceID string    `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	ManagerID   string    `gorm:"type:uuid;not null;index"                       json:"manager_id"`
	EmployeeID  string    `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	StartsAt    time.Time `gorm:"not null"                                       json:"starts_at"`
	DurationMin int       `gorm:"type:smallint;not null;default:30"              json:"duration_min"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Manager  *Employee `gorm:"foreignKey:ManagerID;references:EmployeeID"  json:"manager,omitempty"`
}

func (Meeting) TableName() string { return "meetings" }
