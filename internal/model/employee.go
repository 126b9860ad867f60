package model

// Employee is a person on the workspace org chart. ManagerID is an explicit
// relation; the manager's "team" is exactly the employees pointing at them.
type Employee struct {
	EmployeeID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	WorkspaceID string  `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	Name        string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Position    string  `gorm:"type:varchar(100);not null"                     json:"position"`
	Level       int     `gorm:"type:smallint;not null;default:1"               json:"level"` // 1..6
	Track       *string `gorm:"type:varchar(50)"                               json:"track,omitempty"`
	TrackLevel  *int    `gorm:"type:smallint"                                  json:"track_level,omitempty"`
	ManagerID   *string `gorm:"type:uuid;index"                                json:"manager_id,omitempty"`
	IsActive    bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	Manager *Employee `gorm:"foreignKey:ManagerID;references:EmployeeID" json:"manager,omitempty"`
}

func (Employee) TableName() string { return "employees" }
