package model

// Workspace is the tenant. Every piece of business data belongs to exactly
// one workspace and every query is filtered by workspace_id.
type Workspace struct {
	WorkspaceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workspace_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Slug        string `gorm:"type:varchar(63);not null;uniqueIndex"          json:"slug"`
	Plan        string `gorm:"type:varchar(20);not null;default:'trial'"      json:"plan"` // trial | team | enterprise
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

func (Workspace) TableName() string { return "workspaces" }

// Member roles.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleHR      = "hr"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Member is a login account inside a workspace. A member may optionally be
// linked to the employee record that represents them on the org chart.
type Member struct {
	MemberID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	WorkspaceID  string  `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	EmployeeID   *string `gorm:"type:uuid"                                      json:"employee_id,omitempty"`
	VersionedModel

	Workspace *Workspace `gorm:"foreignKey:WorkspaceID;references:WorkspaceID" json:"workspace,omitempty"`
	Employee  *Employee  `gorm:"foreignKey:EmployeeID;references:EmployeeID"   json:"employee,omitempty"`
}

func (Member) TableName() string { return "members" }
