package model

// RoleProfile is a named role with required skill levels. Employees are
// compared against it to produce the skill gap views.
type RoleProfile struct {
	RoleProfileID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_profile_id"`
	WorkspaceID   string `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Track         string `gorm:"type:varchar(50)"                               json:"track,omitempty"`
	Level         int    `gorm:"type:smallint;not null;default:1"               json:"level"`
	VersionedModel

	Requirements []RoleSkillRequirement `gorm:"foreignKey:RoleProfileID" json:"requirements,omitempty"`
}

func (RoleProfile) TableName() string { return "role_profiles" }

// RoleSkillRequirement is one required skill of a role. Importance weights
// the requirement in the weighted-average gap score.
type RoleSkillRequirement struct {
	RequirementID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"requirement_id"`
	WorkspaceID   string `gorm:"type:uuid;not null;index"                       json:"workspace_id"`
	RoleProfileID string `gorm:"type:uuid;not null;index"                       json:"role_profile_id"`
	SkillCode     string `gorm:"type:varchar(63);not null"                      json:"skill_code"`
	RequiredLevel int    `gorm:"type:smallint;not null"                         json:"required_level"` // 0..5
	Importance    int    `gorm:"type:smallint;not null;default:1"               json:"importance"`     // 1..5
	BaseModel
}

func (RoleSkillRequirement) TableName() string { return "role_skill_requirements" }
