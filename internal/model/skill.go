package model

// Skill types.
const (
	SkillTypeHard    = "hard"
	SkillTypeSoft    = "soft"
	SkillTypeProduct = "product"
	SkillTypeData    = "data"
)

// Rating sources, ordered by trust: manager overrides self, integration is
// inferred evidence.
const (
	RatingSourceSelf        = "self"
	RatingSourceManager     = "manager"
	RatingSourceIntegration = "integration"
)

// Skill is a workspace-scoped catalog entry. Code is the stable key ratings
// and role requirements reference.
type Skill struct {
	SkillID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"skill_id"`
	WorkspaceID string `gorm:"type:uuid;not null;uniqueIndex:uq_skill_code"   json:"workspace_id"`
	Code        string `gorm:"type:varchar(63);not null;uniqueIndex:uq_skill_code" json:"code"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Type        string `gorm:"type:varchar(20);not null;default:'hard'"       json:"type"`
	VersionedModel
}

func (Skill) TableName() string { return "skills" }

// EmployeeSkillRating is one piece of level evidence. An employee can hold at
// most one rating per (skill, source); aggregation resolves the effective
// level across sources.
type EmployeeSkillRating struct {
	RatingID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"rating_id"`
	WorkspaceID string `gorm:"type:uuid;not null;index"                              json:"workspace_id"`
	EmployeeID  string `gorm:"type:uuid;not null;uniqueIndex:uq_rating_source"       json:"employee_id"`
	SkillCode   string `gorm:"type:varchar(63);not null;uniqueIndex:uq_rating_source" json:"skill_code"`
	Level       int    `gorm:"type:smallint;not null"                                json:"level"` // 0..5
	Source      string `gorm:"type:varchar(20);not null;uniqueIndex:uq_rating_source" json:"source"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (EmployeeSkillRating) TableName() string { return "employee_skill_ratings" }
