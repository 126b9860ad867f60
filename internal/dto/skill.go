package dto

// CreateSkillRequest adds a catalog entry.
type CreateSkillRequest struct {
	Code string `json:"code" binding:"required,min=2,max=63"`
	Name string `json:"name" binding:"required,min=2,max=100"`
	Type string `json:"type" binding:"required,oneof=hard soft product data"`
}

// UpdateSkillRequest patches a catalog entry.
type UpdateSkillRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
	Type *string `json:"type" binding:"omitempty,oneof=hard soft product data"`
}

// SkillResponse is the catalog view.
type SkillResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RateSkillRequest records one piece of level evidence.
type RateSkillRequest struct {
	SkillCode string `json:"skill_code" binding:"required,min=2,max=63"`
	Level     int    `json:"level"      binding:"min=0,max=5"`
	Source    string `json:"source"     binding:"required,oneof=self manager integration"`
}

// RatingResponse is one stored rating.
type RatingResponse struct {
	SkillCode string `json:"skill_code"`
	Level     int    `json:"level"`
	Source    string `json:"source"`
	UpdatedAt string `json:"updated_at"`
}

// EmployeeSkillsResponse is the per-employee rating sheet with the effective
// level resolved across sources.
type EmployeeSkillsResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Skills     []EffectiveSkillRating `json:"skills"`
}

// EffectiveSkillRating is the resolved level of one skill.
type EffectiveSkillRating struct {
	SkillCode      string           `json:"skill_code"`
	SkillName      string           `json:"skill_name,omitempty"`
	EffectiveLevel int              `json:"effective_level"`
	Sources        []RatingResponse `json:"sources"`
}
