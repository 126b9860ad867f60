package dto

// RequirementInput is one required skill inside a role profile payload.
type RequirementInput struct {
	SkillCode     string `json:"skill_code"     binding:"required,min=2,max=63"`
	RequiredLevel int    `json:"required_level" binding:"min=0,max=5"`
	Importance    int    `json:"importance"     binding:"omitempty,min=1,max=5"`
}

// CreateRoleProfileRequest creates a role with its requirement set.
type CreateRoleProfileRequest struct {
	Name         string             `json:"name"  binding:"required,min=2,max=100"`
	Track        string             `json:"track" binding:"omitempty,max=50"`
	Level        int                `json:"level" binding:"required,min=1,max=6"`
	Requirements []RequirementInput `json:"requirements" binding:"omitempty,max=50,dive"`
}

// UpdateRoleProfileRequest patches a role; a non-nil Requirements slice
// replaces the whole set.
type UpdateRoleProfileRequest struct {
	Name         *string             `json:"name"  binding:"omitempty,min=2,max=100"`
	Track        *string             `json:"track" binding:"omitempty,max=50"`
	Level        *int                `json:"level" binding:"omitempty,min=1,max=6"`
	Requirements *[]RequirementInput `json:"requirements" binding:"omitempty,max=50,dive"`
}

// RequirementResponse is one stored requirement.
type RequirementResponse struct {
	SkillCode     string `json:"skill_code"`
	RequiredLevel int    `json:"required_level"`
	Importance    int    `json:"importance"`
}

// RoleProfileResponse is the role view.
type RoleProfileResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Track        string                `json:"track,omitempty"`
	Level        int                   `json:"level"`
	Requirements []RequirementResponse `json:"requirements"`
}
