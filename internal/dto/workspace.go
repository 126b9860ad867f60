package dto

// WorkspaceResponse is the tenant view.
type WorkspaceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Plan     string `json:"plan"`
	IsActive bool   `json:"is_active"`
}

// UpdateWorkspaceRequest updates tenant settings.
type UpdateWorkspaceRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
	Plan *string `json:"plan" binding:"omitempty,oneof=trial team enterprise"`
}

// InviteMemberRequest creates a new login account in the workspace. The
// response carries a generated temporary password.
type InviteMemberRequest struct {
	Name       string  `json:"name"        binding:"required,min=2,max=100"`
	Email      string  `json:"email"       binding:"required,email"`
	Role       string  `json:"role"        binding:"required,oneof=admin hr manager member"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
}

// InviteMemberResponse returns the created account and its one-time password.
type InviteMemberResponse struct {
	Member       MemberResponse `json:"member"`
	TempPassword string         `json:"temp_password"`
}

// AssignRoleRequest changes a member's role.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin hr manager member"`
}
