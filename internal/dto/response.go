package dto

// ── auth responses ──

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int            `json:"expires_in"` // access token lifetime in seconds
	Member       MemberResponse `json:"member"`
}

// MemberResponse is the sanitized account view.
type MemberResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	WorkspaceID string  `json:"workspace_id"`
	EmployeeID  *string `json:"employee_id,omitempty"`
}

// MemberDetailResponse backs GET /auth/me.
type MemberDetailResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	WorkspaceID string             `json:"workspace_id"`
	Employee    *EmployeeResponse  `json:"employee,omitempty"`
	Workspace   *WorkspaceResponse `json:"workspace,omitempty"`
	CreatedAt   string             `json:"created_at"`
}

// ── pagination ──

// PaginationRequest is the shared paging query block.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default applied.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default applied.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset converts page/page_size into an offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
