package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	pkgerrors "github.com/inverness4444/quadrant-landing-sub000/pkg/errors"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// WorkspaceHandler serves tenant settings and member management.
type WorkspaceHandler struct {
	wsSvc *service.WorkspaceService
}

// NewWorkspaceHandler creates the WorkspaceHandler.
func NewWorkspaceHandler(wsSvc *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{wsSvc: wsSvc}
}

// Get returns the caller's workspace.
// GET /api/v1/workspace
func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	ws, err := h.wsSvc.Get(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, ws)
}

// Update patches workspace settings.
// PUT /api/v1/workspace
func (h *WorkspaceHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	ws, err := h.wsSvc.Update(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, ws)
}

// ListMembers pages through workspace accounts.
// GET /api/v1/workspace/members
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	members, total, err := h.wsSvc.ListMembers(c.Request.Context(), workspaceID, &page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, members, total, page.GetPage(), page.GetPageSize())
}

// InviteMember creates an account with a one-time password.
// POST /api/v1/workspace/members
func (h *WorkspaceHandler) InviteMember(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	invited, err := h.wsSvc.InviteMember(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, invited)
}

// AssignRole changes a member's role.
// PUT /api/v1/workspace/members/:id/role
func (h *WorkspaceHandler) AssignRole(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	targetID := c.Param("id")
	if targetID == "" {
		response.BadRequest(c, 10001, "member id is required")
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	member, err := h.wsSvc.AssignRole(c.Request.Context(), workspaceID, targetID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, member)
}

func (h *WorkspaceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound):
		response.NotFound(c, 20006, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 20007, err.Error())
	case errors.Is(err, service.ErrOwnerImmutable):
		response.Forbidden(c, 20008, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10005, err.Error())
	default:
		response.InternalError(c)
	}
}
