package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// RoleProfileHandler serves role profile endpoints.
type RoleProfileHandler struct {
	roleSvc *service.RoleProfileService
}

// NewRoleProfileHandler creates the RoleProfileHandler.
func NewRoleProfileHandler(roleSvc *service.RoleProfileService) *RoleProfileHandler {
	return &RoleProfileHandler{roleSvc: roleSvc}
}

// Create adds a role with its requirements.
// POST /api/v1/role-profiles
func (h *RoleProfileHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateRoleProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	profile, err := h.roleSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, profile)
}

// Get returns one role.
// GET /api/v1/role-profiles/:id
func (h *RoleProfileHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "role profile id is required")
		return
	}

	profile, err := h.roleSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, profile)
}

// List returns every role.
// GET /api/v1/role-profiles
func (h *RoleProfileHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	profiles, err := h.roleSvc.List(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": profiles})
}

// Update patches a role.
// PUT /api/v1/role-profiles/:id
func (h *RoleProfileHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "role profile id is required")
		return
	}

	var req dto.UpdateRoleProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	profile, err := h.roleSvc.Update(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, profile)
}

// Delete soft-deletes a role.
// DELETE /api/v1/role-profiles/:id
func (h *RoleProfileHandler) Delete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "role profile id is required")
		return
	}

	if err := h.roleSvc.Delete(c.Request.Context(), workspaceID, id, memberID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *RoleProfileHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleProfileNotFound):
		response.NotFound(c, 23001, err.Error())
	case errors.Is(err, service.ErrUnknownSkillCode):
		response.BadRequest(c, 23002, err.Error())
	default:
		response.InternalError(c)
	}
}
