package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	pkgerrors "github.com/inverness4444/quadrant-landing-sub000/pkg/errors"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// SkillHandler serves the skill catalog and rating endpoints.
type SkillHandler struct {
	skillSvc *service.SkillService
}

// NewSkillHandler creates the SkillHandler.
func NewSkillHandler(skillSvc *service.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

// Create adds a catalog entry.
// POST /api/v1/skills
func (h *SkillHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	skill, err := h.skillSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, skill)
}

// List returns the catalog.
// GET /api/v1/skills
func (h *SkillHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	skills, err := h.skillSvc.List(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": skills})
}

// Update patches a catalog entry.
// PUT /api/v1/skills/:code
func (h *SkillHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "skill code is required")
		return
	}

	var req dto.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	skill, err := h.skillSvc.Update(c.Request.Context(), workspaceID, code, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, skill)
}

// Delete soft-deletes a catalog entry.
// DELETE /api/v1/skills/:code
func (h *SkillHandler) Delete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "skill code is required")
		return
	}

	if err := h.skillSvc.Delete(c.Request.Context(), workspaceID, code, memberID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Rate upserts one rating for an employee.
// PUT /api/v1/employees/:id/skills
func (h *SkillHandler) Rate(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")
	if employeeID == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	var req dto.RateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	rating, err := h.skillSvc.Rate(c.Request.Context(), workspaceID, employeeID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, rating)
}

// EmployeeSkills returns an employee's rating sheet.
// GET /api/v1/employees/:id/skills
func (h *SkillHandler) EmployeeSkills(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	employeeID := c.Param("id")
	if employeeID == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	sheet, err := h.skillSvc.EmployeeSkills(c.Request.Context(), workspaceID, employeeID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, sheet)
}

func (h *SkillHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSkillNotFound):
		response.NotFound(c, 22001, err.Error())
	case errors.Is(err, service.ErrSkillCodeTaken):
		response.Conflict(c, 22002, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10005, err.Error())
	default:
		response.InternalError(c)
	}
}
