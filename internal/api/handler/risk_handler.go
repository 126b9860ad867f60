package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// RiskHandler serves risk case endpoints.
type RiskHandler struct {
	riskSvc *service.RiskService
}

// NewRiskHandler creates the RiskHandler.
func NewRiskHandler(riskSvc *service.RiskService) *RiskHandler {
	return &RiskHandler{riskSvc: riskSvc}
}

// Create opens a case. Reopening an identical live case returns the
// existing one instead of a duplicate.
// POST /api/v1/risk-cases
func (h *RiskHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateRiskCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	riskCase, err := h.riskSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, riskCase)
}

// Get returns one case.
// GET /api/v1/risk-cases/:id
func (h *RiskHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "risk case id is required")
		return
	}

	riskCase, err := h.riskSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, riskCase)
}

// List returns cases, optionally filtered by status.
// GET /api/v1/risk-cases
func (h *RiskHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	cases, err := h.riskSvc.List(c.Request.Context(), workspaceID, c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": cases})
}

// Transition moves a case to monitoring or resolved.
// PUT /api/v1/risk-cases/:id/status
func (h *RiskHandler) Transition(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "risk case id is required")
		return
	}

	var req dto.TransitionRiskCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	riskCase, err := h.riskSvc.Transition(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, riskCase)
}

// EmployeeRiskList returns the per-employee risk assessment across the
// whole workspace.
// GET /api/v1/risk-cases/employees
func (h *RiskHandler) EmployeeRiskList(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	entries, err := h.riskSvc.EmployeeRiskList(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": entries})
}

func (h *RiskHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRiskCaseNotFound):
		response.NotFound(c, 27001, err.Error())
	case errors.Is(err, service.ErrInvalidRiskTransition):
		response.Conflict(c, 27002, err.Error())
	case errors.Is(err, service.ErrResolutionNoteRequired):
		response.BadRequest(c, 27003, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
