package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// DecisionHandler serves talent decision endpoints.
type DecisionHandler struct {
	decisionSvc *service.DecisionService
}

// NewDecisionHandler creates the DecisionHandler.
func NewDecisionHandler(decisionSvc *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionSvc: decisionSvc}
}

// Create proposes a decision.
// POST /api/v1/decisions
func (h *DecisionHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	decision, err := h.decisionSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, decision)
}

// Get returns one decision.
// GET /api/v1/decisions/:id
func (h *DecisionHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "decision id is required")
		return
	}

	decision, err := h.decisionSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, decision)
}

// List returns decisions filtered by employee, type, status and date range.
// GET /api/v1/decisions
func (h *DecisionHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	var req dto.DecisionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	decisions, err := h.decisionSvc.List(c.Request.Context(), workspaceID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": decisions})
}

// Transition moves a decision to a new status.
// PUT /api/v1/decisions/:id/status
func (h *DecisionHandler) Transition(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "decision id is required")
		return
	}

	var req dto.TransitionDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	decision, err := h.decisionSvc.Transition(c.Request.Context(), workspaceID, id, memberID, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, decision)
}

func (h *DecisionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDecisionNotFound):
		response.NotFound(c, 26001, err.Error())
	case errors.Is(err, service.ErrInvalidDecisionTransition):
		response.Conflict(c, 26002, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
