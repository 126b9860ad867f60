package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// GoalHandler serves development goal endpoints.
type GoalHandler struct {
	goalSvc *service.GoalService
}

// NewGoalHandler creates the GoalHandler.
func NewGoalHandler(goalSvc *service.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// Create opens a goal.
// POST /api/v1/goals
func (h *GoalHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	goal, err := h.goalSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, goal)
}

// Get returns one goal.
// GET /api/v1/goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "goal id is required")
		return
	}

	goal, err := h.goalSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, goal)
}

// List returns goals filtered by employee and status query params.
// GET /api/v1/goals
func (h *GoalHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	goals, err := h.goalSvc.List(c.Request.Context(), workspaceID, c.Query("employee_id"), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": goals})
}

// Update patches an active goal.
// PUT /api/v1/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "goal id is required")
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	goal, err := h.goalSvc.Update(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, goal)
}

// Complete closes a goal.
// PUT /api/v1/goals/:id/complete
func (h *GoalHandler) Complete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "goal id is required")
		return
	}

	goal, err := h.goalSvc.Complete(c.Request.Context(), workspaceID, id, memberID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, goal)
}

// Delete soft-deletes a goal.
// DELETE /api/v1/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "goal id is required")
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), workspaceID, id, memberID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *GoalHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		response.NotFound(c, 24001, err.Error())
	case errors.Is(err, service.ErrGoalAlreadyCompleted):
		response.Conflict(c, 24002, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, service.ErrSkillNotFound):
		response.BadRequest(c, 22001, err.Error())
	default:
		response.InternalError(c)
	}
}
