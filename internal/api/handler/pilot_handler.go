package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// PilotHandler serves pilot run endpoints.
type PilotHandler struct {
	pilotSvc *service.PilotService
}

// NewPilotHandler creates the PilotHandler.
func NewPilotHandler(pilotSvc *service.PilotService) *PilotHandler {
	return &PilotHandler{pilotSvc: pilotSvc}
}

// Create adds a pilot run.
// POST /api/v1/pilots
func (h *PilotHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreatePilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	pilot, err := h.pilotSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, pilot)
}

// Get returns one pilot.
// GET /api/v1/pilots/:id
func (h *PilotHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "pilot id is required")
		return
	}

	pilot, err := h.pilotSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, pilot)
}

// List returns pilots, optionally filtered by status.
// GET /api/v1/pilots
func (h *PilotHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	pilots, err := h.pilotSvc.List(c.Request.Context(), workspaceID, c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": pilots})
}

// Update patches a pilot.
// PUT /api/v1/pilots/:id
func (h *PilotHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "pilot id is required")
		return
	}

	var req dto.UpdatePilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	pilot, err := h.pilotSvc.Update(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, pilot)
}

// Delete soft-deletes a pilot.
// DELETE /api/v1/pilots/:id
func (h *PilotHandler) Delete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "pilot id is required")
		return
	}

	if err := h.pilotSvc.Delete(c.Request.Context(), workspaceID, id, memberID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateStep moves a step through its state machine.
// PUT /api/v1/pilots/:id/steps/:stepId
func (h *PilotHandler) UpdateStep(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	stepID := c.Param("stepId")
	if id == "" || stepID == "" {
		response.BadRequest(c, 10001, "pilot id and step id are required")
		return
	}

	var req dto.UpdatePilotStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	step, err := h.pilotSvc.UpdateStep(c.Request.Context(), workspaceID, id, stepID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, step)
}

// AddParticipant links an employee into a pilot.
// POST /api/v1/pilots/:id/participants
func (h *PilotHandler) AddParticipant(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "pilot id is required")
		return
	}

	var req dto.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	if err := h.pilotSvc.AddParticipant(c.Request.Context(), workspaceID, id, memberID, &req); err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, nil)
}

// RemoveParticipant unlinks an employee from a pilot.
// DELETE /api/v1/pilots/:id/participants/:employeeId
func (h *PilotHandler) RemoveParticipant(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	employeeID := c.Param("employeeId")
	if id == "" || employeeID == "" {
		response.BadRequest(c, 10001, "pilot id and employee id are required")
		return
	}

	if err := h.pilotSvc.RemoveParticipant(c.Request.Context(), workspaceID, id, employeeID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// AddNote attaches an observation.
// POST /api/v1/pilots/:id/notes
func (h *PilotHandler) AddNote(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "pilot id is required")
		return
	}

	var req dto.AddPilotNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	note, err := h.pilotSvc.AddNote(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, note)
}

func (h *PilotHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPilotNotFound):
		response.NotFound(c, 25001, err.Error())
	case errors.Is(err, service.ErrPilotStepNotFound):
		response.NotFound(c, 25002, err.Error())
	case errors.Is(err, service.ErrInvalidStepTransition):
		response.Conflict(c, 25003, err.Error())
	case errors.Is(err, service.ErrParticipantExists):
		response.Conflict(c, 25004, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
