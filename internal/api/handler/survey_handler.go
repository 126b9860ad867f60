package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// SurveyHandler serves pulse survey endpoints.
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates the SurveyHandler.
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Create opens a survey.
// POST /api/v1/surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	survey, err := h.surveySvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, survey)
}

// Get returns one survey with its aggregates.
// GET /api/v1/surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "survey id is required")
		return
	}

	survey, err := h.surveySvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, survey)
}

// List returns every survey.
// GET /api/v1/surveys
func (h *SurveyHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	surveys, err := h.surveySvc.List(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": surveys})
}

// Close stops accepting responses.
// PUT /api/v1/surveys/:id/close
func (h *SurveyHandler) Close(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "survey id is required")
		return
	}

	survey, err := h.surveySvc.Close(c.Request.Context(), workspaceID, id, memberID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, survey)
}

// SubmitResponse records one employee's answer.
// POST /api/v1/surveys/:id/responses
func (h *SurveyHandler) SubmitResponse(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "survey id is required")
		return
	}

	var req dto.SubmitSurveyResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	if err := h.surveySvc.SubmitResponse(c.Request.Context(), workspaceID, id, memberID, &req); err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, nil)
}

func (h *SurveyHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		response.NotFound(c, 29005, err.Error())
	case errors.Is(err, service.ErrSurveyClosed):
		response.Conflict(c, 29006, err.Error())
	case errors.Is(err, service.ErrAlreadyResponded):
		response.Conflict(c, 29007, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
