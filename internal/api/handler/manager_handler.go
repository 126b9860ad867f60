package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// ManagerHandler serves the manager home and one-on-one endpoints.
type ManagerHandler struct {
	managerSvc *service.ManagerService
}

// NewManagerHandler creates the ManagerHandler.
func NewManagerHandler(managerSvc *service.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerSvc: managerSvc}
}

// Home returns the team summary for the calling manager.
// GET /api/v1/manager/home
func (h *ManagerHandler) Home(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	summary, err := h.managerSvc.HomeSummary(c.Request.Context(), workspaceID, memberID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, summary)
}

// ScheduleMeeting books a one-on-one with a direct report.
// POST /api/v1/manager/meetings
func (h *ManagerHandler) ScheduleMeeting(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	meeting, err := h.managerSvc.ScheduleMeeting(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, meeting)
}

// CancelMeeting removes a scheduled one-on-one.
// DELETE /api/v1/manager/meetings/:id
func (h *ManagerHandler) CancelMeeting(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "meeting id is required")
		return
	}

	if err := h.managerSvc.CancelMeeting(c.Request.Context(), workspaceID, memberID, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// MeetingsICS exports the manager's upcoming one-on-ones as a calendar feed.
// GET /api/v1/manager/meetings.ics
func (h *ManagerHandler) MeetingsICS(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	feed, err := h.managerSvc.MeetingsICS(c.Request.Context(), workspaceID, memberID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="one-on-ones.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *ManagerHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoLinkedEmployee):
		response.BadRequest(c, 29001, err.Error())
	case errors.Is(err, service.ErrNotTeamMember):
		response.Forbidden(c, 29002, err.Error())
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 29003, err.Error())
	case errors.Is(err, service.ErrBadMeetingTime):
		response.BadRequest(c, 29004, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
