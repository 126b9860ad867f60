package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// AnalyticsHandler serves the workspace analytics endpoints.
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates the AnalyticsHandler.
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Overview returns the cached workspace overview. An optional since/until
// pair narrows the goal and survey metrics.
// GET /api/v1/analytics/overview?since=2025-01-01&until=2025-03-31
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	var query dto.OverviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "invalid date range: "+err.Error())
		return
	}

	overview, err := h.analyticsSvc.WorkspaceOverview(c.Request.Context(), workspaceID, &query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, overview)
}

// SkillGap returns the workspace-wide requirement coverage.
// GET /api/v1/analytics/skill-gap
func (h *AnalyticsHandler) SkillGap(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	gap, err := h.analyticsSvc.SkillGapOverview(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gap)
}

// EmployeeGaps ranks employees by deficit against one role profile.
// GET /api/v1/analytics/gaps?role_profile_id=...
func (h *AnalyticsHandler) EmployeeGaps(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	roleProfileID := c.Query("role_profile_id")
	if roleProfileID == "" {
		response.BadRequest(c, 10001, "role_profile_id is required")
		return
	}

	gaps, err := h.analyticsSvc.EmployeeGaps(c.Request.Context(), workspaceID, roleProfileID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": gaps})
}

func (h *AnalyticsHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleProfileNotFound):
		response.NotFound(c, 23001, err.Error())
	default:
		response.InternalError(c)
	}
}
