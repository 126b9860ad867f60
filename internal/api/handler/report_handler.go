package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// ReportHandler serves the quarterly report endpoints.
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates the ReportHandler.
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// quarterParams reads :year and :quarter and validates their ranges.
func quarterParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(c, 10001, "year must be between 2000 and 2100")
		return 0, 0, false
	}
	quarter, err := strconv.Atoi(c.Param("quarter"))
	if err != nil || quarter < 1 || quarter > 4 {
		response.BadRequest(c, 10001, "quarter must be between 1 and 4")
		return 0, 0, false
	}
	return year, quarter, true
}

// Generate materializes (or regenerates) a quarter.
// POST /api/v1/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	report, err := h.reportSvc.Generate(c.Request.Context(), workspaceID, memberID, req.Year, req.Quarter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, report)
}

// Get returns one stored report.
// GET /api/v1/reports/:year/:quarter
func (h *ReportHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	year, quarter, ok := quarterParams(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Get(c.Request.Context(), workspaceID, year, quarter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, report)
}

// List returns the report index without payloads.
// GET /api/v1/reports
func (h *ReportHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	reports, err := h.reportSvc.List(c.Request.Context(), workspaceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": reports})
}

// SetLock locks or unlocks a report.
// PUT /api/v1/reports/:year/:quarter/lock
func (h *ReportHandler) SetLock(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	year, quarter, ok := quarterParams(c)
	if !ok {
		return
	}

	var req dto.LockReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	report, err := h.reportSvc.SetLock(c.Request.Context(), workspaceID, memberID, year, quarter, *req.Locked)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, report)
}

// UpdateNotes edits the notes of an unlocked report.
// PUT /api/v1/reports/:year/:quarter/notes
func (h *ReportHandler) UpdateNotes(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	year, quarter, ok := quarterParams(c)
	if !ok {
		return
	}

	var req dto.UpdateReportNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	report, err := h.reportSvc.UpdateNotes(c.Request.Context(), workspaceID, memberID, year, quarter, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, report)
}

// Export streams the report as an .xlsx workbook.
// GET /api/v1/reports/:year/:quarter/export
func (h *ReportHandler) Export(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	year, quarter, ok := quarterParams(c)
	if !ok {
		return
	}

	f, err := h.reportSvc.ExportXLSX(c.Request.Context(), workspaceID, year, quarter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("report-%d-Q%d.xlsx", year, quarter)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Abort()
	}
}

func (h *ReportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, 28001, err.Error())
	case errors.Is(err, service.ErrReportLocked):
		response.Conflict(c, 28002, err.Error())
	default:
		response.InternalError(c)
	}
}
