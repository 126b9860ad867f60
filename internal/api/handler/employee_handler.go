package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/service"
	pkgerrors "github.com/inverness4444/quadrant-landing-sub000/pkg/errors"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// maxImportSize caps the uploaded spreadsheet at 5MB.
const maxImportSize = 5 << 20

// EmployeeHandler serves the org chart, import and onboarding endpoints.
type EmployeeHandler struct {
	empSvc *service.EmployeeService
}

// NewEmployeeHandler creates the EmployeeHandler.
func NewEmployeeHandler(empSvc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// Create adds an employee.
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), workspaceID, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, emp)
}

// Get returns one employee.
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	emp, err := h.empSvc.Get(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, emp)
}

// List pages through employees.
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}

	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	employees, total, err := h.empSvc.List(c.Request.Context(), workspaceID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, employees, total, req.GetPage(), req.GetPageSize())
}

// Update patches an employee.
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, emp)
}

// Delete soft-deletes an employee.
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), workspaceID, id, memberID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Import bulk-creates employees from an .xlsx upload.
// POST /api/v1/employees/import
func (h *EmployeeHandler) Import(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		response.BadRequest(c, 21002, "file exceeds the 5MB limit")
		return
	}

	result, err := h.empSvc.ImportXLSX(c.Request.Context(), workspaceID, memberID, file)
	if err != nil {
		if errors.Is(err, service.ErrImportEmptySheet) {
			response.BadRequest(c, 21003, err.Error())
			return
		}
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// StartOnboarding creates the step list for an employee.
// POST /api/v1/employees/:id/onboarding
func (h *EmployeeHandler) StartOnboarding(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	var req dto.StartOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	flow, err := h.empSvc.StartOnboarding(c.Request.Context(), workspaceID, id, memberID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, flow)
}

// GetOnboarding returns the flow.
// GET /api/v1/employees/:id/onboarding
func (h *EmployeeHandler) GetOnboarding(c *gin.Context) {
	workspaceID, ok := MustGetWorkspaceID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	flow, err := h.empSvc.GetOnboarding(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, flow)
}

// CompleteOnboardingStep marks one step done.
// PUT /api/v1/employees/:id/onboarding/:stepId
func (h *EmployeeHandler) CompleteOnboardingStep(c *gin.Context) {
	workspaceID, memberID, ok := mustScope(c)
	if !ok {
		return
	}
	id := c.Param("id")
	stepID := c.Param("stepId")
	if id == "" || stepID == "" {
		response.BadRequest(c, 10001, "employee id and step id are required")
		return
	}

	flow, err := h.empSvc.CompleteOnboardingStep(c.Request.Context(), workspaceID, id, stepID, memberID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, flow)
}

func (h *EmployeeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, service.ErrManagerNotFound):
		response.BadRequest(c, 21004, err.Error())
	case errors.Is(err, service.ErrSelfManager):
		response.BadRequest(c, 21005, err.Error())
	case errors.Is(err, service.ErrOnboardingExists):
		response.Conflict(c, 21006, err.Error())
	case errors.Is(err, service.ErrOnboardingNotStarted):
		response.NotFound(c, 21007, err.Error())
	case errors.Is(err, service.ErrOnboardingStepNotFound):
		response.NotFound(c, 21008, err.Error())
	case errors.Is(err, service.ErrOnboardingOutOfOrder):
		response.Conflict(c, 21009, err.Error())
	case errors.Is(err, service.ErrOnboardingStepDone):
		response.Conflict(c, 21010, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10005, err.Error())
	default:
		response.InternalError(c)
	}
}
