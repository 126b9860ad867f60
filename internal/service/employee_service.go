package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrManagerNotFound        = errors.New("manager not found")
	ErrSelfManager            = errors.New("an employee cannot be their own manager")
	ErrOnboardingExists       = errors.New("onboarding already started for this employee")
	ErrOnboardingNotStarted   = errors.New("onboarding not started for this employee")
	ErrOnboardingStepNotFound = errors.New("onboarding step not found")
	ErrOnboardingOutOfOrder   = errors.New("previous onboarding steps are still pending")
	ErrOnboardingStepDone     = errors.New("onboarding step already completed")
	ErrImportEmptySheet       = errors.New("spreadsheet has no data rows")
)

// EmployeeService handles the org chart, bulk import and onboarding.
type EmployeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService creates the employee service.
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// Create adds an employee to the org chart.
func (s *EmployeeService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if req.ManagerID != nil {
		if _, err := s.repo.Employee.GetByID(ctx, workspaceID, *req.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrManagerNotFound
			}
			return nil, err
		}
	}

	emp := &model.Employee{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Position:    req.Position,
		Level:       req.Level,
		Track:       req.Track,
		TrackLevel:  req.TrackLevel,
		ManagerID:   req.ManagerID,
		IsActive:    true,
	}
	emp.CreatedBy = &createdBy

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// Get returns one employee with their manager's name resolved.
func (s *EmployeeService) Get(ctx context.Context, workspaceID, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	if emp.ManagerID != nil {
		if mgr, err := s.repo.Employee.GetByID(ctx, workspaceID, *emp.ManagerID); err == nil {
			resp.ManagerName = mgr.Name
		}
	}
	return &resp, nil
}

// List pages through employees with optional filters.
func (s *EmployeeService) List(ctx context.Context, workspaceID string, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filters := &repository.EmployeeListFilters{
		ManagerID:       req.ManagerID,
		Track:           req.Track,
		Position:        req.Position,
		IncludeInactive: req.IncludeInactive,
	}

	employees, total, err := s.repo.Employee.List(ctx, workspaceID, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, toEmployeeResponse(&employees[i]))
	}
	return out, total, nil
}

// Update patches an employee.
func (s *EmployeeService) Update(ctx context.Context, workspaceID, id, updatedBy string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.ManagerID != nil {
		if *req.ManagerID == id {
			return nil, ErrSelfManager
		}
		if _, err := s.repo.Employee.GetByID(ctx, workspaceID, *req.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrManagerNotFound
			}
			return nil, err
		}
		emp.ManagerID = req.ManagerID
	}
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Level != nil {
		emp.Level = *req.Level
	}
	if req.Track != nil {
		emp.Track = req.Track
	}
	if req.TrackLevel != nil {
		emp.TrackLevel = req.TrackLevel
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedBy = &updatedBy

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// Delete soft-deletes an employee.
func (s *EmployeeService) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return s.repo.Employee.Delete(ctx, workspaceID, id, deletedBy)
}

// ── bulk import ──

// ImportXLSX reads employees from the first sheet of an .xlsx workbook.
// Column order: name | position | level | track | track_level. Bad rows are
// skipped and reported; good rows are inserted in one batch.
func (s *EmployeeService) ImportXLSX(ctx context.Context, workspaceID, createdBy string, r io.Reader) (*dto.ImportEmployeesResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrImportEmptySheet
	}

	result := &dto.ImportEmployeesResponse{}
	var batch []model.Employee

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		emp, err := parseImportRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		emp.WorkspaceID = workspaceID
		emp.IsActive = true
		emp.CreatedBy = &createdBy
		batch = append(batch, *emp)
	}

	if len(batch) > 0 {
		if err := s.repo.Employee.BatchCreate(ctx, batch); err != nil {
			return nil, err
		}
	}
	result.Imported = len(batch)

	s.logger.Info("employees imported",
		zap.String("workspace_id", workspaceID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func parseImportRow(row []string) (*model.Employee, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name, position := cell(0), cell(1)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if position == "" {
		return nil, errors.New("position is required")
	}

	level := 1
	if v := cell(2); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 6 {
			return nil, fmt.Errorf("level %q must be an integer in 1-6", v)
		}
		level = n
	}

	emp := &model.Employee{Name: name, Position: position, Level: level}

	if v := cell(3); v != "" {
		emp.Track = &v
	}
	if v := cell(4); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 6 {
			return nil, fmt.Errorf("track_level %q must be an integer in 1-6", v)
		}
		emp.TrackLevel = &n
	}

	return emp, nil
}

// ── onboarding ──

// StartOnboarding creates the sequential step list for an employee. The last
// title becomes the terminal review step.
func (s *EmployeeService) StartOnboarding(ctx context.Context, workspaceID, employeeID, createdBy string, req *dto.StartOnboardingRequest) (*dto.OnboardingResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Onboarding.ListByEmployee(ctx, workspaceID, employeeID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrOnboardingExists
	}

	steps := make([]model.OnboardingStep, 0, len(req.Titles))
	for i, title := range req.Titles {
		kind := model.OnboardingKindTask
		if i == len(req.Titles)-1 {
			kind = model.OnboardingKindReview
		}
		step := model.OnboardingStep{
			WorkspaceID: workspaceID,
			EmployeeID:  employeeID,
			Position:    i + 1,
			Title:       title,
			Kind:        kind,
			Status:      model.OnboardingStepPending,
		}
		step.CreatedBy = &createdBy
		steps = append(steps, step)
	}

	if err := s.repo.Onboarding.CreateSteps(ctx, steps); err != nil {
		return nil, err
	}

	return s.GetOnboarding(ctx, workspaceID, employeeID)
}

// GetOnboarding returns the flow with its completion flag.
func (s *EmployeeService) GetOnboarding(ctx context.Context, workspaceID, employeeID string) (*dto.OnboardingResponse, error) {
	steps, err := s.repo.Onboarding.ListByEmployee(ctx, workspaceID, employeeID)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, ErrOnboardingNotStarted
	}

	resp := &dto.OnboardingResponse{EmployeeID: employeeID, Completed: true}
	for i := range steps {
		st := &steps[i]
		if st.Status != model.OnboardingStepDone {
			resp.Completed = false
		}
		resp.Steps = append(resp.Steps, dto.OnboardingStepResponse{
			ID:          st.StepID,
			Position:    st.Position,
			Title:       st.Title,
			Kind:        st.Kind,
			Status:      st.Status,
			CompletedAt: fmtTimePtr(st.CompletedAt),
		})
	}
	return resp, nil
}

// CompleteOnboardingStep marks one step done. Steps complete strictly in
// order: a step with pending predecessors is rejected.
func (s *EmployeeService) CompleteOnboardingStep(ctx context.Context, workspaceID, employeeID, stepID, updatedBy string) (*dto.OnboardingResponse, error) {
	step, err := s.repo.Onboarding.GetStep(ctx, workspaceID, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOnboardingStepNotFound
		}
		return nil, err
	}
	if step.EmployeeID != employeeID {
		return nil, ErrOnboardingStepNotFound
	}
	if step.Status == model.OnboardingStepDone {
		return nil, ErrOnboardingStepDone
	}

	all, err := s.repo.Onboarding.ListByEmployee(ctx, workspaceID, employeeID)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Position < step.Position && all[i].Status != model.OnboardingStepDone {
			return nil, ErrOnboardingOutOfOrder
		}
	}

	now := nowUTC()
	step.Status = model.OnboardingStepDone
	step.CompletedAt = &now
	step.UpdatedBy = &updatedBy

	if err := s.repo.Onboarding.UpdateStep(ctx, step); err != nil {
		return nil, err
	}

	return s.GetOnboarding(ctx, workspaceID, employeeID)
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         e.EmployeeID,
		Name:       e.Name,
		Position:   e.Position,
		Level:      e.Level,
		Track:      e.Track,
		TrackLevel: e.TrackLevel,
		ManagerID:  e.ManagerID,
		IsActive:   e.IsActive,
		CreatedAt:  fmtTime(e.CreatedAt),
	}
}
