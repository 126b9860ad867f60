package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrRiskCaseNotFound       = errors.New("risk case not found")
	ErrInvalidRiskTransition  = errors.New("invalid risk case transition")
	ErrResolutionNoteRequired = errors.New("resolving a risk case requires a note")
)

// riskTransitions is the case state machine. resolved is terminal.
var riskTransitions = map[string][]string{
	model.RiskStatusOpen:       {model.RiskStatusMonitoring, model.RiskStatusResolved},
	model.RiskStatusMonitoring: {model.RiskStatusResolved},
}

// noRatingsProblem is the single problem entry reported for employees
// without any skill rating evidence.
const noRatingsProblem = "no skill ratings recorded"

// RiskService tracks at-risk employee cases.
type RiskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRiskService creates the risk service.
func NewRiskService(repo *repository.Repository, logger *zap.Logger) *RiskService {
	return &RiskService{repo: repo, logger: logger}
}

// Create opens a case manually.
func (s *RiskService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateRiskCaseRequest) (*dto.RiskCaseResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	rc, created, err := ensureOpenRiskCase(ctx, s.repo, workspaceID, req.EmployeeID, req.Reason, req.Level, createdBy)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("risk case opened",
			zap.String("workspace_id", workspaceID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("reason", req.Reason))
	}
	if req.OwnerID != nil && rc.OwnerID == nil {
		rc.OwnerID = req.OwnerID
		if err := s.repo.Risk.Update(ctx, rc); err != nil {
			return nil, err
		}
	}

	resp := toRiskCaseResponse(rc)
	return &resp, nil
}

// ensureOpenRiskCase makes sure a live case exists for (employee, reason).
// Calling it again while the case is open or monitoring returns the existing
// row unchanged. The report generator calls this inside its transaction. The
// second return value reports whether a new case was created.
func ensureOpenRiskCase(ctx context.Context, repo *repository.Repository, workspaceID, employeeID, reason, level, createdBy string) (*model.RiskCase, bool, error) {
	existing, err := repo.Risk.FindLive(ctx, workspaceID, employeeID, reason)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	rc := &model.RiskCase{
		WorkspaceID: workspaceID,
		EmployeeID:  employeeID,
		Level:       level,
		Status:      model.RiskStatusOpen,
		Reason:      reason,
	}
	rc.CreatedBy = &createdBy

	if err := repo.Risk.Create(ctx, rc); err != nil {
		return nil, false, err
	}
	return rc, true, nil
}

// Get returns one case.
func (s *RiskService) Get(ctx context.Context, workspaceID, id string) (*dto.RiskCaseResponse, error) {
	rc, err := s.repo.Risk.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRiskCaseNotFound
		}
		return nil, err
	}
	resp := toRiskCaseResponse(rc)
	return &resp, nil
}

// List returns cases, optionally limited to one status.
func (s *RiskService) List(ctx context.Context, workspaceID, status string) ([]dto.RiskCaseResponse, error) {
	cases, err := s.repo.Risk.List(ctx, workspaceID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RiskCaseResponse, 0, len(cases))
	for i := range cases {
		out = append(out, toRiskCaseResponse(&cases[i]))
	}
	return out, nil
}

// Transition moves a case to monitoring or resolved. Resolution requires a
// non-empty note.
func (s *RiskService) Transition(ctx context.Context, workspaceID, id, updatedBy string, req *dto.TransitionRiskCaseRequest) (*dto.RiskCaseResponse, error) {
	rc, err := s.repo.Risk.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRiskCaseNotFound
		}
		return nil, err
	}

	if !riskTransitionAllowed(rc.Status, req.Status) {
		return nil, ErrInvalidRiskTransition
	}
	if req.Status == model.RiskStatusResolved {
		if req.Note == "" {
			return nil, ErrResolutionNoteRequired
		}
		now := nowUTC()
		rc.ResolutionNote = req.Note
		rc.ResolvedAt = &now
	}

	rc.Status = req.Status
	rc.UpdatedBy = &updatedBy

	if err := s.repo.Risk.Update(ctx, rc); err != nil {
		return nil, err
	}

	resp := toRiskCaseResponse(rc)
	return &resp, nil
}

// EmployeeRiskList builds the "who needs attention" view: every active
// employee with the problems found against them. Employees with zero rating
// evidence get exactly one problem entry, regardless of anything else.
func (s *RiskService) EmployeeRiskList(ctx context.Context, workspaceID string) ([]dto.EmployeeRiskEntry, error) {
	employees, err := s.repo.Employee.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.Rating.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	rated := make(map[string]bool, len(ratings))
	for _, r := range ratings {
		rated[r.EmployeeID] = true
	}

	ids := make([]string, 0, len(employees))
	for i := range employees {
		ids = append(ids, employees[i].EmployeeID)
	}

	liveCases, err := s.repo.Risk.ListLiveByEmployees(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	casesByEmployee := make(map[string][]model.RiskCase)
	for _, rc := range liveCases {
		casesByEmployee[rc.EmployeeID] = append(casesByEmployee[rc.EmployeeID], rc)
	}

	goals, err := s.repo.Goal.ListByEmployees(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	now := nowUTC()
	overdueByEmployee := make(map[string]int)
	for i := range goals {
		if goalOverdue(&goals[i], now) {
			overdueByEmployee[goals[i].EmployeeID]++
		}
	}

	out := make([]dto.EmployeeRiskEntry, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		entry := dto.EmployeeRiskEntry{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.Name,
			Position:     emp.Position,
			Problems:     []string{},
		}

		if !rated[emp.EmployeeID] {
			entry.Problems = append(entry.Problems, noRatingsProblem)
		} else {
			for _, rc := range casesByEmployee[emp.EmployeeID] {
				entry.Problems = append(entry.Problems, fmt.Sprintf("open risk case: %s", rc.Reason))
			}
			if n := overdueByEmployee[emp.EmployeeID]; n > 0 {
				entry.Problems = append(entry.Problems, fmt.Sprintf("%d overdue development goals", n))
			}
		}

		entry.AtRisk = len(entry.Problems) > 0
		out = append(out, entry)
	}
	return out, nil
}

func riskTransitionAllowed(from, to string) bool {
	for _, next := range riskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toRiskCaseResponse(rc *model.RiskCase) dto.RiskCaseResponse {
	resp := dto.RiskCaseResponse{
		ID:             rc.RiskCaseID,
		EmployeeID:     rc.EmployeeID,
		Level:          rc.Level,
		Status:         rc.Status,
		Reason:         rc.Reason,
		OwnerID:        rc.OwnerID,
		ResolutionNote: rc.ResolutionNote,
		CreatedAt:      fmtTime(rc.CreatedAt),
		ResolvedAt:     fmtTimePtr(rc.ResolvedAt),
	}
	if rc.Employee != nil {
		resp.EmployeeName = rc.Employee.Name
	}
	return resp
}
