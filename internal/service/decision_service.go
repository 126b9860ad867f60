package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrDecisionNotFound          = errors.New("talent decision not found")
	ErrInvalidDecisionTransition = errors.New("invalid decision transition")
)

// decisionTransitions is the decision state machine. rejected is terminal
// and reachable from any non-terminal status.
var decisionTransitions = map[string][]string{
	model.DecisionStatusProposed: {model.DecisionStatusApproved, model.DecisionStatusRejected},
	model.DecisionStatusApproved: {model.DecisionStatusImplemented, model.DecisionStatusRejected},
}

// DecisionService handles talent decisions.
type DecisionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDecisionService creates the decision service.
func NewDecisionService(repo *repository.Repository, logger *zap.Logger) *DecisionService {
	return &DecisionService{repo: repo, logger: logger}
}

// Create proposes a decision for an employee.
func (s *DecisionService) Create(ctx context.Context, workspaceID, decidedBy string, req *dto.CreateDecisionRequest) (*dto.DecisionResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	decision := &model.TalentDecision{
		WorkspaceID: workspaceID,
		EmployeeID:  req.EmployeeID,
		Type:        req.Type,
		Status:      model.DecisionStatusProposed,
		Rationale:   req.Rationale,
		DecidedBy:   &decidedBy,
	}
	decision.CreatedBy = &decidedBy

	if err := s.repo.Decision.Create(ctx, decision); err != nil {
		return nil, err
	}

	s.logger.Info("decision proposed",
		zap.String("workspace_id", workspaceID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type))

	resp := toDecisionResponse(decision)
	return &resp, nil
}

// Get returns one decision.
func (s *DecisionService) Get(ctx context.Context, workspaceID, id string) (*dto.DecisionResponse, error) {
	decision, err := s.repo.Decision.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}
	resp := toDecisionResponse(decision)
	return &resp, nil
}

// List returns decisions matching the filters.
func (s *DecisionService) List(ctx context.Context, workspaceID string, req *dto.DecisionListRequest) ([]dto.DecisionResponse, error) {
	filters := &repository.DecisionListFilters{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Status:     req.Status,
	}
	if req.Since != "" {
		filters.Since = parseDatePtr(&req.Since)
	}
	if req.Until != "" {
		if t := parseDatePtr(&req.Until); t != nil {
			end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			filters.Until = &end
		}
	}

	decisions, err := s.repo.Decision.List(ctx, workspaceID, filters)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DecisionResponse, 0, len(decisions))
	for i := range decisions {
		out = append(out, toDecisionResponse(&decisions[i]))
	}
	return out, nil
}

// Transition moves a decision to a new status.
func (s *DecisionService) Transition(ctx context.Context, workspaceID, id, updatedBy, newStatus string) (*dto.DecisionResponse, error) {
	decision, err := s.repo.Decision.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}

	if !decisionTransitionAllowed(decision.Status, newStatus) {
		return nil, ErrInvalidDecisionTransition
	}

	decision.Status = newStatus
	if newStatus == model.DecisionStatusImplemented || newStatus == model.DecisionStatusRejected {
		now := nowUTC()
		decision.ResolvedAt = &now
	}
	decision.UpdatedBy = &updatedBy

	if err := s.repo.Decision.Update(ctx, decision); err != nil {
		return nil, err
	}

	resp := toDecisionResponse(decision)
	return &resp, nil
}

func decisionTransitionAllowed(from, to string) bool {
	for _, next := range decisionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toDecisionResponse(d *model.TalentDecision) dto.DecisionResponse {
	resp := dto.DecisionResponse{
		ID:         d.DecisionID,
		EmployeeID: d.EmployeeID,
		Type:       d.Type,
		Status:     d.Status,
		Rationale:  d.Rationale,
		CreatedAt:  fmtTime(d.CreatedAt),
		ResolvedAt: fmtTimePtr(d.ResolvedAt),
	}
	if d.Employee != nil {
		resp.EmployeeName = d.Employee.Name
	}
	return resp
}
