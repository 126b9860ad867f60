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
	ErrGoalNotFound         = errors.New("development goal not found")
	ErrGoalAlreadyCompleted = errors.New("development goal already completed")
)

// GoalService handles development goals.
type GoalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGoalService creates the goal service.
func NewGoalService(repo *repository.Repository, logger *zap.Logger) *GoalService {
	return &GoalService{repo: repo, logger: logger}
}

// Create opens a goal for an employee.
func (s *GoalService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if req.SkillCode != nil {
		if _, err := s.repo.Skill.GetByCode(ctx, workspaceID, *req.SkillCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSkillNotFound
			}
			return nil, err
		}
	}

	goal := &model.DevelopmentGoal{
		WorkspaceID: workspaceID,
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		SkillCode:   req.SkillCode,
		TargetLevel: req.TargetLevel,
		Status:      model.GoalStatusActive,
		DueDate:     parseDatePtr(req.DueDate),
	}
	goal.CreatedBy = &createdBy

	if err := s.repo.Goal.Create(ctx, goal); err != nil {
		return nil, err
	}
	return toGoalResponse(goal, nowUTC()), nil
}

// Get returns one goal.
func (s *GoalService) Get(ctx context.Context, workspaceID, id string) (*dto.GoalResponse, error) {
	goal, err := s.repo.Goal.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return toGoalResponse(goal, nowUTC()), nil
}

// List returns goals, optionally limited to one employee or one status.
func (s *GoalService) List(ctx context.Context, workspaceID, employeeID, status string) ([]dto.GoalResponse, error) {
	var (
		goals []model.DevelopmentGoal
		err   error
	)
	if employeeID != "" {
		goals, err = s.repo.Goal.ListByEmployee(ctx, workspaceID, employeeID)
	} else {
		goals, err = s.repo.Goal.ListByWorkspace(ctx, workspaceID)
	}
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	out := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		if status != "" && goals[i].Status != status {
			continue
		}
		out = append(out, *toGoalResponse(&goals[i], now))
	}
	return out, nil
}

// Update patches an active goal.
func (s *GoalService) Update(ctx context.Context, workspaceID, id, updatedBy string, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.repo.Goal.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.Status == model.GoalStatusCompleted {
		return nil, ErrGoalAlreadyCompleted
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.TargetLevel != nil {
		goal.TargetLevel = req.TargetLevel
	}
	if req.DueDate != nil {
		goal.DueDate = parseDatePtr(req.DueDate)
	}
	goal.UpdatedBy = &updatedBy

	if err := s.repo.Goal.Update(ctx, goal); err != nil {
		return nil, err
	}
	return toGoalResponse(goal, nowUTC()), nil
}

// Complete closes an active goal.
func (s *GoalService) Complete(ctx context.Context, workspaceID, id, updatedBy string) (*dto.GoalResponse, error) {
	goal, err := s.repo.Goal.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.Status == model.GoalStatusCompleted {
		return nil, ErrGoalAlreadyCompleted
	}

	now := nowUTC()
	goal.Status = model.GoalStatusCompleted
	goal.CompletedAt = &now
	goal.UpdatedBy = &updatedBy

	if err := s.repo.Goal.Update(ctx, goal); err != nil {
		return nil, err
	}
	return toGoalResponse(goal, now), nil
}

// Delete soft-deletes a goal.
func (s *GoalService) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	if _, err := s.repo.Goal.GetByID(ctx, workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return s.repo.Goal.Delete(ctx, workspaceID, id, deletedBy)
}

// goalOverdue reports whether a goal is active with a due date in the past.
func goalOverdue(g *model.DevelopmentGoal, now time.Time) bool {
	return g.Status == model.GoalStatusActive && g.DueDate != nil && g.DueDate.Before(now)
}

func toGoalResponse(g *model.DevelopmentGoal, now time.Time) *dto.GoalResponse {
	return &dto.GoalResponse{
		ID:          g.GoalID,
		EmployeeID:  g.EmployeeID,
		Title:       g.Title,
		SkillCode:   g.SkillCode,
		TargetLevel: g.TargetLevel,
		Status:      g.Status,
		DueDate:     fmtDatePtr(g.DueDate),
		Overdue:     goalOverdue(g, now),
		CompletedAt: fmtTimePtr(g.CompletedAt),
	}
}
