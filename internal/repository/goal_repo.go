package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// GoalRepository is the development-goal data-access interface.
type GoalRepository interface {
	Create(ctx context.Context, g *model.DevelopmentGoal) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.DevelopmentGoal, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]model.DevelopmentGoal, error)
	ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.DevelopmentGoal, error)
	ListByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.DevelopmentGoal, error)
	Update(ctx context.Context, g *model.DevelopmentGoal) error
	Delete(ctx context.Context, workspaceID, id, deletedBy string) error
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo creates the GORM-backed GoalRepository.
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, g *model.DevelopmentGoal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *goalRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.DevelopmentGoal, error) {
	var g model.DevelopmentGoal
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND goal_id = ?", workspaceID, id).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *goalRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]model.DevelopmentGoal, error) {
	var goals []model.DevelopmentGoal
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.DevelopmentGoal, error) {
	var goals []model.DevelopmentGoal
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id = ?", workspaceID, employeeID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) ListByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.DevelopmentGoal, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var goals []model.DevelopmentGoal
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id IN ?", workspaceID, employeeIDs).
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) Update(ctx context.Context, g *model.DevelopmentGoal) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *goalRepo) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.DevelopmentGoal{}).
		Where("workspace_id = ? AND goal_id = ?", workspaceID, id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
