package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// OnboardingRepository is the onboarding-step data-access interface.
type OnboardingRepository interface {
	CreateSteps(ctx context.Context, steps []model.OnboardingStep) error
	GetStep(ctx context.Context, workspaceID, stepID string) (*model.OnboardingStep, error)
	ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.OnboardingStep, error)
	UpdateStep(ctx context.Context, step *model.OnboardingStep) error
}

type onboardingRepo struct {
	db *gorm.DB
}

// NewOnboardingRepo creates the GORM-backed OnboardingRepository.
func NewOnboardingRepo(db *gorm.DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) CreateSteps(ctx context.Context, steps []model.OnboardingStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

func (r *onboardingRepo) GetStep(ctx context.Context, workspaceID, stepID string) (*model.OnboardingStep, error) {
	var step model.OnboardingStep
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND step_id = ?", workspaceID, stepID).
		First(&step).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *onboardingRepo) ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.OnboardingStep, error) {
	var steps []model.OnboardingStep
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id = ?", workspaceID, employeeID).
		Order("position ASC").
		Find(&steps).Error
	return steps, err
}

func (r *onboardingRepo) UpdateStep(ctx context.Context, step *model.OnboardingStep) error {
	return r.db.WithContext(ctx).Save(step).Error
}
