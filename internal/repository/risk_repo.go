package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// RiskRepository is the risk-case data-access interface.
type RiskRepository interface {
	Create(ctx context.Context, rc *model.RiskCase) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.RiskCase, error)
	List(ctx context.Context, workspaceID, status string) ([]model.RiskCase, error)
	// FindLive returns the non-resolved case for (employee, reason), or
	// gorm.ErrRecordNotFound.
	FindLive(ctx context.Context, workspaceID, employeeID, reason string) (*model.RiskCase, error)
	ListLiveByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.RiskCase, error)
	Update(ctx context.Context, rc *model.RiskCase) error
}

type riskRepo struct {
	db *gorm.DB
}

// NewRiskRepo creates the GORM-backed RiskRepository.
func NewRiskRepo(db *gorm.DB) RiskRepository {
	return &riskRepo{db: db}
}

func (r *riskRepo) Create(ctx context.Context, rc *model.RiskCase) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *riskRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.RiskCase, error) {
	var rc model.RiskCase
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND risk_case_id = ?", workspaceID, id).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *riskRepo) List(ctx context.Context, workspaceID, status string) ([]model.RiskCase, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ?", workspaceID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var cases []model.RiskCase
	err := db.Order("created_at DESC").Find(&cases).Error
	return cases, err
}

func (r *riskRepo) FindLive(ctx context.Context, workspaceID, employeeID, reason string) (*model.RiskCase, error) {
	var rc model.RiskCase
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id = ? AND reason = ? AND status <> ?",
			workspaceID, employeeID, reason, model.RiskStatusResolved).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *riskRepo) ListLiveByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.RiskCase, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var cases []model.RiskCase
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id IN ? AND status <> ?",
			workspaceID, employeeIDs, model.RiskStatusResolved).
		Find(&cases).Error
	return cases, err
}

func (r *riskRepo) Update(ctx context.Context, rc *model.RiskCase) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(rc).Error
}
