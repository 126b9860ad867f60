package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// DecisionListFilters narrows decision listings. Since/Until bound
// created_at inclusively.
type DecisionListFilters struct {
	EmployeeID string
	Type       string
	Status     string
	Since      *time.Time
	Until      *time.Time
}

// DecisionRepository is the talent-decision data-access interface.
type DecisionRepository interface {
	Create(ctx context.Context, d *model.TalentDecision) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.TalentDecision, error)
	List(ctx context.Context, workspaceID string, filters *DecisionListFilters) ([]model.TalentDecision, error)
	Update(ctx context.Context, d *model.TalentDecision) error
}

type decisionRepo struct {
	db *gorm.DB
}

// NewDecisionRepo creates the GORM-backed DecisionRepository.
func NewDecisionRepo(db *gorm.DB) DecisionRepository {
	return &decisionRepo{db: db}
}

func (r *decisionRepo) Create(ctx context.Context, d *model.TalentDecision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *decisionRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.TalentDecision, error) {
	var d model.TalentDecision
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND decision_id = ?", workspaceID, id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *decisionRepo) List(ctx context.Context, workspaceID string, filters *DecisionListFilters) ([]model.TalentDecision, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ?", workspaceID)

	if filters != nil {
		if filters.EmployeeID != "" {
			db = db.Where("employee_id = ?", filters.EmployeeID)
		}
		if filters.Type != "" {
			db = db.Where("type = ?", filters.Type)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Since != nil {
			db = db.Where("created_at >= ?", *filters.Since)
		}
		if filters.Until != nil {
			db = db.Where("created_at <= ?", *filters.Until)
		}
	}

	var decisions []model.TalentDecision
	err := db.Order("created_at DESC").Find(&decisions).Error
	return decisions, err
}

func (r *decisionRepo) Update(ctx context.Context, d *model.TalentDecision) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(d).Error
}
