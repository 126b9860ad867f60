package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// EmployeeListFilters narrows employee listings.
type EmployeeListFilters struct {
	ManagerID       string
	Track           string
	Position        string
	IncludeInactive bool
}

// EmployeeRepository is the employee data-access interface.
type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	BatchCreate(ctx context.Context, employees []model.Employee) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.Employee, error)
	List(ctx context.Context, workspaceID string, filters *EmployeeListFilters, offset, limit int) ([]model.Employee, int64, error)
	ListActive(ctx context.Context, workspaceID string) ([]model.Employee, error)
	ListByManager(ctx context.Context, workspaceID, managerID string) ([]model.Employee, error)
	CountActive(ctx context.Context, workspaceID string) (int64, error)
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, workspaceID, id, deletedBy string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo creates the GORM-backed EmployeeRepository.
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) BatchCreate(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&employees).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("workspace_id = ? AND employee_id = ?", workspaceID, id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) List(ctx context.Context, workspaceID string, filters *EmployeeListFilters, offset, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{}).Where("workspace_id = ?", workspaceID)
	if filters != nil {
		if filters.ManagerID != "" {
			db = db.Where("manager_id = ?", filters.ManagerID)
		}
		if filters.Track != "" {
			db = db.Where("track = ?", filters.Track)
		}
		if filters.Position != "" {
			db = db.Where("position = ?", filters.Position)
		}
		if !filters.IncludeInactive {
			db = db.Where("is_active = ?", true)
		}
	} else {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Manager").
		Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepo) ListActive(ctx context.Context, workspaceID string) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) ListByManager(ctx context.Context, workspaceID, managerID string) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND manager_id = ? AND is_active = ?", workspaceID, managerID, true).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) CountActive(ctx context.Context, workspaceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Count(&count).Error
	return count, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	read := e.Version
	e.Version = read + 1
	if err := saveVersioned(ctx, r.db, e, "employee_id", e.EmployeeID, read); err != nil {
		e.Version = read
		return err
	}
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("workspace_id = ? AND employee_id = ?", workspaceID, id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
