package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// ReportRepository is the quarterly-report data-access interface.
type ReportRepository interface {
	// Upsert writes the report, overwriting payload/generated_at when the
	// unique (workspace, year, quarter) row already exists.
	Upsert(ctx context.Context, report *model.QuarterlyReport) error
	GetByQuarter(ctx context.Context, workspaceID string, year, quarter int) (*model.QuarterlyReport, error)
	List(ctx context.Context, workspaceID string) ([]model.QuarterlyReport, error)
	Update(ctx context.Context, report *model.QuarterlyReport) error
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo creates the GORM-backed ReportRepository.
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Upsert(ctx context.Context, report *model.QuarterlyReport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"}, {Name: "year"}, {Name: "quarter"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "generated_at", "updated_at", "updated_by"}),
		}).
		Create(report).Error
}

func (r *reportRepo) GetByQuarter(ctx context.Context, workspaceID string, year, quarter int) (*model.QuarterlyReport, error) {
	var report model.QuarterlyReport
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND year = ? AND quarter = ?", workspaceID, year, quarter).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, workspaceID string) ([]model.QuarterlyReport, error) {
	var reports []model.QuarterlyReport
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("year DESC, quarter DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) Update(ctx context.Context, report *model.QuarterlyReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}
