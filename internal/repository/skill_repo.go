package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// SkillRepository is the skill-catalog data-access interface.
type SkillRepository interface {
	Create(ctx context.Context, s *model.Skill) error
	GetByCode(ctx context.Context, workspaceID, code string) (*model.Skill, error)
	List(ctx context.Context, workspaceID string) ([]model.Skill, error)
	Count(ctx context.Context, workspaceID string) (int64, error)
	Update(ctx context.Context, s *model.Skill) error
	Delete(ctx context.Context, workspaceID, code, deletedBy string) error
}

type skillRepo struct {
	db *gorm.DB
}

// NewSkillRepo creates the GORM-backed SkillRepository.
func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, s *model.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *skillRepo) GetByCode(ctx context.Context, workspaceID, code string) (*model.Skill, error) {
	var s model.Skill
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND code = ?", workspaceID, code).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *skillRepo) List(ctx context.Context, workspaceID string) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("code ASC").
		Find(&skills).Error
	return skills, err
}

func (r *skillRepo) Count(ctx context.Context, workspaceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Skill{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	return count, err
}

func (r *skillRepo) Update(ctx context.Context, s *model.Skill) error {
	read := s.Version
	s.Version = read + 1
	if err := saveVersioned(ctx, r.db, s, "skill_id", s.SkillID, read); err != nil {
		s.Version = read
		return err
	}
	return nil
}

func (r *skillRepo) Delete(ctx context.Context, workspaceID, code, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Skill{}).
		Where("workspace_id = ? AND code = ?", workspaceID, code).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// RatingRepository is the skill-rating data-access interface. Aggregations
// read full rating sets and reduce in memory in the service layer.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.EmployeeSkillRating) error
	ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.EmployeeSkillRating, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]model.EmployeeSkillRating, error)
	DeleteByEmployee(ctx context.Context, workspaceID, employeeID string) error
}

type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo creates the GORM-backed RatingRepository.
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Upsert writes one rating per (employee, skill, source), updating the level
// in place on conflict.
func (r *ratingRepo) Upsert(ctx context.Context, rating *model.EmployeeSkillRating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"}, {Name: "skill_code"}, {Name: "source"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at", "updated_by"}),
		}).
		Create(rating).Error
}

func (r *ratingRepo) ListByEmployee(ctx context.Context, workspaceID, employeeID string) ([]model.EmployeeSkillRating, error) {
	var ratings []model.EmployeeSkillRating
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id = ?", workspaceID, employeeID).
		Order("skill_code ASC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]model.EmployeeSkillRating, error) {
	var ratings []model.EmployeeSkillRating
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepo) DeleteByEmployee(ctx context.Context, workspaceID, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id = ?", workspaceID, employeeID).
		Delete(&model.EmployeeSkillRating{}).Error
}
