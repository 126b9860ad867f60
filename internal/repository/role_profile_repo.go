package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// RoleProfileRepository is the role-profile data-access interface.
type RoleProfileRepository interface {
	Create(ctx context.Context, p *model.RoleProfile) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.RoleProfile, error)
	List(ctx context.Context, workspaceID string) ([]model.RoleProfile, error)
	Update(ctx context.Context, p *model.RoleProfile) error
	Delete(ctx context.Context, workspaceID, id, deletedBy string) error
	// ReplaceRequirements swaps the full requirement set of a role.
	ReplaceRequirements(ctx context.Context, workspaceID, roleProfileID string, reqs []model.RoleSkillRequirement) error
	ListRequirements(ctx context.Context, workspaceID string) ([]model.RoleSkillRequirement, error)
}

type roleProfileRepo struct {
	db *gorm.DB
}

// NewRoleProfileRepo creates the GORM-backed RoleProfileRepository.
func NewRoleProfileRepo(db *gorm.DB) RoleProfileRepository {
	return &roleProfileRepo{db: db}
}

func (r *roleProfileRepo) Create(ctx context.Context, p *model.RoleProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *roleProfileRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.RoleProfile, error) {
	var p model.RoleProfile
	err := r.db.WithContext(ctx).
		Preload("Requirements").
		Where("workspace_id = ? AND role_profile_id = ?", workspaceID, id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *roleProfileRepo) List(ctx context.Context, workspaceID string) ([]model.RoleProfile, error) {
	var profiles []model.RoleProfile
	err := r.db.WithContext(ctx).
		Preload("Requirements").
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *roleProfileRepo) Update(ctx context.Context, p *model.RoleProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *roleProfileRepo) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.RoleProfile{}).
		Where("workspace_id = ? AND role_profile_id = ?", workspaceID, id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *roleProfileRepo) ReplaceRequirements(ctx context.Context, workspaceID, roleProfileID string, reqs []model.RoleSkillRequirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("workspace_id = ? AND role_profile_id = ?", workspaceID, roleProfileID).
			Delete(&model.RoleSkillRequirement{}).Error; err != nil {
			return err
		}
		if len(reqs) == 0 {
			return nil
		}
		return tx.Create(&reqs).Error
	})
}

func (r *roleProfileRepo) ListRequirements(ctx context.Context, workspaceID string) ([]model.RoleSkillRequirement, error) {
	var reqs []model.RoleSkillRequirement
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Find(&reqs).Error
	return reqs, err
}
