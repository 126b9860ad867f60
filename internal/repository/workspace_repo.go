package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// WorkspaceRepository is the tenant data-access interface.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *model.Workspace) error
	GetByID(ctx context.Context, id string) (*model.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*model.Workspace, error)
	Update(ctx context.Context, ws *model.Workspace) error
}

type workspaceRepo struct {
	db *gorm.DB
}

// NewWorkspaceRepo creates the GORM-backed WorkspaceRepository.
func NewWorkspaceRepo(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Create(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *workspaceRepo) GetByID(ctx context.Context, id string) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", id).
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepo) GetBySlug(ctx context.Context, slug string) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepo) Update(ctx context.Context, ws *model.Workspace) error {
	read := ws.Version
	ws.Version = read + 1
	if err := saveVersioned(ctx, r.db, ws, "workspace_id", ws.WorkspaceID, read); err != nil {
		ws.Version = read
		return err
	}
	return nil
}
