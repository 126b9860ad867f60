package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// MemberRepository is the login-account data-access interface.
type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.Member, error)
	GetByEmail(ctx context.Context, workspaceID, email string) (*model.Member, error)
	List(ctx context.Context, workspaceID string, offset, limit int) ([]model.Member, int64, error)
	Update(ctx context.Context, m *model.Member) error
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates the GORM-backed MemberRepository.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memberRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND member_id = ?", workspaceID, id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) GetByEmail(ctx context.Context, workspaceID, email string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND email = ?", workspaceID, email).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) List(ctx context.Context, workspaceID string, offset, limit int) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Member{}).Where("workspace_id = ?", workspaceID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepo) Update(ctx context.Context, m *model.Member) error {
	read := m.Version
	m.Version = read + 1
	if err := saveVersioned(ctx, r.db, m, "member_id", m.MemberID, read); err != nil {
		m.Version = read
		return err
	}
	return nil
}
