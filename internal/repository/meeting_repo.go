package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// MeetingRepository is the one-on-one meeting data-access interface.
type MeetingRepository interface {
	Create(ctx context.Context, m *model.Meeting) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.Meeting, error)
	ListUpcomingByManager(ctx context.Context, workspaceID, managerID string, until time.Time) ([]model.Meeting, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo creates the GORM-backed MeetingRepository.
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *meetingRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.Meeting, error) {
	var m model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND meeting_id = ?", workspaceID, id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepo) ListUpcomingByManager(ctx context.Context, workspaceID, managerID string, until time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND manager_id = ? AND starts_at >= ? AND starts_at <= ?",
			workspaceID, managerID, time.Now().UTC(), until).
		Order("starts_at ASC").
		Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepo) Delete(ctx context.Context, workspaceID, id string) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ? AND meeting_id = ?", workspaceID, id).
		Delete(&model.Meeting{}).Error
}
