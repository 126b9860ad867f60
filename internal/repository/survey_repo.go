package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// SurveyRepository is the feedback-survey data-access interface.
type SurveyRepository interface {
	Create(ctx context.Context, s *model.Survey) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.Survey, error)
	List(ctx context.Context, workspaceID string) ([]model.Survey, error)
	Update(ctx context.Context, s *model.Survey) error
	AddResponse(ctx context.Context, resp *model.SurveyResponse) error
	CountResponses(ctx context.Context, workspaceID, surveyID string) (int64, error)
	ListResponses(ctx context.Context, workspaceID, surveyID string) ([]model.SurveyResponse, error)
}

type surveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo creates the GORM-backed SurveyRepository.
func NewSurveyRepo(db *gorm.DB) SurveyRepository {
	return &surveyRepo{db: db}
}

func (r *surveyRepo) Create(ctx context.Context, s *model.Survey) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *surveyRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.Survey, error) {
	var s model.Survey
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND survey_id = ?", workspaceID, id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepo) List(ctx context.Context, workspaceID string) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepo) Update(ctx context.Context, s *model.Survey) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *surveyRepo) AddResponse(ctx context.Context, resp *model.SurveyResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *surveyRepo) CountResponses(ctx context.Context, workspaceID, surveyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SurveyResponse{}).
		Where("workspace_id = ? AND survey_id = ?", workspaceID, surveyID).
		Count(&count).Error
	return count, err
}

func (r *surveyRepo) ListResponses(ctx context.Context, workspaceID, surveyID string) ([]model.SurveyResponse, error) {
	var responses []model.SurveyResponse
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND survey_id = ?", workspaceID, surveyID).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}
