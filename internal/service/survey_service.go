package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrSurveyClosed     = errors.New("survey is closed")
	ErrAlreadyResponded = errors.New("employee already responded to this survey")
)

// SurveyService handles feedback pulse surveys.
type SurveyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSurveyService creates the survey service.
func NewSurveyService(repo *repository.Repository, logger *zap.Logger) *SurveyService {
	return &SurveyService{repo: repo, logger: logger}
}

// Create opens a survey. When invited_count is omitted it defaults to the
// current active headcount.
func (s *SurveyService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateSurveyRequest) (*dto.SurveyView, error) {
	invited := 0
	if req.InvitedCount != nil {
		invited = *req.InvitedCount
	} else {
		n, err := s.repo.Employee.CountActive(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		invited = int(n)
	}

	survey := &model.Survey{
		WorkspaceID:  workspaceID,
		Title:        req.Title,
		Status:       model.SurveyStatusOpen,
		InvitedCount: invited,
	}
	if req.ClosesAt != "" {
		survey.ClosesAt = parseDatePtr(&req.ClosesAt)
	}
	survey.CreatedBy = &createdBy

	if err := s.repo.Survey.Create(ctx, survey); err != nil {
		return nil, err
	}
	return s.view(ctx, survey)
}

// Get returns one survey with its aggregates.
func (s *SurveyService) Get(ctx context.Context, workspaceID, id string) (*dto.SurveyView, error) {
	survey, err := s.repo.Survey.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return s.view(ctx, survey)
}

// List returns every survey with aggregates, newest first.
func (s *SurveyService) List(ctx context.Context, workspaceID string) ([]dto.SurveyView, error) {
	surveys, err := s.repo.Survey.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SurveyView, 0, len(surveys))
	for i := range surveys {
		v, err := s.view(ctx, &surveys[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Close ends a survey; further responses are rejected.
func (s *SurveyService) Close(ctx context.Context, workspaceID, id, updatedBy string) (*dto.SurveyView, error) {
	survey, err := s.repo.Survey.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	if survey.Status == model.SurveyStatusClosed {
		return nil, ErrSurveyClosed
	}

	survey.Status = model.SurveyStatusClosed
	survey.UpdatedBy = &updatedBy
	if err := s.repo.Survey.Update(ctx, survey); err != nil {
		return nil, err
	}
	return s.view(ctx, survey)
}

// SubmitResponse records one employee's answer. One response per employee
// per survey; the unique index backs this up.
func (s *SurveyService) SubmitResponse(ctx context.Context, workspaceID, surveyID, submittedBy string, req *dto.SubmitSurveyResponseRequest) error {
	survey, err := s.repo.Survey.GetByID(ctx, workspaceID, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSurveyNotFound
		}
		return err
	}
	if survey.Status != model.SurveyStatusOpen {
		return ErrSurveyClosed
	}
	if survey.ClosesAt != nil && survey.ClosesAt.Before(nowUTC()) {
		return ErrSurveyClosed
	}

	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	resp := &model.SurveyResponse{
		WorkspaceID: workspaceID,
		SurveyID:    surveyID,
		EmployeeID:  req.EmployeeID,
		Score:       req.Score,
		Comment:     req.Comment,
	}
	resp.CreatedBy = &submittedBy

	if err := s.repo.Survey.AddResponse(ctx, resp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyResponded
		}
		return err
	}
	return nil
}

func (s *SurveyService) view(ctx context.Context, survey *model.Survey) (*dto.SurveyView, error) {
	responses, err := s.repo.Survey.ListResponses(ctx, survey.WorkspaceID, survey.SurveyID)
	if err != nil {
		return nil, err
	}

	v := &dto.SurveyView{
		ID:            survey.SurveyID,
		Title:         survey.Title,
		Status:        survey.Status,
		InvitedCount:  survey.InvitedCount,
		ClosesAt:      fmtDatePtr(survey.ClosesAt),
		ResponseCount: len(responses),
	}
	if survey.InvitedCount > 0 {
		v.ResponseRate = float64(len(responses)) / float64(survey.InvitedCount) * 100
	}
	if len(responses) > 0 {
		sum := 0
		for _, r := range responses {
			sum += r.Score
		}
		v.AvgScore = float64(sum) / float64(len(responses))
	}
	return v, nil
}
