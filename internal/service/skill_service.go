package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillCodeTaken = errors.New("skill code already exists in this workspace")
)

// ratingSourcePriority orders evidence by trust. Lower index wins when
// resolving the effective level.
var ratingSourcePriority = []string{
	model.RatingSourceManager,
	model.RatingSourceSelf,
	model.RatingSourceIntegration,
}

// SkillService handles the skill catalog and level ratings.
type SkillService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSkillService creates the skill service.
func NewSkillService(repo *repository.Repository, logger *zap.Logger) *SkillService {
	return &SkillService{repo: repo, logger: logger}
}

// Create adds a catalog entry.
func (s *SkillService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateSkillRequest) (*dto.SkillResponse, error) {
	if _, err := s.repo.Skill.GetByCode(ctx, workspaceID, req.Code); err == nil {
		return nil, ErrSkillCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill := &model.Skill{
		WorkspaceID: workspaceID,
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
	}
	skill.CreatedBy = &createdBy

	if err := s.repo.Skill.Create(ctx, skill); err != nil {
		return nil, err
	}
	return toSkillResponse(skill), nil
}

// Get returns one catalog entry by code.
func (s *SkillService) Get(ctx context.Context, workspaceID, code string) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByCode(ctx, workspaceID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return toSkillResponse(skill), nil
}

// List returns the whole catalog.
func (s *SkillService) List(ctx context.Context, workspaceID string) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		out = append(out, *toSkillResponse(&skills[i]))
	}
	return out, nil
}

// Update patches a catalog entry. The code is immutable: ratings and role
// requirements reference it.
func (s *SkillService) Update(ctx context.Context, workspaceID, code, updatedBy string, req *dto.UpdateSkillRequest) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByCode(ctx, workspaceID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Type != nil {
		skill.Type = *req.Type
	}
	skill.UpdatedBy = &updatedBy

	if err := s.repo.Skill.Update(ctx, skill); err != nil {
		return nil, err
	}
	return toSkillResponse(skill), nil
}

// Delete soft-deletes a catalog entry. Existing ratings keep their rows;
// aggregation treats them as orphans and skips them.
func (s *SkillService) Delete(ctx context.Context, workspaceID, code, deletedBy string) error {
	if _, err := s.repo.Skill.GetByCode(ctx, workspaceID, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}
	return s.repo.Skill.Delete(ctx, workspaceID, code, deletedBy)
}

// ── ratings ──

// Rate upserts one piece of level evidence for (employee, skill, source).
func (s *SkillService) Rate(ctx context.Context, workspaceID, employeeID, ratedBy string, req *dto.RateSkillRequest) (*dto.RatingResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Skill.GetByCode(ctx, workspaceID, req.SkillCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}

	rating := &model.EmployeeSkillRating{
		WorkspaceID: workspaceID,
		EmployeeID:  employeeID,
		SkillCode:   req.SkillCode,
		Level:       req.Level,
		Source:      req.Source,
	}
	rating.CreatedBy = &ratedBy
	rating.UpdatedBy = &ratedBy

	if err := s.repo.Rating.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		SkillCode: rating.SkillCode,
		Level:     rating.Level,
		Source:    rating.Source,
		UpdatedAt: fmtTime(rating.UpdatedAt),
	}, nil
}

// EmployeeSkills returns the employee's rating sheet with the effective
// level resolved across sources.
func (s *SkillService) EmployeeSkills(ctx context.Context, workspaceID, employeeID string) (*dto.EmployeeSkillsResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	ratings, err := s.repo.Rating.ListByEmployee(ctx, workspaceID, employeeID)
	if err != nil {
		return nil, err
	}

	skills, err := s.repo.Skill.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(skills))
	for i := range skills {
		names[skills[i].Code] = skills[i].Name
	}

	bySkill := make(map[string][]model.EmployeeSkillRating)
	for _, r := range ratings {
		bySkill[r.SkillCode] = append(bySkill[r.SkillCode], r)
	}

	resp := &dto.EmployeeSkillsResponse{EmployeeID: employeeID}
	for code, group := range bySkill {
		entry := dto.EffectiveSkillRating{
			SkillCode:      code,
			SkillName:      names[code],
			EffectiveLevel: effectiveLevel(group),
		}
		for _, r := range group {
			entry.Sources = append(entry.Sources, dto.RatingResponse{
				SkillCode: r.SkillCode,
				Level:     r.Level,
				Source:    r.Source,
				UpdatedAt: fmtTime(r.UpdatedAt),
			})
		}
		resp.Skills = append(resp.Skills, entry)
	}

	sort.Slice(resp.Skills, func(i, j int) bool {
		return resp.Skills[i].SkillCode < resp.Skills[j].SkillCode
	})
	return resp, nil
}

// effectiveLevel resolves one skill's level from its evidence: the most
// trusted source present wins.
func effectiveLevel(ratings []model.EmployeeSkillRating) int {
	for _, source := range ratingSourcePriority {
		for _, r := range ratings {
			if r.Source == source {
				return r.Level
			}
		}
	}
	return 0
}

// effectiveLevels folds a workspace's rating rows into employee×skill
// effective levels. Shared by the analytics and report builders.
func effectiveLevels(ratings []model.EmployeeSkillRating) map[string]map[string]int {
	grouped := make(map[string]map[string][]model.EmployeeSkillRating)
	for _, r := range ratings {
		if grouped[r.EmployeeID] == nil {
			grouped[r.EmployeeID] = make(map[string][]model.EmployeeSkillRating)
		}
		grouped[r.EmployeeID][r.SkillCode] = append(grouped[r.EmployeeID][r.SkillCode], r)
	}

	out := make(map[string]map[string]int, len(grouped))
	for empID, skills := range grouped {
		out[empID] = make(map[string]int, len(skills))
		for code, group := range skills {
			out[empID][code] = effectiveLevel(group)
		}
	}
	return out
}

func toSkillResponse(s *model.Skill) *dto.SkillResponse {
	return &dto.SkillResponse{
		ID:   s.SkillID,
		Code: s.Code,
		Name: s.Name,
		Type: s.Type,
	}
}
