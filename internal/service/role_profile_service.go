package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var ErrRoleProfileNotFound = errors.New("role profile not found")

// ErrUnknownSkillCode wraps the offending code.
var ErrUnknownSkillCode = errors.New("requirement references an unknown skill code")

// RoleProfileService handles roles and their skill requirements.
type RoleProfileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoleProfileService creates the role profile service.
func NewRoleProfileService(repo *repository.Repository, logger *zap.Logger) *RoleProfileService {
	return &RoleProfileService{repo: repo, logger: logger}
}

// Create adds a role with its requirement set.
func (s *RoleProfileService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreateRoleProfileRequest) (*dto.RoleProfileResponse, error) {
	if err := s.checkSkillCodes(ctx, workspaceID, req.Requirements); err != nil {
		return nil, err
	}

	profile := &model.RoleProfile{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Track:       req.Track,
		Level:       req.Level,
	}
	profile.CreatedBy = &createdBy
	for _, r := range req.Requirements {
		profile.Requirements = append(profile.Requirements, model.RoleSkillRequirement{
			WorkspaceID:   workspaceID,
			SkillCode:     r.SkillCode,
			RequiredLevel: r.RequiredLevel,
			Importance:    defaultImportance(r.Importance),
		})
	}

	if err := s.repo.RoleProfile.Create(ctx, profile); err != nil {
		return nil, err
	}
	return toRoleProfileResponse(profile), nil
}

// Get returns one role with its requirements.
func (s *RoleProfileService) Get(ctx context.Context, workspaceID, id string) (*dto.RoleProfileResponse, error) {
	profile, err := s.repo.RoleProfile.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleProfileNotFound
		}
		return nil, err
	}
	return toRoleProfileResponse(profile), nil
}

// List returns every role in the workspace.
func (s *RoleProfileService) List(ctx context.Context, workspaceID string) ([]dto.RoleProfileResponse, error) {
	profiles, err := s.repo.RoleProfile.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *toRoleProfileResponse(&profiles[i]))
	}
	return out, nil
}

// Update patches a role. A non-nil Requirements slice replaces the whole set.
func (s *RoleProfileService) Update(ctx context.Context, workspaceID, id, updatedBy string, req *dto.UpdateRoleProfileRequest) (*dto.RoleProfileResponse, error) {
	profile, err := s.repo.RoleProfile.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleProfileNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Track != nil {
		profile.Track = *req.Track
	}
	if req.Level != nil {
		profile.Level = *req.Level
	}
	profile.UpdatedBy = &updatedBy

	if err := s.repo.RoleProfile.Update(ctx, profile); err != nil {
		return nil, err
	}

	if req.Requirements != nil {
		if err := s.checkSkillCodes(ctx, workspaceID, *req.Requirements); err != nil {
			return nil, err
		}
		reqs := make([]model.RoleSkillRequirement, 0, len(*req.Requirements))
		for _, r := range *req.Requirements {
			reqs = append(reqs, model.RoleSkillRequirement{
				WorkspaceID:   workspaceID,
				RoleProfileID: id,
				SkillCode:     r.SkillCode,
				RequiredLevel: r.RequiredLevel,
				Importance:    defaultImportance(r.Importance),
			})
		}
		if err := s.repo.RoleProfile.ReplaceRequirements(ctx, workspaceID, id, reqs); err != nil {
			return nil, err
		}
		profile.Requirements = reqs
	}

	return toRoleProfileResponse(profile), nil
}

// Delete soft-deletes a role.
func (s *RoleProfileService) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	if _, err := s.repo.RoleProfile.GetByID(ctx, workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleProfileNotFound
		}
		return err
	}
	return s.repo.RoleProfile.Delete(ctx, workspaceID, id, deletedBy)
}

func (s *RoleProfileService) checkSkillCodes(ctx context.Context, workspaceID string, reqs []dto.RequirementInput) error {
	for _, r := range reqs {
		if _, err := s.repo.Skill.GetByCode(ctx, workspaceID, r.SkillCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownSkillCode, r.SkillCode)
			}
			return err
		}
	}
	return nil
}

func defaultImportance(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func toRoleProfileResponse(p *model.RoleProfile) *dto.RoleProfileResponse {
	resp := &dto.RoleProfileResponse{
		ID:           p.RoleProfileID,
		Name:         p.Name,
		Track:        p.Track,
		Level:        p.Level,
		Requirements: make([]dto.RequirementResponse, 0, len(p.Requirements)),
	}
	for _, r := range p.Requirements {
		resp.Requirements = append(resp.Requirements, dto.RequirementResponse{
			SkillCode:     r.SkillCode,
			RequiredLevel: r.RequiredLevel,
			Importance:    r.Importance,
		})
	}
	return resp
}
