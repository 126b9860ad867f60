package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrEmailTaken        = errors.New("email already registered in this workspace")
	ErrOwnerImmutable    = errors.New("the owner role cannot be changed")
)

// WorkspaceService handles tenant settings and member management.
type WorkspaceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkspaceService creates the workspace service.
func NewWorkspaceService(repo *repository.Repository, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{repo: repo, logger: logger}
}

// Get returns the caller's workspace.
func (s *WorkspaceService) Get(ctx context.Context, workspaceID string) (*dto.WorkspaceResponse, error) {
	ws, err := s.repo.Workspace.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return toWorkspaceResponse(ws), nil
}

// Update patches workspace settings.
func (s *WorkspaceService) Update(ctx context.Context, workspaceID, updatedBy string, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	ws, err := s.repo.Workspace.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Plan != nil {
		ws.Plan = *req.Plan
	}
	ws.UpdatedBy = &updatedBy

	if err := s.repo.Workspace.Update(ctx, ws); err != nil {
		return nil, err
	}
	return toWorkspaceResponse(ws), nil
}

// ListMembers pages through the workspace accounts.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID string, page *dto.PaginationRequest) ([]dto.MemberResponse, int64, error) {
	members, total, err := s.repo.Member.List(ctx, workspaceID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, toMemberResponse(&members[i]))
	}
	return out, total, nil
}

// InviteMember creates a new account with a generated temporary password.
// The password is returned exactly once.
func (s *WorkspaceService) InviteMember(ctx context.Context, workspaceID, invitedBy string, req *dto.InviteMemberRequest) (*dto.InviteMemberResponse, error) {
	if _, err := s.repo.Member.GetByEmail(ctx, workspaceID, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.EmployeeID != nil {
		if _, err := s.repo.Employee.GetByID(ctx, workspaceID, *req.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &model.Member{
		WorkspaceID:  workspaceID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
	}
	member.CreatedBy = &invitedBy

	if err := s.repo.Member.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member invited",
		zap.String("workspace_id", workspaceID),
		zap.String("member_id", member.MemberID),
		zap.String("role", member.Role))

	return &dto.InviteMemberResponse{
		Member:       toMemberResponse(member),
		TempPassword: tempPassword,
	}, nil
}

// AssignRole changes a member's role. The owner role can be neither granted
// nor revoked here.
func (s *WorkspaceService) AssignRole(ctx context.Context, workspaceID, targetMemberID, updatedBy string, req *dto.AssignRoleRequest) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, workspaceID, targetMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.Role == model.RoleOwner {
		return nil, ErrOwnerImmutable
	}

	member.Role = req.Role
	member.UpdatedBy = &updatedBy
	if err := s.repo.Member.Update(ctx, member); err != nil {
		return nil, err
	}

	resp := toMemberResponse(member)
	return &resp, nil
}

func toWorkspaceResponse(ws *model.Workspace) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{
		ID:       ws.WorkspaceID,
		Name:     ws.Name,
		Slug:     ws.Slug,
		Plan:     ws.Plan,
		IsActive: ws.IsActive,
	}
}

// generateTempPassword returns a 16-character URL-safe random password.
func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
