package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/redis"
)

var (
	ErrInvalidCredentials  = errors.New("invalid workspace, email or password")
	ErrWorkspaceSuspended  = errors.New("workspace is suspended")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrWrongPassword       = errors.New("old password is incorrect")
)

// AuthService handles login, token rotation and password changes.
type AuthService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// Login verifies credentials against the workspace named by slug and issues
// a token pair. Unknown workspace, unknown email and wrong password all
// collapse into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	ws, err := s.repo.Workspace.GetBySlug(ctx, req.WorkspaceSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ws.IsActive {
		return nil, ErrWorkspaceSuspended
	}

	member, err := s.repo.Member.GetByEmail(ctx, ws.WorkspaceID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed",
			zap.String("workspace", req.WorkspaceSlug),
			zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(member)
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token is blacklisted so it can be used at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefreshToken
		}
	}

	member, err := s.repo.Member.GetByID(ctx, claims.WorkspaceID, claims.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	s.blacklistClaims(ctx, claims)

	return s.issueTokens(member)
}

// Logout revokes the presented access token for its remaining lifetime.
// Without redis this is a no-op: the token simply ages out.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) {
	s.blacklistClaims(ctx, claims)
}

// Me returns the caller's account with its linked workspace and employee.
func (s *AuthService) Me(ctx context.Context, workspaceID, memberID string) (*dto.MemberDetailResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, workspaceID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	resp := &dto.MemberDetailResponse{
		ID:          member.MemberID,
		Name:        member.Name,
		Email:       member.Email,
		Role:        member.Role,
		WorkspaceID: member.WorkspaceID,
		CreatedAt:   fmtTime(member.CreatedAt),
	}

	if ws, err := s.repo.Workspace.GetByID(ctx, workspaceID); err == nil {
		resp.Workspace = &dto.WorkspaceResponse{
			ID:       ws.WorkspaceID,
			Name:     ws.Name,
			Slug:     ws.Slug,
			Plan:     ws.Plan,
			IsActive: ws.IsActive,
		}
	}

	if member.EmployeeID != nil {
		if emp, err := s.repo.Employee.GetByID(ctx, workspaceID, *member.EmployeeID); err == nil {
			er := toEmployeeResponse(emp)
			resp.Employee = &er
		}
	}

	return resp, nil
}

// ChangePassword rotates the caller's password after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, workspaceID, memberID string, req *dto.ChangePasswordRequest) error {
	member, err := s.repo.Member.GetByID(ctx, workspaceID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	member.PasswordHash = string(hash)
	member.UpdatedBy = &memberID
	if err := s.repo.Member.Update(ctx, member); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("member_id", memberID))
	return nil
}

func (s *AuthService) issueTokens(member *model.Member) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(member.MemberID, member.WorkspaceID, member.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(member.MemberID, member.WorkspaceID, member.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Member:       toMemberResponse(member),
	}, nil
}

func (s *AuthService) blacklistClaims(ctx context.Context, claims *jwt.Claims) {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("token blacklist failed", zap.Error(err))
	}
}

func toMemberResponse(m *model.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          m.MemberID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        m.Role,
		WorkspaceID: m.WorkspaceID,
		EmployeeID:  m.EmployeeID,
	}
}
