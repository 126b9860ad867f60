package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
)

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func seedLoginAccount(t *testing.T, repo *repository.Repository, slug, email, password string) (*model.Workspace, *model.Member) {
	t.Helper()
	ctx := context.Background()

	ws := &model.Workspace{
		Name:     "Acme",
		Slug:     slug,
		Plan:     "team",
		IsActive: true,
	}
	if err := repo.Workspace.Create(ctx, ws); err != nil {
		t.Fatalf("seed workspace: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	member := &model.Member{
		WorkspaceID:  ws.WorkspaceID,
		Name:         "Olive Owner",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
	}
	if err := repo.Member.Create(ctx, member); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return ws, member
}

func TestLogin(t *testing.T) {
	repo := newTestRepo()
	svc := NewAuthService(repo, testJWTManager(), nil, zap.NewNop())
	ctx := context.Background()

	seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")

	tokens, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "olive@acme.test",
		Password:      "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login must issue both tokens")
	}
	if tokens.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Fatalf("ExpiresIn = %d", tokens.ExpiresIn)
	}
	if tokens.Member.Role != model.RoleOwner {
		t.Fatalf("member role = %q", tokens.Member.Role)
	}

	// email comparison ignores case
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "OLIVE@acme.test",
		Password:      "hunter22",
	}); err != nil {
		t.Fatalf("case-insensitive email: %v", err)
	}

	for _, bad := range []dto.LoginRequest{
		{WorkspaceSlug: "nope", Email: "olive@acme.test", Password: "hunter22"},
		{WorkspaceSlug: "acme", Email: "nobody@acme.test", Password: "hunter22"},
		{WorkspaceSlug: "acme", Email: "olive@acme.test", Password: "wrong"},
	} {
		if _, err := svc.Login(ctx, &bad); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login %+v: err = %v, want ErrInvalidCredentials", bad, err)
		}
	}
}

func TestLoginSuspendedWorkspace(t *testing.T) {
	repo := newTestRepo()
	svc := NewAuthService(repo, testJWTManager(), nil, zap.NewNop())
	ctx := context.Background()

	ws, _ := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")
	ws.IsActive = false
	if err := repo.Workspace.Update(ctx, ws); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "olive@acme.test",
		Password:      "hunter22",
	}); !errors.Is(err, ErrWorkspaceSuspended) {
		t.Fatalf("suspended login: err = %v, want ErrWorkspaceSuspended", err)
	}
}

func TestRefresh(t *testing.T) {
	repo := newTestRepo()
	mgr := testJWTManager()
	svc := NewAuthService(repo, mgr, nil, zap.NewNop())
	ctx := context.Background()

	seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")
	tokens, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "olive@acme.test",
		Password:      "hunter22",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("refresh must issue a fresh pair")
	}

	// an access token is not accepted in the refresh slot
	if _, err := svc.Refresh(ctx, tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("refresh with access token: err = %v, want ErrInvalidRefreshToken", err)
	}
	if _, err := svc.Refresh(ctx, "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("garbage token: err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewAuthService(repo, testJWTManager(), nil, zap.NewNop())
	ctx := context.Background()

	ws, member := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")

	if err := svc.ChangePassword(ctx, ws.WorkspaceID, member.MemberID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "correct horse battery",
	}); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("wrong old password: err = %v, want ErrWrongPassword", err)
	}

	if err := svc.ChangePassword(ctx, ws.WorkspaceID, member.MemberID, &dto.ChangePasswordRequest{
		OldPassword: "hunter22",
		NewPassword: "correct horse battery",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "olive@acme.test",
		Password:      "hunter22",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password must stop working")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "olive@acme.test",
		Password:      "correct horse battery",
	}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestMe(t *testing.T) {
	repo := newTestRepo()
	svc := NewAuthService(repo, testJWTManager(), nil, zap.NewNop())
	ctx := context.Background()

	ws, member := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")

	emp := seedEmployee(t, repo, ws.WorkspaceID, "Olive Owner", "CEO")
	member.EmployeeID = &emp.EmployeeID
	if err := repo.Member.Update(ctx, member); err != nil {
		t.Fatalf("link employee: %v", err)
	}

	me, err := svc.Me(ctx, ws.WorkspaceID, member.MemberID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Workspace == nil || me.Workspace.Slug != "acme" {
		t.Fatalf("workspace = %+v", me.Workspace)
	}
	if me.Employee == nil || me.Employee.Position != "CEO" {
		t.Fatalf("employee = %+v", me.Employee)
	}

	if _, err := svc.Me(ctx, ws.WorkspaceID, newID()); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("unknown member: err = %v, want ErrMemberNotFound", err)
	}
}
