package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

func TestInviteMember(t *testing.T) {
	repo := newTestRepo()
	svc := NewWorkspaceService(repo, zap.NewNop())
	ctx := context.Background()

	ws, owner := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")
	emp := seedEmployee(t, repo, ws.WorkspaceID, "Harper", "HR Lead")

	invited, err := svc.InviteMember(ctx, ws.WorkspaceID, owner.MemberID, &dto.InviteMemberRequest{
		Name:       "Harper",
		Email:      "harper@acme.test",
		Role:       model.RoleHR,
		EmployeeID: &emp.EmployeeID,
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if invited.TempPassword == "" {
		t.Fatal("invite must hand back the temporary password")
	}
	if invited.Member.Role != model.RoleHR {
		t.Fatalf("role = %q", invited.Member.Role)
	}

	// The temporary password actually works.
	auth := NewAuthService(repo, testJWTManager(), nil, zap.NewNop())
	if _, err := auth.Login(ctx, &dto.LoginRequest{
		WorkspaceSlug: "acme",
		Email:         "harper@acme.test",
		Password:      invited.TempPassword,
	}); err != nil {
		t.Fatalf("login with temp password: %v", err)
	}

	if _, err := svc.InviteMember(ctx, ws.WorkspaceID, owner.MemberID, &dto.InviteMemberRequest{
		Name:  "Harper Again",
		Email: "harper@acme.test",
		Role:  model.RoleMember,
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: err = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.InviteMember(ctx, ws.WorkspaceID, owner.MemberID, &dto.InviteMemberRequest{
		Name:       "Ghost",
		Email:      "ghost@acme.test",
		Role:       model.RoleMember,
		EmployeeID: strPtr(newID()),
	}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("unknown employee link: err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestAssignRole(t *testing.T) {
	repo := newTestRepo()
	svc := NewWorkspaceService(repo, zap.NewNop())
	ctx := context.Background()

	ws, owner := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")

	invited, err := svc.InviteMember(ctx, ws.WorkspaceID, owner.MemberID, &dto.InviteMemberRequest{
		Name:  "Max",
		Email: "max@acme.test",
		Role:  model.RoleMember,
	})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	promoted, err := svc.AssignRole(ctx, ws.WorkspaceID, invited.Member.ID, owner.MemberID, &dto.AssignRoleRequest{
		Role: model.RoleManager,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if promoted.Role != model.RoleManager {
		t.Fatalf("role = %q", promoted.Role)
	}

	if _, err := svc.AssignRole(ctx, ws.WorkspaceID, owner.MemberID, owner.MemberID, &dto.AssignRoleRequest{
		Role: model.RoleHR,
	}); !errors.Is(err, ErrOwnerImmutable) {
		t.Fatalf("demote owner: err = %v, want ErrOwnerImmutable", err)
	}

	if _, err := svc.AssignRole(ctx, ws.WorkspaceID, newID(), owner.MemberID, &dto.AssignRoleRequest{
		Role: model.RoleManager,
	}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("unknown member: err = %v, want ErrMemberNotFound", err)
	}
}

func TestWorkspaceUpdate(t *testing.T) {
	repo := newTestRepo()
	svc := NewWorkspaceService(repo, zap.NewNop())
	ctx := context.Background()

	ws, owner := seedLoginAccount(t, repo, "acme", "olive@acme.test", "hunter22")

	updated, err := svc.Update(ctx, ws.WorkspaceID, owner.MemberID, &dto.UpdateWorkspaceRequest{
		Name: strPtr("Acme Corp"),
		Plan: strPtr("enterprise"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Acme Corp" || updated.Plan != "enterprise" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Slug != "acme" {
		t.Fatal("slug is immutable")
	}

	if _, err := svc.Get(ctx, newID()); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("unknown workspace: err = %v, want ErrWorkspaceNotFound", err)
	}
}
