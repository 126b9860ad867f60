package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
)

func TestRoleProfileCreate(t *testing.T) {
	repo := newTestRepo()
	svc := NewRoleProfileService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	seedSkill(t, repo, ws, "go", "Go")
	seedSkill(t, repo, ws, "sql", "SQL")

	created, err := svc.Create(ctx, ws, "mem-1", &dto.CreateRoleProfileRequest{
		Name:  "Backend Engineer",
		Track: "engineering",
		Level: 3,
		Requirements: []dto.RequirementInput{
			{SkillCode: "go", RequiredLevel: 3, Importance: 3},
			{SkillCode: "sql", RequiredLevel: 2},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Requirements) != 2 {
		t.Fatalf("requirements = %+v", created.Requirements)
	}
	// importance defaults to 1 when omitted
	for _, r := range created.Requirements {
		if r.SkillCode == "sql" && r.Importance != 1 {
			t.Fatalf("sql importance = %d, want default 1", r.Importance)
		}
	}

	got, err := svc.Get(ctx, ws, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Backend Engineer" || len(got.Requirements) != 2 {
		t.Fatalf("got = %+v", got)
	}

	if _, err := svc.Create(ctx, ws, "mem-1", &dto.CreateRoleProfileRequest{
		Name:  "Mystery Role",
		Level: 2,
		Requirements: []dto.RequirementInput{
			{SkillCode: "cobol", RequiredLevel: 4},
		},
	}); !errors.Is(err, ErrUnknownSkillCode) {
		t.Fatalf("unknown skill code: err = %v, want ErrUnknownSkillCode", err)
	}
}

func TestRoleProfileUpdateReplacesRequirements(t *testing.T) {
	repo := newTestRepo()
	svc := NewRoleProfileService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	seedSkill(t, repo, ws, "go", "Go")
	seedSkill(t, repo, ws, "sql", "SQL")
	seedSkill(t, repo, ws, "k8s", "Kubernetes")

	created, err := svc.Create(ctx, ws, "mem-1", &dto.CreateRoleProfileRequest{
		Name:  "Backend Engineer",
		Level: 3,
		Requirements: []dto.RequirementInput{
			{SkillCode: "go", RequiredLevel: 3},
			{SkillCode: "sql", RequiredLevel: 2},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// name-only patch keeps the requirement set
	renamed, err := svc.Update(ctx, ws, created.ID, "mem-1", &dto.UpdateRoleProfileRequest{
		Name: strPtr("Senior Backend Engineer"),
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Senior Backend Engineer" {
		t.Fatalf("name = %q", renamed.Name)
	}
	got, err := svc.Get(ctx, ws, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Requirements) != 2 {
		t.Fatalf("requirements after rename = %+v, want untouched", got.Requirements)
	}

	// a non-nil slice replaces the whole set
	replaced, err := svc.Update(ctx, ws, created.ID, "mem-1", &dto.UpdateRoleProfileRequest{
		Requirements: &[]dto.RequirementInput{
			{SkillCode: "k8s", RequiredLevel: 2, Importance: 2},
		},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(replaced.Requirements) != 1 || replaced.Requirements[0].SkillCode != "k8s" {
		t.Fatalf("replaced = %+v", replaced.Requirements)
	}
	got, err = svc.Get(ctx, ws, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Requirements) != 1 || got.Requirements[0].SkillCode != "k8s" {
		t.Fatalf("stored requirements = %+v, want only k8s", got.Requirements)
	}

	if _, err := svc.Update(ctx, ws, newID(), "mem-1", &dto.UpdateRoleProfileRequest{
		Name: strPtr("Ghost"),
	}); !errors.Is(err, ErrRoleProfileNotFound) {
		t.Fatalf("unknown profile: err = %v, want ErrRoleProfileNotFound", err)
	}
}

func TestRoleProfileDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewRoleProfileService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	created, err := svc.Create(ctx, ws, "mem-1", &dto.CreateRoleProfileRequest{
		Name:  "Designer",
		Level: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, ws, created.ID, "mem-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, ws, created.ID); !errors.Is(err, ErrRoleProfileNotFound) {
		t.Fatalf("get deleted: err = %v, want ErrRoleProfileNotFound", err)
	}
	if err := svc.Delete(ctx, ws, created.ID, "mem-1"); !errors.Is(err, ErrRoleProfileNotFound) {
		t.Fatalf("delete again: err = %v, want ErrRoleProfileNotFound", err)
	}
}
