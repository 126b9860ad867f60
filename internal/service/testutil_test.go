package service

import (
	"context"
	"testing"
	"time"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			TopListSize:      5,
			OverviewCacheTTL: time.Minute,
		},
	}
}

func seedEmployee(t *testing.T, repo *repository.Repository, workspaceID, name, position string) *model.Employee {
	t.Helper()
	emp := &model.Employee{
		WorkspaceID: workspaceID,
		Name:        name,
		Position:    position,
		Level:       3,
		IsActive:    true,
	}
	if err := repo.Employee.Create(context.Background(), emp); err != nil {
		t.Fatalf("seed employee %s: %v", name, err)
	}
	return emp
}

func seedSkill(t *testing.T, repo *repository.Repository, workspaceID, code, name string) *model.Skill {
	t.Helper()
	skill := &model.Skill{
		WorkspaceID: workspaceID,
		Code:        code,
		Name:        name,
		Type:        model.SkillTypeHard,
	}
	if err := repo.Skill.Create(context.Background(), skill); err != nil {
		t.Fatalf("seed skill %s: %v", code, err)
	}
	return skill
}

func seedRating(t *testing.T, repo *repository.Repository, workspaceID, employeeID, skillCode string, level int, source string) {
	t.Helper()
	rating := &model.EmployeeSkillRating{
		WorkspaceID: workspaceID,
		EmployeeID:  employeeID,
		SkillCode:   skillCode,
		Level:       level,
		Source:      source,
	}
	if err := repo.Rating.Upsert(context.Background(), rating); err != nil {
		t.Fatalf("seed rating %s/%s: %v", employeeID, skillCode, err)
	}
}

func seedRoleProfile(t *testing.T, repo *repository.Repository, workspaceID, name string, reqs []model.RoleSkillRequirement) *model.RoleProfile {
	t.Helper()
	for i := range reqs {
		reqs[i].WorkspaceID = workspaceID
	}
	profile := &model.RoleProfile{
		WorkspaceID:  workspaceID,
		Name:         name,
		Track:        "engineering",
		Level:        3,
		Requirements: reqs,
	}
	if err := repo.RoleProfile.Create(context.Background(), profile); err != nil {
		t.Fatalf("seed role profile %s: %v", name, err)
	}
	return profile
}

func seedGoal(t *testing.T, repo *repository.Repository, workspaceID, employeeID, title string, due *time.Time) *model.DevelopmentGoal {
	t.Helper()
	goal := &model.DevelopmentGoal{
		WorkspaceID: workspaceID,
		EmployeeID:  employeeID,
		Title:       title,
		Status:      model.GoalStatusActive,
		DueDate:     due,
	}
	if err := repo.Goal.Create(context.Background(), goal); err != nil {
		t.Fatalf("seed goal %s: %v", title, err)
	}
	return goal
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
