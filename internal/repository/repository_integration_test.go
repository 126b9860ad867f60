//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/database"
	pkgerrors "github.com/inverness4444/quadrant-landing-sub000/pkg/errors"
)

// Run with:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres password=postgres dbname=quadrant_test sslmode=disable" \
//	  go test -tags integration ./internal/repository/
func setupDB(t *testing.T) *Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewRepository(db)
}

func createWorkspace(t *testing.T, repo *Repository) *model.Workspace {
	t.Helper()
	ws := &model.Workspace{
		Name:     "integration",
		Slug:     "it-" + uuid.NewString()[:8],
		Plan:     "team",
		IsActive: true,
	}
	if err := repo.Workspace.Create(context.Background(), ws); err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	return ws
}

func TestWorkspaceSlugUnique(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)

	dup := &model.Workspace{Name: "clone", Slug: ws.Slug, Plan: "trial", IsActive: true}
	if err := repo.Workspace.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate slug: err = %v, want gorm.ErrDuplicatedKey", err)
	}

	got, err := repo.Workspace.GetBySlug(ctx, ws.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.WorkspaceID != ws.WorkspaceID {
		t.Fatalf("got %q, want %q", got.WorkspaceID, ws.WorkspaceID)
	}
}

func TestRatingUpsertConstraint(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)
	emp := &model.Employee{WorkspaceID: ws.WorkspaceID, Name: "Ada", Position: "Backend Engineer", Level: 3, IsActive: true}
	if err := repo.Employee.Create(ctx, emp); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	skill := &model.Skill{WorkspaceID: ws.WorkspaceID, Code: "go", Name: "Go", Type: model.SkillTypeHard}
	if err := repo.Skill.Create(ctx, skill); err != nil {
		t.Fatalf("create skill: %v", err)
	}

	for _, level := range []int{2, 4} {
		err := repo.Rating.Upsert(ctx, &model.EmployeeSkillRating{
			WorkspaceID: ws.WorkspaceID,
			EmployeeID:  emp.EmployeeID,
			SkillCode:   "go",
			Level:       level,
			Source:      model.RatingSourceSelf,
		})
		if err != nil {
			t.Fatalf("upsert level %d: %v", level, err)
		}
	}

	ratings, err := repo.Rating.ListByEmployee(ctx, ws.WorkspaceID, emp.EmployeeID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Level != 4 {
		t.Fatalf("ratings = %+v, want one row at the latest level", ratings)
	}
}

func TestSkillSoftDelete(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)
	if err := repo.Skill.Create(ctx, &model.Skill{WorkspaceID: ws.WorkspaceID, Code: "sql", Name: "SQL", Type: model.SkillTypeHard}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Skill.Delete(ctx, ws.WorkspaceID, "sql", "mem-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Skill.GetByCode(ctx, ws.WorkspaceID, "sql"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("get deleted: err = %v, want gorm.ErrRecordNotFound", err)
	}

	// the code becomes reusable after deletion
	if err := repo.Skill.Create(ctx, &model.Skill{WorkspaceID: ws.WorkspaceID, Code: "sql", Name: "SQL v2", Type: model.SkillTypeHard}); err != nil {
		t.Fatalf("recreate: %v", err)
	}
}

func TestReportUpsertPerQuarter(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)

	first := &model.QuarterlyReport{
		WorkspaceID: ws.WorkspaceID,
		Year:        2025,
		Quarter:     1,
		Payload:     model.ReportPayload{Headcount: 10},
	}
	if err := repo.Report.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := repo.Report.GetByQuarter(ctx, ws.WorkspaceID, 2025, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	stored.IsLocked = true
	stored.Notes = "keep"
	if err := repo.Report.Update(ctx, stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	// regeneration refreshes the payload but keeps id, lock and notes
	second := &model.QuarterlyReport{
		WorkspaceID: ws.WorkspaceID,
		Year:        2025,
		Quarter:     1,
		Payload:     model.ReportPayload{Headcount: 12},
	}
	if err := repo.Report.Upsert(ctx, second); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	got, err := repo.Report.GetByQuarter(ctx, ws.WorkspaceID, 2025, 1)
	if err != nil {
		t.Fatalf("get after re-upsert: %v", err)
	}
	if got.ReportID != stored.ReportID {
		t.Fatal("upsert must not create a second row for the quarter")
	}
	if got.Payload.Headcount != 12 {
		t.Fatalf("Headcount = %d, want refreshed 12", got.Payload.Headcount)
	}
	if !got.IsLocked || got.Notes != "keep" {
		t.Fatalf("lock/notes lost: %+v", got)
	}
}

func TestOptimisticLock(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)
	emp := &model.Employee{WorkspaceID: ws.WorkspaceID, Name: "Ada", Position: "Backend Engineer", Level: 3, IsActive: true}
	if err := repo.Employee.Create(ctx, emp); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.Employee.GetByID(ctx, ws.WorkspaceID, emp.EmployeeID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := repo.Employee.GetByID(ctx, ws.WorkspaceID, emp.EmployeeID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	first.Level = 4
	if err := repo.Employee.Update(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second.Level = 5
	if err := repo.Employee.Update(ctx, second); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("stale update: err = %v, want ErrOptimisticLock", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repo := setupDB(t)
	ctx := context.Background()

	ws := createWorkspace(t, repo)
	boom := errors.New("boom")

	err := repo.Transaction(func(tx *Repository) error {
		if err := tx.Employee.Create(ctx, &model.Employee{
			WorkspaceID: ws.WorkspaceID,
			Name:        "Ghost",
			Position:    "Nobody",
			Level:       1,
			IsActive:    true,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the inner error", err)
	}

	employees, _, err := repo.Employee.List(ctx, ws.WorkspaceID, &EmployeeListFilters{}, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("rollback failed, employees = %+v", employees)
	}
}
