package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

func TestEmployeeCreateAndUpdate(t *testing.T) {
	repo := newTestRepo()
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	mgr, err := svc.Create(ctx, ws, "mem-1", &dto.CreateEmployeeRequest{
		Name:     "Ada Lovelace",
		Position: "Engineering Manager",
		Level:    5,
	})
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}

	emp, err := svc.Create(ctx, ws, "mem-1", &dto.CreateEmployeeRequest{
		Name:      "Brie Larson",
		Position:  "Backend Engineer",
		Level:     3,
		ManagerID: &mgr.ID,
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if !emp.IsActive {
		t.Fatal("new employees start active")
	}

	if _, err := svc.Create(ctx, ws, "mem-1", &dto.CreateEmployeeRequest{
		Name:      "Cal",
		Position:  "Designer",
		Level:     2,
		ManagerID: strPtr(newID()),
	}); !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("unknown manager: err = %v, want ErrManagerNotFound", err)
	}

	if _, err := svc.Update(ctx, ws, emp.ID, "mem-1", &dto.UpdateEmployeeRequest{
		ManagerID: &emp.ID,
	}); !errors.Is(err, ErrSelfManager) {
		t.Fatalf("self manager: err = %v, want ErrSelfManager", err)
	}

	updated, err := svc.Update(ctx, ws, emp.ID, "mem-1", &dto.UpdateEmployeeRequest{
		Position: strPtr("Senior Backend Engineer"),
		Level:    intPtr(4),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Position != "Senior Backend Engineer" || updated.Level != 4 {
		t.Fatalf("updated = %+v", updated)
	}

	got, err := svc.Get(ctx, ws, emp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ManagerName != "Ada Lovelace" {
		t.Fatalf("manager name = %q", got.ManagerName)
	}
}

func buildImportWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"name", "position", "level", "track", "track_level"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return &buf
}

func TestImportXLSX(t *testing.T) {
	repo := newTestRepo()
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	buf := buildImportWorkbook(t, [][]interface{}{
		{"Ada Lovelace", "Backend Engineer", 4, "engineering", 4},
		{"Brie Larson", "Designer"},                       // level defaults to 1
		{"", "Backend Engineer", 3},                       // missing name
		{"Dee Dee", "Backend Engineer", 9},                // level out of range
		{"Eve Moneypenny", "Analyst", 2, "data", "seven"}, // bad track level
	})

	result, err := svc.ImportXLSX(ctx, ws, "mem-1", buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 3 {
		t.Fatalf("Skipped = %d, want 3", result.Skipped)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("got %d row errors, want 3", len(result.Errors))
	}
	// Row numbers are 1-based positions in the sheet, after the header.
	if result.Errors[0].Row != 4 || result.Errors[1].Row != 5 || result.Errors[2].Row != 6 {
		t.Fatalf("error rows = %d, %d, %d", result.Errors[0].Row, result.Errors[1].Row, result.Errors[2].Row)
	}

	employees, err := repo.Employee.ListActive(ctx, ws)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("stored %d employees, want 2", len(employees))
	}
	for _, e := range employees {
		if e.Name == "Brie Larson" && e.Level != 1 {
			t.Fatalf("default level = %d, want 1", e.Level)
		}
	}
}

func TestImportXLSXEmptySheet(t *testing.T) {
	repo := newTestRepo()
	svc := NewEmployeeService(repo, zap.NewNop())

	buf := buildImportWorkbook(t, nil)
	if _, err := svc.ImportXLSX(context.Background(), newID(), "mem-1", buf); !errors.Is(err, ErrImportEmptySheet) {
		t.Fatalf("header-only sheet: err = %v, want ErrImportEmptySheet", err)
	}
}

func TestOnboardingFlow(t *testing.T) {
	repo := newTestRepo()
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()
	emp := seedEmployee(t, repo, ws, "Ada", "Backend Engineer")

	flow, err := svc.StartOnboarding(ctx, ws, emp.EmployeeID, "mem-1", &dto.StartOnboardingRequest{
		Titles: []string{"set up laptop", "meet the team", "30-day review"},
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if flow.Completed {
		t.Fatal("fresh flow cannot be completed")
	}
	if len(flow.Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(flow.Steps))
	}
	for i, st := range flow.Steps[:2] {
		if st.Kind != model.OnboardingKindTask {
			t.Fatalf("step %d kind = %q, want task", i, st.Kind)
		}
	}
	if flow.Steps[2].Kind != model.OnboardingKindReview {
		t.Fatalf("last step kind = %q, want review", flow.Steps[2].Kind)
	}

	if _, err := svc.StartOnboarding(ctx, ws, emp.EmployeeID, "mem-1", &dto.StartOnboardingRequest{
		Titles: []string{"again"},
	}); !errors.Is(err, ErrOnboardingExists) {
		t.Fatalf("restart: err = %v, want ErrOnboardingExists", err)
	}

	// Completing out of order is rejected.
	if _, err := svc.CompleteOnboardingStep(ctx, ws, emp.EmployeeID, flow.Steps[1].ID, "mem-1"); !errors.Is(err, ErrOnboardingOutOfOrder) {
		t.Fatalf("out of order: err = %v, want ErrOnboardingOutOfOrder", err)
	}

	for _, st := range flow.Steps {
		updated, err := svc.CompleteOnboardingStep(ctx, ws, emp.EmployeeID, st.ID, "mem-1")
		if err != nil {
			t.Fatalf("complete %q: %v", st.Title, err)
		}
		flow = updated
	}
	if !flow.Completed {
		t.Fatal("all steps done, flow should read completed")
	}

	if _, err := svc.CompleteOnboardingStep(ctx, ws, emp.EmployeeID, flow.Steps[0].ID, "mem-1"); !errors.Is(err, ErrOnboardingStepDone) {
		t.Fatalf("double complete: err = %v, want ErrOnboardingStepDone", err)
	}

	if _, err := svc.GetOnboarding(ctx, ws, newID()); !errors.Is(err, ErrOnboardingNotStarted) {
		t.Fatalf("missing flow: err = %v, want ErrOnboardingNotStarted", err)
	}
}
