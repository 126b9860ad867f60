package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrReportNotFound = errors.New("quarterly report not found")
	ErrReportLocked   = errors.New("quarterly report is locked")
)

// riskReasonMonitorDecision is the reason ensured risk cases carry. Reusing
// the same string per employee keeps report regeneration idempotent.
const riskReasonMonitorDecision = "open monitor_risk decision"

// ReportService builds and stores quarterly reports.
type ReportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates the report service.
func NewReportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *ReportService {
	return &ReportService{cfg: cfg, repo: repo, logger: logger}
}

// quarterBounds returns the inclusive UTC bounds of a calendar quarter.
func quarterBounds(year, quarter int) (time.Time, time.Time) {
	start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return start, end
}

// Generate computes the payload for one quarter and upserts the unique
// (workspace, year, quarter) row. The read-aggregate-then-ensure-risk-case
// sequence runs in a single transaction. Regeneration overwrites the payload
// and timestamp; the lock flag does not gate regeneration.
func (s *ReportService) Generate(ctx context.Context, workspaceID, generatedBy string, year, quarter int) (*dto.ReportResponse, error) {
	since, until := quarterBounds(year, quarter)

	var report *model.QuarterlyReport
	err := s.repo.Transaction(func(tx *repository.Repository) error {
		payload, topRiskEmployees, err := s.buildPayload(ctx, tx, workspaceID, since, until)
		if err != nil {
			return err
		}

		for _, employeeID := range topRiskEmployees {
			if _, _, err := ensureOpenRiskCase(ctx, tx, workspaceID, employeeID,
				riskReasonMonitorDecision, model.RiskLevelMedium, generatedBy); err != nil {
				return err
			}
		}

		report = &model.QuarterlyReport{
			WorkspaceID: workspaceID,
			Year:        year,
			Quarter:     quarter,
			Payload:     *payload,
			GeneratedAt: nowUTC(),
		}
		report.CreatedBy = &generatedBy
		return tx.Report.Upsert(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quarterly report generated",
		zap.String("workspace_id", workspaceID),
		zap.Int("year", year),
		zap.Int("quarter", quarter))

	// Re-read: upsert on an existing row keeps its id, lock flag and notes.
	stored, err := s.repo.Report.GetByQuarter(ctx, workspaceID, year, quarter)
	if err != nil {
		return nil, err
	}
	return toReportResponse(stored), nil
}

// buildPayload folds the quarter's rows into the typed report payload. It
// also returns the employee ids behind the top-risks list so the caller can
// ensure their risk cases in the same transaction.
func (s *ReportService) buildPayload(ctx context.Context, repo *repository.Repository, workspaceID string, since, until time.Time) (*model.ReportPayload, []string, error) {
	employees, err := repo.Employee.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}

	payload := &model.ReportPayload{
		Headcount:        len(employees),
		RoleDistribution: make([]model.RoleCount, 0),
	}
	for _, rc := range roleDistribution(employees) {
		payload.RoleDistribution = append(payload.RoleDistribution, model.RoleCount{
			Position: rc.Position,
			Count:    rc.Count,
		})
	}

	gap, err := computeSkillGap(ctx, repo, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	payload.SkillGap = model.SkillGapSummary{
		TotalCombos:      gap.TotalCombos,
		Satisfied:        gap.Satisfied,
		PercentSatisfied: gap.PercentSatisfied,
		MissingRatings:   gap.MissingRatings,
		WeightedAvgGap:   gap.WeightedAvgGap,
	}

	goals, err := repo.Goal.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	counts := goalCounts(goals)
	payload.Goals = model.GoalCounts{
		Active:    counts.Active,
		Completed: counts.Completed,
		Overdue:   counts.Overdue,
	}

	pilots, err := repo.Pilot.List(ctx, workspaceID, "")
	if err != nil {
		return nil, nil, err
	}
	payload.Pilots = make([]model.PilotSummary, 0, len(pilots))
	for i := range pilots {
		p := &pilots[i]
		summary := model.PilotSummary{
			PilotRunID:   p.PilotRunID,
			Name:         p.Name,
			Status:       p.Status,
			StepsTotal:   len(p.Steps),
			Participants: len(p.Participants),
		}
		for _, st := range p.Steps {
			if st.Status == model.PilotStepDone {
				summary.StepsDone++
			}
		}
		payload.Pilots = append(payload.Pilots, summary)
	}

	decisions, err := repo.Decision.List(ctx, workspaceID, &repository.DecisionListFilters{
		Since: &since,
		Until: &until,
	})
	if err != nil {
		return nil, nil, err
	}

	payload.Decisions = model.DecisionCounts{
		Total:    len(decisions),
		ByType:   make(map[string]int),
		ByStatus: make(map[string]int),
	}
	payload.TopRisks = make([]model.DecisionHighlight, 0)
	payload.TopWins = make([]model.DecisionHighlight, 0)

	var topRiskEmployees []string
	limit := s.cfg.Report.TopListSize

	// Decision rows arrive newest-first, so the first N matches are already
	// the most recent ones.
	for i := range decisions {
		d := &decisions[i]
		payload.Decisions.ByType[d.Type]++
		payload.Decisions.ByStatus[d.Status]++

		if isTopRisk(d) && len(payload.TopRisks) < limit {
			payload.TopRisks = append(payload.TopRisks, toHighlight(d))
			topRiskEmployees = append(topRiskEmployees, d.EmployeeID)
		}
		if isTopWin(d) && len(payload.TopWins) < limit {
			payload.TopWins = append(payload.TopWins, toHighlight(d))
		}
	}

	return payload, topRiskEmployees, nil
}

// isTopRisk: an unresolved monitor_risk decision.
func isTopRisk(d *model.TalentDecision) bool {
	return d.Type == model.DecisionMonitorRisk &&
		(d.Status == model.DecisionStatusProposed || d.Status == model.DecisionStatusApproved)
}

// isTopWin: an approved or implemented promote / role_change decision.
func isTopWin(d *model.TalentDecision) bool {
	if d.Type != model.DecisionPromote && d.Type != model.DecisionRoleChange {
		return false
	}
	return d.Status == model.DecisionStatusApproved || d.Status == model.DecisionStatusImplemented
}

func toHighlight(d *model.TalentDecision) model.DecisionHighlight {
	h := model.DecisionHighlight{
		DecisionID: d.DecisionID,
		EmployeeID: d.EmployeeID,
		Type:       d.Type,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
	if d.Employee != nil {
		h.EmployeeName = d.Employee.Name
	}
	return h
}

// Get returns one stored report.
func (s *ReportService) Get(ctx context.Context, workspaceID string, year, quarter int) (*dto.ReportResponse, error) {
	report, err := s.repo.Report.GetByQuarter(ctx, workspaceID, year, quarter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return toReportResponse(report), nil
}

// List returns the report index, newest first, without payload bodies.
func (s *ReportService) List(ctx context.Context, workspaceID string) ([]dto.ReportListItem, error) {
	reports, err := s.repo.Report.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportListItem, 0, len(reports))
	for i := range reports {
		out = append(out, dto.ReportListItem{
			ID:          reports[i].ReportID,
			Year:        reports[i].Year,
			Quarter:     reports[i].Quarter,
			Locked:      reports[i].IsLocked,
			GeneratedAt: fmtTime(reports[i].GeneratedAt),
		})
	}
	return out, nil
}

// SetLock toggles the lock flag. Locking only gates note edits.
func (s *ReportService) SetLock(ctx context.Context, workspaceID, updatedBy string, year, quarter int, locked bool) (*dto.ReportResponse, error) {
	report, err := s.repo.Report.GetByQuarter(ctx, workspaceID, year, quarter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	report.IsLocked = locked
	report.UpdatedBy = &updatedBy
	if err := s.repo.Report.Update(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// UpdateNotes edits the free-text notes of an unlocked report.
func (s *ReportService) UpdateNotes(ctx context.Context, workspaceID, updatedBy string, year, quarter int, notes string) (*dto.ReportResponse, error) {
	report, err := s.repo.Report.GetByQuarter(ctx, workspaceID, year, quarter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.IsLocked {
		return nil, ErrReportLocked
	}

	report.Notes = notes
	report.UpdatedBy = &updatedBy
	if err := s.repo.Report.Update(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// ExportXLSX renders a stored report as a workbook, one sheet per payload
// section.
func (s *ReportService) ExportXLSX(ctx context.Context, workspaceID string, year, quarter int) (*excelize.File, error) {
	report, err := s.repo.Report.GetByQuarter(ctx, workspaceID, year, quarter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	p := &report.Payload

	f := excelize.NewFile()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	summaryRows := [][]interface{}{
		{"Quarter", fmt.Sprintf("%d Q%d", report.Year, report.Quarter)},
		{"Generated at", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Headcount", p.Headcount},
		{"Skill combos", p.SkillGap.TotalCombos},
		{"Combos satisfied", p.SkillGap.Satisfied},
		{"Percent satisfied", p.SkillGap.PercentSatisfied},
		{"Missing ratings", p.SkillGap.MissingRatings},
		{"Weighted avg gap", p.SkillGap.WeightedAvgGap},
		{"Active goals", p.Goals.Active},
		{"Completed goals", p.Goals.Completed},
		{"Overdue goals", p.Goals.Overdue},
		{"Decisions total", p.Decisions.Total},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := writeSheet(f, "Roles", []interface{}{"Position", "Count"}, len(p.RoleDistribution), func(i int) []interface{} {
		return []interface{}{p.RoleDistribution[i].Position, p.RoleDistribution[i].Count}
	}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "Pilots", []interface{}{"Name", "Status", "Steps done", "Steps total", "Participants"}, len(p.Pilots), func(i int) []interface{} {
		pl := p.Pilots[i]
		return []interface{}{pl.Name, pl.Status, pl.StepsDone, pl.StepsTotal, pl.Participants}
	}); err != nil {
		return nil, err
	}

	highlightHeader := []interface{}{"Employee", "Type", "Status", "Created at"}
	highlightRow := func(list []model.DecisionHighlight) func(int) []interface{} {
		return func(i int) []interface{} {
			h := list[i]
			return []interface{}{h.EmployeeName, h.Type, h.Status, h.CreatedAt.UTC().Format(time.RFC3339)}
		}
	}
	if err := writeSheet(f, "Top Risks", highlightHeader, len(p.TopRisks), highlightRow(p.TopRisks)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Top Wins", highlightHeader, len(p.TopWins), highlightRow(p.TopWins)); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSheet(f *excelize.File, name string, header []interface{}, n int, row func(int) []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func toReportResponse(r *model.QuarterlyReport) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:          r.ReportID,
		Year:        r.Year,
		Quarter:     r.Quarter,
		Locked:      r.IsLocked,
		Notes:       r.Notes,
		GeneratedAt: fmtTime(r.GeneratedAt),
		Payload:     r.Payload,
	}
}
