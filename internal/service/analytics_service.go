package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/redis"
)

// AnalyticsService computes the dashboard aggregates. Every computation is a
// sequence of workspace-scoped reads folded in memory; the first failing
// read aborts the whole aggregation.
type AnalyticsService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

func overviewCacheKey(workspaceID string) string {
	return fmt.Sprintf("overview:%s", workspaceID)
}

// WorkspaceOverview returns the dashboard aggregate, served from the redis
// cache when a fresh copy exists. The cache is TTL-only: writes do not
// invalidate it. Ranged queries bypass the cache.
func (s *AnalyticsService) WorkspaceOverview(ctx context.Context, workspaceID string, query *dto.OverviewQuery) (*dto.WorkspaceOverview, error) {
	var since, until *time.Time
	if query != nil {
		if query.Since != "" {
			since = parseDatePtr(&query.Since)
		}
		if query.Until != "" {
			if t := parseDatePtr(&query.Until); t != nil {
				end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
				until = &end
			}
		}
	}
	ranged := since != nil || until != nil

	if s.rdb != nil && !ranged {
		var cached dto.WorkspaceOverview
		err := s.rdb.GetJSON(ctx, overviewCacheKey(workspaceID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("overview cache read failed", zap.Error(err))
		}
	}

	overview, err := s.computeOverview(ctx, workspaceID, since, until)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && !ranged {
		if err := s.rdb.SetJSON(ctx, overviewCacheKey(workspaceID), overview, s.cfg.Report.OverviewCacheTTL); err != nil {
			s.logger.Warn("overview cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

// createdInRange reports whether ts falls inside the optional [since, until]
// window. Nil bounds are open.
func createdInRange(ts time.Time, since, until *time.Time) bool {
	if since != nil && ts.Before(*since) {
		return false
	}
	if until != nil && ts.After(*until) {
		return false
	}
	return true
}

func (s *AnalyticsService) computeOverview(ctx context.Context, workspaceID string, since, until *time.Time) (*dto.WorkspaceOverview, error) {
	employees, err := s.repo.Employee.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	overview := &dto.WorkspaceOverview{
		ActiveEmployees:  len(employees),
		RoleDistribution: roleDistribution(employees),
	}

	skillCount, err := s.repo.Skill.Count(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	overview.TrackedSkills = int(skillCount)

	gap, err := s.SkillGapOverview(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	overview.SkillGap = *gap

	ratings, err := s.repo.Rating.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	overview.AvgSkillLevel = avgEffectiveLevel(employees, ratings)

	goals, err := s.repo.Goal.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	inWindow := goals[:0:0]
	for i := range goals {
		if createdInRange(goals[i].CreatedAt, since, until) {
			inWindow = append(inWindow, goals[i])
		}
	}
	overview.Goals = goalCounts(inWindow)

	cases, err := s.repo.Risk.List(ctx, workspaceID, "")
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].Status != model.RiskStatusResolved {
			overview.OpenRiskCases++
		}
	}

	pilots, err := s.repo.Pilot.List(ctx, workspaceID, model.PilotStatusActive)
	if err != nil {
		return nil, err
	}
	overview.ActivePilots = len(pilots)

	pending, err := s.repo.Decision.List(ctx, workspaceID, &repository.DecisionListFilters{
		Status: model.DecisionStatusProposed,
	})
	if err != nil {
		return nil, err
	}
	overview.PendingDecisions = len(pending)

	rate, err := s.surveyResponseRate(ctx, workspaceID, since, until)
	if err != nil {
		return nil, err
	}
	overview.SurveyResponseRate = rate

	top, err := s.TopSkills(ctx, workspaceID, s.cfg.Report.TopListSize)
	if err != nil {
		return nil, err
	}
	overview.TopSkills = top

	return overview, nil
}

// SkillGapOverview aggregates requirement coverage. A combo is one (active
// employee, requirement of a role profile whose name matches the employee's
// position). percent_satisfied is 0 when there are no combos.
func (s *AnalyticsService) SkillGapOverview(ctx context.Context, workspaceID string) (*dto.SkillGapOverview, error) {
	return computeSkillGap(ctx, s.repo, workspaceID)
}

// computeSkillGap is shared with the quarterly report builder, which runs it
// against a transaction-bound repository.
func computeSkillGap(ctx context.Context, repo *repository.Repository, workspaceID string) (*dto.SkillGapOverview, error) {
	employees, err := repo.Employee.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	profiles, err := repo.RoleProfile.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	requirements, err := repo.RoleProfile.ListRequirements(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ratings, err := repo.Rating.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	reqsByRole := make(map[string][]model.RoleSkillRequirement)
	for _, r := range requirements {
		reqsByRole[r.RoleProfileID] = append(reqsByRole[r.RoleProfileID], r)
	}
	rolesByName := make(map[string][]string) // position name -> role profile ids
	for i := range profiles {
		rolesByName[profiles[i].Name] = append(rolesByName[profiles[i].Name], profiles[i].RoleProfileID)
	}
	levels := effectiveLevels(ratings)

	out := &dto.SkillGapOverview{}
	var weightedGapSum, weightSum float64

	for i := range employees {
		emp := &employees[i]
		for _, roleID := range rolesByName[emp.Position] {
			for _, req := range reqsByRole[roleID] {
				out.TotalCombos++
				actual, ok := levels[emp.EmployeeID][req.SkillCode]
				if !ok {
					out.MissingRatings++
					continue
				}
				if actual >= req.RequiredLevel {
					out.Satisfied++
				}
				weightedGapSum += float64(actual-req.RequiredLevel) * float64(req.Importance)
				weightSum += float64(req.Importance)
			}
		}
	}

	if out.TotalCombos > 0 {
		out.PercentSatisfied = float64(out.Satisfied) / float64(out.TotalCombos) * 100
	}
	if weightSum > 0 {
		out.WeightedAvgGap = weightedGapSum / weightSum
	}
	return out, nil
}

// EmployeeGaps lists, for one role, every active employee with at least one
// unmet requirement, sorted by descending total deficit.
func (s *AnalyticsService) EmployeeGaps(ctx context.Context, workspaceID, roleProfileID string) ([]dto.EmployeeGapsResponse, error) {
	profile, err := s.repo.RoleProfile.GetByID(ctx, workspaceID, roleProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleProfileNotFound
		}
		return nil, err
	}

	employees, err := s.repo.Employee.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.repo.Rating.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	skills, err := s.repo.Skill.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(skills))
	for i := range skills {
		names[skills[i].Code] = skills[i].Name
	}

	levels := effectiveLevels(ratings)

	type scored struct {
		resp    dto.EmployeeGapsResponse
		deficit int
	}
	var results []scored

	for i := range employees {
		emp := &employees[i]
		entry := dto.EmployeeGapsResponse{
			EmployeeID:    emp.EmployeeID,
			EmployeeName:  emp.Name,
			RoleProfileID: profile.RoleProfileID,
			RoleName:      profile.Name,
		}
		deficit := 0

		for _, req := range profile.Requirements {
			actual, ok := levels[emp.EmployeeID][req.SkillCode]
			if ok && actual >= req.RequiredLevel {
				continue
			}
			gap := dto.EmployeeGapEntry{
				SkillCode:     req.SkillCode,
				SkillName:     names[req.SkillCode],
				RequiredLevel: req.RequiredLevel,
				Gap:           -req.RequiredLevel,
				Importance:    req.Importance,
			}
			if ok {
				level := actual
				gap.ActualLevel = &level
				gap.Gap = actual - req.RequiredLevel
			}
			deficit += -gap.Gap
			entry.Gaps = append(entry.Gaps, gap)
		}

		if len(entry.Gaps) > 0 {
			results = append(results, scored{resp: entry, deficit: deficit})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].deficit != results[j].deficit {
			return results[i].deficit > results[j].deficit
		}
		return results[i].resp.EmployeeName < results[j].resp.EmployeeName
	})

	out := make([]dto.EmployeeGapsResponse, 0, len(results))
	for _, r := range results {
		out = append(out, r.resp)
	}
	return out, nil
}

// TopSkills returns at most limit skills sorted by descending average
// effective level across rated active employees. Ratings whose skill has
// been removed from the catalog are skipped.
func (s *AnalyticsService) TopSkills(ctx context.Context, workspaceID string, limit int) ([]dto.SkillLevelEntry, error) {
	skills, err := s.repo.Skill.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.repo.Rating.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(skills))
	for i := range skills {
		names[skills[i].Code] = skills[i].Name
	}
	levels := effectiveLevels(ratings)

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, skillLevels := range levels {
		for code, level := range skillLevels {
			if _, known := names[code]; !known {
				continue // orphan rating
			}
			sums[code] += level
			counts[code]++
		}
	}

	out := make([]dto.SkillLevelEntry, 0, len(sums))
	for code, sum := range sums {
		out = append(out, dto.SkillLevelEntry{
			SkillCode:  code,
			SkillName:  names[code],
			AvgLevel:   float64(sum) / float64(counts[code]),
			RatedCount: counts[code],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgLevel != out[j].AvgLevel {
			return out[i].AvgLevel > out[j].AvgLevel
		}
		return out[i].SkillCode < out[j].SkillCode
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AnalyticsService) surveyResponseRate(ctx context.Context, workspaceID string, since, until *time.Time) (float64, error) {
	surveys, err := s.repo.Survey.List(ctx, workspaceID)
	if err != nil {
		return 0, err
	}

	var invited, responded int64
	for i := range surveys {
		if !createdInRange(surveys[i].CreatedAt, since, until) {
			continue
		}
		invited += int64(surveys[i].InvitedCount)
		n, err := s.repo.Survey.CountResponses(ctx, workspaceID, surveys[i].SurveyID)
		if err != nil {
			return 0, err
		}
		responded += n
	}
	if invited == 0 {
		return 0, nil
	}
	return float64(responded) / float64(invited) * 100, nil
}

func roleDistribution(employees []model.Employee) []dto.RoleCountEntry {
	counts := make(map[string]int)
	for i := range employees {
		counts[employees[i].Position]++
	}

	out := make([]dto.RoleCountEntry, 0, len(counts))
	for position, count := range counts {
		out = append(out, dto.RoleCountEntry{Position: position, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func goalCounts(goals []model.DevelopmentGoal) dto.GoalCountsEntry {
	now := nowUTC()
	var counts dto.GoalCountsEntry
	for i := range goals {
		switch goals[i].Status {
		case model.GoalStatusActive:
			counts.Active++
			if goalOverdue(&goals[i], now) {
				counts.Overdue++
			}
		case model.GoalStatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// avgEffectiveLevel averages the effective levels of active employees.
func avgEffectiveLevel(employees []model.Employee, ratings []model.EmployeeSkillRating) float64 {
	active := make(map[string]bool, len(employees))
	for i := range employees {
		active[employees[i].EmployeeID] = true
	}

	levels := effectiveLevels(ratings)
	var sum, n int
	for empID, skillLevels := range levels {
		if !active[empID] {
			continue
		}
		for _, level := range skillLevels {
			sum += level
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
