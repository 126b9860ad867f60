package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/redis"
)

// Service aggregates every business service. Handlers receive this struct.
type Service struct {
	Auth        *AuthService
	Workspace   *WorkspaceService
	Employee    *EmployeeService
	Skill       *SkillService
	RoleProfile *RoleProfileService
	Goal        *GoalService
	Pilot       *PilotService
	Decision    *DecisionService
	Risk        *RiskService
	Analytics   *AnalyticsService
	Report      *ReportService
	Manager     *ManagerService
	Survey      *SurveyService
}

// NewService wires every service. rdb may be nil: redis-backed features
// (token blacklist, overview cache) degrade to no-ops.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	analytics := NewAnalyticsService(cfg, repo, rdb, logger)
	risk := NewRiskService(repo, logger)

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, logger),
		Workspace:   NewWorkspaceService(repo, logger),
		Employee:    NewEmployeeService(repo, logger),
		Skill:       NewSkillService(repo, logger),
		RoleProfile: NewRoleProfileService(repo, logger),
		Goal:        NewGoalService(repo, logger),
		Pilot:       NewPilotService(repo, logger),
		Decision:    NewDecisionService(repo, logger),
		Risk:        risk,
		Analytics:   analytics,
		Report:      NewReportService(cfg, repo, logger),
		Manager:     NewManagerService(cfg, repo, logger),
		Survey:      NewSurveyService(repo, logger),
	}
}

// ── shared formatting helpers ──

const dateLayout = "2006-01-02"

func nowUTC() time.Time {
	return time.Now().UTC()
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtTime(*t)
}

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDatePtr parses an optional YYYY-MM-DD string. Empty and nil inputs
// return nil without error; binding has already validated the format.
func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
