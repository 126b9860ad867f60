package handler

import "github.com/inverness4444/quadrant-landing-sub000/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Workspace   *WorkspaceHandler
	Employee    *EmployeeHandler
	Skill       *SkillHandler
	RoleProfile *RoleProfileHandler
	Goal        *GoalHandler
	Pilot       *PilotHandler
	Decision    *DecisionHandler
	Risk        *RiskHandler
	Analytics   *AnalyticsHandler
	Report      *ReportHandler
	Manager     *ManagerHandler
	Survey      *SurveyHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Workspace:   NewWorkspaceHandler(svc.Workspace),
		Employee:    NewEmployeeHandler(svc.Employee),
		Skill:       NewSkillHandler(svc.Skill),
		RoleProfile: NewRoleProfileHandler(svc.RoleProfile),
		Goal:        NewGoalHandler(svc.Goal),
		Pilot:       NewPilotHandler(svc.Pilot),
		Decision:    NewDecisionHandler(svc.Decision),
		Risk:        NewRiskHandler(svc.Risk),
		Analytics:   NewAnalyticsHandler(svc.Analytics),
		Report:      NewReportHandler(svc.Report),
		Manager:     NewManagerHandler(svc.Manager),
		Survey:      NewSurveyHandler(svc.Survey),
	}
}
