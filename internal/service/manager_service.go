package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/config"
	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrNoLinkedEmployee = errors.New("member has no linked employee record")
	ErrNotTeamMember    = errors.New("employee is not a direct report")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrBadMeetingTime   = errors.New("starts_at must be an RFC3339 timestamp")
)

// meetingHorizon bounds the "upcoming meetings" panel and the ICS feed.
const meetingHorizon = 14 * 24 * time.Hour

// stalePilotStepAge marks an in_progress step as stuck.
const stalePilotStepAge = 14 * 24 * time.Hour

// ManagerService builds the manager landing view. A manager's team is the
// set of employees whose manager_id points at the manager's own employee
// record.
type ManagerService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewManagerService creates the manager service.
func NewManagerService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *ManagerService {
	return &ManagerService{cfg: cfg, repo: repo, logger: logger}
}

// managerEmployee resolves the caller's employee record.
func (s *ManagerService) managerEmployee(ctx context.Context, workspaceID, memberID string) (*model.Employee, error) {
	member, err := s.repo.Member.GetByID(ctx, workspaceID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.EmployeeID == nil {
		return nil, ErrNoLinkedEmployee
	}

	emp, err := s.repo.Employee.GetByID(ctx, workspaceID, *member.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoLinkedEmployee
		}
		return nil, err
	}
	return emp, nil
}

// HomeSummary builds the manager landing view: direct reports with their
// attention signals, upcoming meetings and a rule-derived action list.
func (s *ManagerService) HomeSummary(ctx context.Context, workspaceID, memberID string) (*dto.ManagerHomeSummary, error) {
	manager, err := s.managerEmployee(ctx, workspaceID, memberID)
	if err != nil {
		return nil, err
	}

	team, err := s.repo.Employee.ListByManager(ctx, workspaceID, manager.EmployeeID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(team))
	names := make(map[string]string, len(team))
	for i := range team {
		ids = append(ids, team[i].EmployeeID)
		names[team[i].EmployeeID] = team[i].Name
	}

	liveCases, err := s.repo.Risk.ListLiveByEmployees(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	goals, err := s.repo.Goal.ListByEmployees(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	participants, err := s.repo.Pilot.ListParticipantsByEmployees(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}

	now := nowUTC()

	risksByEmployee := make(map[string][]model.RiskCase)
	for _, rc := range liveCases {
		risksByEmployee[rc.EmployeeID] = append(risksByEmployee[rc.EmployeeID], rc)
	}
	activeGoals := make(map[string]int)
	overdueGoals := make(map[string]int)
	for i := range goals {
		if goals[i].Status == model.GoalStatusActive {
			activeGoals[goals[i].EmployeeID]++
		}
		if goalOverdue(&goals[i], now) {
			overdueGoals[goals[i].EmployeeID]++
		}
	}
	inPilot := make(map[string]bool)
	for _, p := range participants {
		inPilot[p.EmployeeID] = true
	}

	summary := &dto.ManagerHomeSummary{
		TeamSize:         len(team),
		Reports:          make([]dto.TeamMemberSummary, 0, len(team)),
		UpcomingMeetings: []dto.MeetingResponse{},
		Actions:          []dto.SuggestedAction{},
	}

	for i := range team {
		emp := &team[i]
		row := dto.TeamMemberSummary{
			EmployeeID:   emp.EmployeeID,
			Name:         emp.Name,
			Position:     emp.Position,
			ActiveGoals:  activeGoals[emp.EmployeeID],
			OverdueGoals: overdueGoals[emp.EmployeeID],
			OpenRisks:    len(risksByEmployee[emp.EmployeeID]),
			InPilot:      inPilot[emp.EmployeeID],
		}
		summary.Reports = append(summary.Reports, row)
		summary.OpenRiskCases += row.OpenRisks
		summary.OverdueGoals += row.OverdueGoals
	}

	meetings, err := s.repo.Meeting.ListUpcomingByManager(ctx, workspaceID, manager.EmployeeID, now.Add(meetingHorizon))
	if err != nil {
		return nil, err
	}
	for i := range meetings {
		summary.UpcomingMeetings = append(summary.UpcomingMeetings, toMeetingResponse(&meetings[i], names))
	}

	actions, err := s.buildActions(ctx, workspaceID, ids, names, risksByEmployee, overdueGoals, now)
	if err != nil {
		return nil, err
	}
	summary.Actions = actions

	return summary, nil
}

// buildActions applies the static priority rules. High outranks medium
// outranks low; within a band, team order is kept.
func (s *ManagerService) buildActions(ctx context.Context, workspaceID string, teamIDs []string, names map[string]string, risksByEmployee map[string][]model.RiskCase, overdueGoals map[string]int, now time.Time) ([]dto.SuggestedAction, error) {
	var high, medium, low []dto.SuggestedAction

	for _, id := range teamIDs {
		for _, rc := range risksByEmployee[id] {
			if rc.Level == model.RiskLevelHigh {
				high = append(high, dto.SuggestedAction{
					Kind:       "high",
					EmployeeID: id,
					Message:    fmt.Sprintf("schedule a 1:1 with %s: %s", names[id], rc.Reason),
				})
			}
		}
		if n := overdueGoals[id]; n > 0 {
			high = append(high, dto.SuggestedAction{
				Kind:       "high",
				EmployeeID: id,
				Message:    fmt.Sprintf("review %d overdue goals for %s", n, names[id]),
			})
		}
	}

	team := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		team[id] = true
	}

	pending, err := s.repo.Decision.List(ctx, workspaceID, &repository.DecisionListFilters{
		Status: model.DecisionStatusProposed,
	})
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if team[pending[i].EmployeeID] {
			medium = append(medium, dto.SuggestedAction{
				Kind:       "medium",
				EmployeeID: pending[i].EmployeeID,
				Message:    fmt.Sprintf("%s decision for %s awaits approval", pending[i].Type, names[pending[i].EmployeeID]),
			})
		}
	}

	pilots, err := s.repo.Pilot.List(ctx, workspaceID, model.PilotStatusActive)
	if err != nil {
		return nil, err
	}
	for i := range pilots {
		p := &pilots[i]
		touchesTeam := false
		for _, part := range p.Participants {
			if team[part.EmployeeID] {
				touchesTeam = true
				break
			}
		}
		if !touchesTeam {
			continue
		}
		for _, st := range p.Steps {
			if st.Status == model.PilotStepInProgress && st.StartedAt != nil && now.Sub(*st.StartedAt) > stalePilotStepAge {
				medium = append(medium, dto.SuggestedAction{
					Kind:    "medium",
					Message: fmt.Sprintf("pilot %q step %q has been in progress for over two weeks", p.Name, st.Title),
				})
			}
		}
	}

	surveys, err := s.repo.Survey.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	for i := range surveys {
		if surveys[i].Status == model.SurveyStatusOpen {
			low = append(low, dto.SuggestedAction{
				Kind:    "low",
				Message: fmt.Sprintf("remind your team to answer %q", surveys[i].Title),
			})
			break
		}
	}

	actions := make([]dto.SuggestedAction, 0, len(high)+len(medium)+len(low))
	actions = append(actions, high...)
	actions = append(actions, medium...)
	actions = append(actions, low...)
	return actions, nil
}

// ── meetings ──

// ScheduleMeeting books a one-on-one with a direct report.
func (s *ManagerService) ScheduleMeeting(ctx context.Context, workspaceID, memberID string, req *dto.ScheduleMeetingRequest) (*dto.MeetingResponse, error) {
	manager, err := s.managerEmployee(ctx, workspaceID, memberID)
	if err != nil {
		return nil, err
	}

	emp, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if emp.ManagerID == nil || *emp.ManagerID != manager.EmployeeID {
		return nil, ErrNotTeamMember
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrBadMeetingTime
	}

	duration := req.DurationMin
	if duration == 0 {
		duration = 30
	}

	meeting := &model.Meeting{
		WorkspaceID: workspaceID,
		ManagerID:   manager.EmployeeID,
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		StartsAt:    startsAt.UTC(),
		DurationMin: duration,
	}
	meeting.CreatedBy = &memberID

	if err := s.repo.Meeting.Create(ctx, meeting); err != nil {
		return nil, err
	}

	resp := toMeetingResponse(meeting, map[string]string{emp.EmployeeID: emp.Name})
	return &resp, nil
}

// CancelMeeting removes a scheduled one-on-one.
func (s *ManagerService) CancelMeeting(ctx context.Context, workspaceID, memberID, meetingID string) error {
	manager, err := s.managerEmployee(ctx, workspaceID, memberID)
	if err != nil {
		return err
	}

	meeting, err := s.repo.Meeting.GetByID(ctx, workspaceID, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	if meeting.ManagerID != manager.EmployeeID {
		return ErrMeetingNotFound
	}

	return s.repo.Meeting.Delete(ctx, workspaceID, meetingID)
}

// MeetingsICS renders the caller's upcoming meetings as an iCalendar feed.
func (s *ManagerService) MeetingsICS(ctx context.Context, workspaceID, memberID string) (string, error) {
	manager, err := s.managerEmployee(ctx, workspaceID, memberID)
	if err != nil {
		return "", err
	}

	meetings, err := s.repo.Meeting.ListUpcomingByManager(ctx, workspaceID, manager.EmployeeID, nowUTC().Add(meetingHorizon))
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//quadrant//one-on-ones//EN")

	for i := range meetings {
		m := &meetings[i]
		event := cal.AddEvent(m.MeetingID)
		event.SetCreatedTime(m.CreatedAt)
		event.SetStartAt(m.StartsAt)
		event.SetEndAt(m.StartsAt.Add(time.Duration(m.DurationMin) * time.Minute))
		event.SetSummary(m.Title)
		if m.Employee != nil {
			event.SetDescription(fmt.Sprintf("1:1 with %s", m.Employee.Name))
		}
	}

	return cal.Serialize(), nil
}

func toMeetingResponse(m *model.Meeting, names map[string]string) dto.MeetingResponse {
	resp := dto.MeetingResponse{
		ID:          m.MeetingID,
		EmployeeID:  m.EmployeeID,
		Title:       m.Title,
		StartsAt:    fmtTime(m.StartsAt),
		DurationMin: m.DurationMin,
	}
	if m.Employee != nil {
		resp.EmployeeName = m.Employee.Name
	} else if name, ok := names[m.EmployeeID]; ok {
		resp.EmployeeName = name
	}
	return resp
}
