package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
	"github.com/inverness4444/quadrant-landing-sub000/internal/repository"
)

var (
	ErrPilotNotFound         = errors.New("pilot run not found")
	ErrPilotStepNotFound     = errors.New("pilot step not found")
	ErrInvalidStepTransition = errors.New("invalid pilot step transition")
	ErrParticipantExists     = errors.New("employee already participates in this pilot")
)

// pilotStepTransitions is the step state machine. done and skipped are
// terminal.
var pilotStepTransitions = map[string][]string{
	model.PilotStepPending:    {model.PilotStepInProgress, model.PilotStepSkipped},
	model.PilotStepInProgress: {model.PilotStepDone, model.PilotStepSkipped},
}

// PilotService handles pilot runs, their steps, participants and notes.
type PilotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPilotService creates the pilot service.
func NewPilotService(repo *repository.Repository, logger *zap.Logger) *PilotService {
	return &PilotService{repo: repo, logger: logger}
}

// Create adds a pilot run with its ordered steps.
func (s *PilotService) Create(ctx context.Context, workspaceID, createdBy string, req *dto.CreatePilotRequest) (*dto.PilotResponse, error) {
	pilot := &model.PilotRun{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Hypothesis:  req.Hypothesis,
		Status:      model.PilotStatusDraft,
		StartsAt:    parseDatePtr(req.StartsAt),
		EndsAt:      parseDatePtr(req.EndsAt),
	}
	pilot.CreatedBy = &createdBy
	for i, title := range req.StepTitles {
		pilot.Steps = append(pilot.Steps, model.PilotRunStep{
			WorkspaceID: workspaceID,
			Position:    i + 1,
			Title:       title,
			Status:      model.PilotStepPending,
		})
	}

	if err := s.repo.Pilot.Create(ctx, pilot); err != nil {
		return nil, err
	}
	return toPilotResponse(pilot), nil
}

// Get returns one pilot with steps, participants and notes.
func (s *PilotService) Get(ctx context.Context, workspaceID, id string) (*dto.PilotResponse, error) {
	pilot, err := s.repo.Pilot.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPilotNotFound
		}
		return nil, err
	}
	return toPilotResponse(pilot), nil
}

// List returns pilots, optionally limited to one status.
func (s *PilotService) List(ctx context.Context, workspaceID, status string) ([]dto.PilotResponse, error) {
	pilots, err := s.repo.Pilot.List(ctx, workspaceID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PilotResponse, 0, len(pilots))
	for i := range pilots {
		out = append(out, *toPilotResponse(&pilots[i]))
	}
	return out, nil
}

// Update patches a pilot run. Status changes here cover the run itself
// (draft/active/completed/cancelled); steps have their own state machine.
func (s *PilotService) Update(ctx context.Context, workspaceID, id, updatedBy string, req *dto.UpdatePilotRequest) (*dto.PilotResponse, error) {
	pilot, err := s.repo.Pilot.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPilotNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		pilot.Name = *req.Name
	}
	if req.Hypothesis != nil {
		pilot.Hypothesis = *req.Hypothesis
	}
	if req.Status != nil {
		pilot.Status = *req.Status
	}
	if req.StartsAt != nil {
		pilot.StartsAt = parseDatePtr(req.StartsAt)
	}
	if req.EndsAt != nil {
		pilot.EndsAt = parseDatePtr(req.EndsAt)
	}
	pilot.UpdatedBy = &updatedBy

	if err := s.repo.Pilot.Update(ctx, pilot); err != nil {
		return nil, err
	}
	return toPilotResponse(pilot), nil
}

// Delete soft-deletes a pilot run.
func (s *PilotService) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	if _, err := s.repo.Pilot.GetByID(ctx, workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPilotNotFound
		}
		return err
	}
	return s.repo.Pilot.Delete(ctx, workspaceID, id, deletedBy)
}

// UpdateStep moves a step through pending → in_progress → done | skipped.
func (s *PilotService) UpdateStep(ctx context.Context, workspaceID, pilotID, stepID, updatedBy string, req *dto.UpdatePilotStepRequest) (*dto.PilotStepResponse, error) {
	step, err := s.repo.Pilot.GetStep(ctx, workspaceID, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPilotStepNotFound
		}
		return nil, err
	}
	if step.PilotRunID != pilotID {
		return nil, ErrPilotStepNotFound
	}

	if !stepTransitionAllowed(step.Status, req.Status) {
		return nil, ErrInvalidStepTransition
	}

	now := nowUTC()
	step.Status = req.Status
	switch req.Status {
	case model.PilotStepInProgress:
		step.StartedAt = &now
	case model.PilotStepDone, model.PilotStepSkipped:
		step.FinishedAt = &now
	}
	step.UpdatedBy = &updatedBy

	if err := s.repo.Pilot.UpdateStep(ctx, step); err != nil {
		return nil, err
	}

	resp := toPilotStepResponse(step)
	return &resp, nil
}

// AddParticipant links an employee into a pilot.
func (s *PilotService) AddParticipant(ctx context.Context, workspaceID, pilotID, addedBy string, req *dto.AddParticipantRequest) error {
	if _, err := s.repo.Pilot.GetByID(ctx, workspaceID, pilotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPilotNotFound
		}
		return err
	}
	if _, err := s.repo.Employee.GetByID(ctx, workspaceID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	existing, err := s.repo.Pilot.ListParticipants(ctx, workspaceID, pilotID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].EmployeeID == req.EmployeeID {
			return ErrParticipantExists
		}
	}

	participant := &model.PilotRunParticipant{
		WorkspaceID: workspaceID,
		PilotRunID:  pilotID,
		EmployeeID:  req.EmployeeID,
	}
	participant.CreatedBy = &addedBy

	return s.repo.Pilot.AddParticipant(ctx, participant)
}

// RemoveParticipant unlinks an employee from a pilot.
func (s *PilotService) RemoveParticipant(ctx context.Context, workspaceID, pilotID, employeeID string) error {
	if _, err := s.repo.Pilot.GetByID(ctx, workspaceID, pilotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPilotNotFound
		}
		return err
	}
	return s.repo.Pilot.RemoveParticipant(ctx, workspaceID, pilotID, employeeID)
}

// AddNote attaches an observation to a pilot.
func (s *PilotService) AddNote(ctx context.Context, workspaceID, pilotID, authorID string, req *dto.AddPilotNoteRequest) (*dto.PilotNoteResponse, error) {
	if _, err := s.repo.Pilot.GetByID(ctx, workspaceID, pilotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPilotNotFound
		}
		return nil, err
	}

	note := &model.PilotRunNote{
		WorkspaceID: workspaceID,
		PilotRunID:  pilotID,
		AuthorID:    authorID,
		Body:        req.Body,
	}
	note.CreatedBy = &authorID

	if err := s.repo.Pilot.AddNote(ctx, note); err != nil {
		return nil, err
	}

	return &dto.PilotNoteResponse{
		ID:        note.NoteID,
		AuthorID:  note.AuthorID,
		Body:      note.Body,
		CreatedAt: fmtTime(note.CreatedAt),
	}, nil
}

func stepTransitionAllowed(from, to string) bool {
	for _, next := range pilotStepTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toPilotStepResponse(st *model.PilotRunStep) dto.PilotStepResponse {
	return dto.PilotStepResponse{
		ID:         st.StepID,
		Position:   st.Position,
		Title:      st.Title,
		Status:     st.Status,
		StartedAt:  fmtTimePtr(st.StartedAt),
		FinishedAt: fmtTimePtr(st.FinishedAt),
	}
}

func toPilotResponse(p *model.PilotRun) *dto.PilotResponse {
	resp := &dto.PilotResponse{
		ID:           p.PilotRunID,
		Name:         p.Name,
		Hypothesis:   p.Hypothesis,
		Status:       p.Status,
		StartsAt:     fmtDatePtr(p.StartsAt),
		EndsAt:       fmtDatePtr(p.EndsAt),
		Steps:        make([]dto.PilotStepResponse, 0, len(p.Steps)),
		Participants: make([]dto.PilotParticipantResponse, 0, len(p.Participants)),
	}
	for i := range p.Steps {
		resp.Steps = append(resp.Steps, toPilotStepResponse(&p.Steps[i]))
	}
	for i := range p.Participants {
		pp := dto.PilotParticipantResponse{EmployeeID: p.Participants[i].EmployeeID}
		if p.Participants[i].Employee != nil {
			pp.EmployeeName = p.Participants[i].Employee.Name
		}
		resp.Participants = append(resp.Participants, pp)
	}
	for i := range p.Notes {
		resp.Notes = append(resp.Notes, dto.PilotNoteResponse{
			ID:        p.Notes[i].NoteID,
			AuthorID:  p.Notes[i].AuthorID,
			Body:      p.Notes[i].Body,
			CreatedAt: fmtTime(p.Notes[i].CreatedAt),
		})
	}
	return resp
}
