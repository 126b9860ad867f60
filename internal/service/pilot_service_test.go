package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/inverness4444/quadrant-landing-sub000/internal/dto"
	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

func createPilot(t *testing.T, svc *PilotService, ws string, titles ...string) *dto.PilotResponse {
	t.Helper()
	pilot, err := svc.Create(context.Background(), ws, "mem-1", &dto.CreatePilotRequest{
		Name:       "async standups",
		Hypothesis: "written standups free one meeting slot per day",
		StepTitles: titles,
	})
	if err != nil {
		t.Fatalf("create pilot: %v", err)
	}
	return pilot
}

func TestPilotCreateWithSteps(t *testing.T) {
	repo := newTestRepo()
	svc := NewPilotService(repo, zap.NewNop())

	ws := newID()
	pilot := createPilot(t, svc, ws, "pick the team", "run two weeks", "collect feedback")

	if pilot.Status != model.PilotStatusDraft {
		t.Fatalf("status = %q, want draft", pilot.Status)
	}
	if len(pilot.Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(pilot.Steps))
	}
	for i, st := range pilot.Steps {
		if st.Position != i+1 {
			t.Fatalf("step %d position = %d", i, st.Position)
		}
		if st.Status != model.PilotStepPending {
			t.Fatalf("step %d status = %q, want pending", i, st.Status)
		}
	}

	// The stored copy keeps the ordered steps.
	stored, err := svc.Get(context.Background(), ws, pilot.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Steps) != 3 || stored.Steps[0].Title != "pick the team" {
		t.Fatalf("stored steps = %+v", stored.Steps)
	}
}

func TestPilotStepTransitions(t *testing.T) {
	repo := newTestRepo()
	svc := NewPilotService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	pilot := createPilot(t, svc, ws, "first", "second")
	step := pilot.Steps[0].ID

	// pending -> done skips in_progress and is rejected
	if _, err := svc.UpdateStep(ctx, ws, pilot.ID, step, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepDone,
	}); !errors.Is(err, ErrInvalidStepTransition) {
		t.Fatalf("pending -> done: err = %v, want ErrInvalidStepTransition", err)
	}

	started, err := svc.UpdateStep(ctx, ws, pilot.ID, step, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepInProgress,
	})
	if err != nil {
		t.Fatalf("start step: %v", err)
	}
	if started.StartedAt == "" {
		t.Fatal("starting a step must stamp started_at")
	}

	finished, err := svc.UpdateStep(ctx, ws, pilot.ID, step, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepDone,
	})
	if err != nil {
		t.Fatalf("finish step: %v", err)
	}
	if finished.FinishedAt == "" {
		t.Fatal("finishing a step must stamp finished_at")
	}

	// done is terminal
	if _, err := svc.UpdateStep(ctx, ws, pilot.ID, step, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepInProgress,
	}); !errors.Is(err, ErrInvalidStepTransition) {
		t.Fatalf("done -> in_progress: err = %v, want ErrInvalidStepTransition", err)
	}

	// pending -> skipped is allowed
	skipped, err := svc.UpdateStep(ctx, ws, pilot.ID, pilot.Steps[1].ID, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepSkipped,
	})
	if err != nil {
		t.Fatalf("skip step: %v", err)
	}
	if skipped.Status != model.PilotStepSkipped {
		t.Fatalf("step status = %q, want skipped", skipped.Status)
	}

	// a step id from another pilot does not resolve under this one
	other := createPilot(t, svc, ws, "elsewhere")
	if _, err := svc.UpdateStep(ctx, ws, pilot.ID, other.Steps[0].ID, "mem-1", &dto.UpdatePilotStepRequest{
		Status: model.PilotStepInProgress,
	}); !errors.Is(err, ErrPilotStepNotFound) {
		t.Fatalf("foreign step: err = %v, want ErrPilotStepNotFound", err)
	}
}

func TestPilotParticipants(t *testing.T) {
	repo := newTestRepo()
	svc := NewPilotService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	pilot := createPilot(t, svc, ws, "only step")
	emp := seedEmployee(t, repo, ws, "Ada", "Backend Engineer")

	if err := svc.AddParticipant(ctx, ws, pilot.ID, "mem-1", &dto.AddParticipantRequest{
		EmployeeID: emp.EmployeeID,
	}); err != nil {
		t.Fatalf("add participant: %v", err)
	}

	joined, err := svc.Get(ctx, ws, pilot.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(joined.Participants) != 1 || joined.Participants[0].EmployeeID != emp.EmployeeID {
		t.Fatalf("participants = %+v", joined.Participants)
	}

	if err := svc.AddParticipant(ctx, ws, pilot.ID, "mem-1", &dto.AddParticipantRequest{
		EmployeeID: emp.EmployeeID,
	}); !errors.Is(err, ErrParticipantExists) {
		t.Fatalf("duplicate participant: err = %v, want ErrParticipantExists", err)
	}

	if err := svc.AddParticipant(ctx, ws, pilot.ID, "mem-1", &dto.AddParticipantRequest{
		EmployeeID: newID(),
	}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("unknown employee: err = %v, want ErrEmployeeNotFound", err)
	}

	if err := svc.RemoveParticipant(ctx, ws, pilot.ID, emp.EmployeeID); err != nil {
		t.Fatalf("remove participant: %v", err)
	}
	left, err := svc.Get(ctx, ws, pilot.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(left.Participants) != 0 {
		t.Fatalf("got %d participants after removal", len(left.Participants))
	}
}

func TestPilotNotes(t *testing.T) {
	repo := newTestRepo()
	svc := NewPilotService(repo, zap.NewNop())
	ctx := context.Background()
	ws := newID()

	pilot := createPilot(t, svc, ws, "only step")

	note, err := svc.AddNote(ctx, ws, pilot.ID, "mem-1", &dto.AddPilotNoteRequest{
		Body: "week one retro went well",
	})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if note.Body != "week one retro went well" || note.AuthorID != "mem-1" {
		t.Fatalf("note = %+v", note)
	}

	withNotes, err := svc.Get(ctx, ws, pilot.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(withNotes.Notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(withNotes.Notes))
	}

	if _, err := svc.AddNote(ctx, ws, newID(), "mem-1", &dto.AddPilotNoteRequest{Body: "x"}); !errors.Is(err, ErrPilotNotFound) {
		t.Fatalf("unknown pilot: err = %v, want ErrPilotNotFound", err)
	}
}
