package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inverness4444/quadrant-landing-sub000/internal/model"
)

// PilotRepository is the pilot-run data-access interface, covering the run
// itself plus its steps, participants and notes.
type PilotRepository interface {
	Create(ctx context.Context, p *model.PilotRun) error
	GetByID(ctx context.Context, workspaceID, id string) (*model.PilotRun, error)
	List(ctx context.Context, workspaceID, status string) ([]model.PilotRun, error)
	Update(ctx context.Context, p *model.PilotRun) error
	Delete(ctx context.Context, workspaceID, id, deletedBy string) error

	CreateSteps(ctx context.Context, steps []model.PilotRunStep) error
	GetStep(ctx context.Context, workspaceID, stepID string) (*model.PilotRunStep, error)
	UpdateStep(ctx context.Context, step *model.PilotRunStep) error

	AddParticipant(ctx context.Context, p *model.PilotRunParticipant) error
	RemoveParticipant(ctx context.Context, workspaceID, pilotRunID, employeeID string) error
	ListParticipants(ctx context.Context, workspaceID, pilotRunID string) ([]model.PilotRunParticipant, error)
	ListParticipantsByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.PilotRunParticipant, error)

	AddNote(ctx context.Context, n *model.PilotRunNote) error
}

type pilotRepo struct {
	db *gorm.DB
}

// NewPilotRepo creates the GORM-backed PilotRepository.
func NewPilotRepo(db *gorm.DB) PilotRepository {
	return &pilotRepo{db: db}
}

func (r *pilotRepo) Create(ctx context.Context, p *model.PilotRun) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pilotRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.PilotRun, error) {
	var p model.PilotRun
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Participants.Employee").
		Preload("Notes").
		Where("workspace_id = ? AND pilot_run_id = ?", workspaceID, id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pilotRepo) List(ctx context.Context, workspaceID, status string) ([]model.PilotRun, error) {
	var pilots []model.PilotRun
	db := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Participants").
		Where("workspace_id = ?", workspaceID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at DESC").Find(&pilots).Error
	return pilots, err
}

func (r *pilotRepo) Update(ctx context.Context, p *model.PilotRun) error {
	return r.db.WithContext(ctx).Omit("Steps", "Participants", "Notes").Save(p).Error
}

func (r *pilotRepo) Delete(ctx context.Context, workspaceID, id, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.PilotRun{}).
		Where("workspace_id = ? AND pilot_run_id = ?", workspaceID, id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *pilotRepo) CreateSteps(ctx context.Context, steps []model.PilotRunStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

func (r *pilotRepo) GetStep(ctx context.Context, workspaceID, stepID string) (*model.PilotRunStep, error) {
	var step model.PilotRunStep
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND step_id = ?", workspaceID, stepID).
		First(&step).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *pilotRepo) UpdateStep(ctx context.Context, step *model.PilotRunStep) error {
	return r.db.WithContext(ctx).Save(step).Error
}

func (r *pilotRepo) AddParticipant(ctx context.Context, p *model.PilotRunParticipant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pilotRepo) RemoveParticipant(ctx context.Context, workspaceID, pilotRunID, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ? AND pilot_run_id = ? AND employee_id = ?", workspaceID, pilotRunID, employeeID).
		Delete(&model.PilotRunParticipant{}).Error
}

func (r *pilotRepo) ListParticipants(ctx context.Context, workspaceID, pilotRunID string) ([]model.PilotRunParticipant, error) {
	var participants []model.PilotRunParticipant
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("workspace_id = ? AND pilot_run_id = ?", workspaceID, pilotRunID).
		Find(&participants).Error
	return participants, err
}

func (r *pilotRepo) ListParticipantsByEmployees(ctx context.Context, workspaceID string, employeeIDs []string) ([]model.PilotRunParticipant, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var participants []model.PilotRunParticipant
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND employee_id IN ?", workspaceID, employeeIDs).
		Find(&participants).Error
	return participants, err
}

func (r *pilotRepo) AddNote(ctx context.Context, n *model.PilotRunNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}
