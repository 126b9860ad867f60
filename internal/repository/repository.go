package repository

import (
	"context"

	"gorm.io/gorm"

	pkgerrors "github.com/inverness4444/quadrant-landing-sub000/pkg/errors"
)

// Repository aggregates all data-access interfaces. Services receive this
// struct instead of a shared DB handle.
type Repository struct {
	Workspace   WorkspaceRepository
	Member      MemberRepository
	Employee    EmployeeRepository
	Skill       SkillRepository
	Rating      RatingRepository
	RoleProfile RoleProfileRepository
	Goal        GoalRepository
	Pilot       PilotRepository
	Decision    DecisionRepository
	Risk        RiskRepository
	Report      ReportRepository
	Survey      SurveyRepository
	Meeting     MeetingRepository
	Onboarding  OnboardingRepository

	db *gorm.DB
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Workspace:   NewWorkspaceRepo(db),
		Member:      NewMemberRepo(db),
		Employee:    NewEmployeeRepo(db),
		Skill:       NewSkillRepo(db),
		Rating:      NewRatingRepo(db),
		RoleProfile: NewRoleProfileRepo(db),
		Goal:        NewGoalRepo(db),
		Pilot:       NewPilotRepo(db),
		Decision:    NewDecisionRepo(db),
		Risk:        NewRiskRepo(db),
		Report:      NewReportRepo(db),
		Survey:      NewSurveyRepo(db),
		Meeting:     NewMeetingRepo(db),
		Onboarding:  NewOnboardingRepo(db),
		db:          db,
	}
}

// saveVersioned writes every column of a versioned row, guarded by the
// version the caller read. A zero rows-affected result means another
// operation won the race.
func saveVersioned(ctx context.Context, db *gorm.DB, row interface{}, idColumn, id string, readVersion int) error {
	res := db.WithContext(ctx).
		Model(row).
		Where(idColumn+" = ? AND version = ?", id, readVersion).
		Select("*").
		Omit("created_at", "created_by").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

// Transaction runs fn against a Repository bound to a database transaction.
// The report generator uses it to keep the aggregate-then-ensure-risk-case
// sequence atomic. Repositories built from mocks (db == nil) run fn directly,
// which keeps service tests transaction-free.
func (r *Repository) Transaction(fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
