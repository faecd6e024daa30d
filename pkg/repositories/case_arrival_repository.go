package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// CaseArrivalRepository provides data access for the case arrival row of
// a simulation model. The calendar and distribution are shared references.
type CaseArrivalRepository interface {
	// Create inserts a case arrival linking a model to a calendar and an
	// inter-arrival distribution.
	Create(ctx context.Context, modelID, calendarID, distributionID int64) (*models.CaseArrival, error)

	// Get returns the case arrival, or nil when absent.
	Get(ctx context.Context, id int64) (*models.CaseArrival, error)

	// GetByModel returns the case arrival of a model, or nil when the
	// model has none.
	GetByModel(ctx context.Context, modelID int64) (*models.CaseArrival, error)

	// Delete removes the case arrival. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every case arrival. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type caseArrivalRepository struct {
	db *database.DB
}

// NewCaseArrivalRepository creates a new CaseArrivalRepository.
func NewCaseArrivalRepository(db *database.DB) CaseArrivalRepository {
	return &caseArrivalRepository{db: db}
}

var _ CaseArrivalRepository = (*caseArrivalRepository)(nil)

func (r *caseArrivalRepository) Create(ctx context.Context, modelID, calendarID, distributionID int64) (*models.CaseArrival, error) {
	arrival := &models.CaseArrival{
		SimulationModelID:          modelID,
		CalendarID:                 calendarID,
		InterArrivalDistributionID: distributionID,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO case_arrival (simulation_model_id, calendar_id, inter_arrival_distribution_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		modelID, calendarID, distributionID,
	).Scan(&arrival.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create case arrival: %w", err)
	}
	return arrival, nil
}

func (r *caseArrivalRepository) Get(ctx context.Context, id int64) (*models.CaseArrival, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *caseArrivalRepository) GetByModel(ctx context.Context, modelID int64) (*models.CaseArrival, error) {
	return r.getBy(ctx, `WHERE simulation_model_id = $1`, modelID)
}

func (r *caseArrivalRepository) getBy(ctx context.Context, where string, arg any) (*models.CaseArrival, error) {
	arrival := &models.CaseArrival{}
	query := `SELECT id, simulation_model_id, calendar_id, inter_arrival_distribution_id FROM case_arrival ` + where
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&arrival.ID,
		&arrival.SimulationModelID,
		&arrival.CalendarID,
		&arrival.InterArrivalDistributionID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case arrival: %w", err)
	}
	return arrival, nil
}

func (r *caseArrivalRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM case_arrival WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete case arrival: %w", err)
	}
	return nil
}

func (r *caseArrivalRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM case_arrival`); err != nil {
		return fmt.Errorf("failed to delete case arrivals: %w", err)
	}
	return nil
}
