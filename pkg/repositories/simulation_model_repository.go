package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// SimulationModelRepository provides data access for the aggregate root.
// Get returns the full aggregate: profiles with resources and their
// assignments, gateways with flows, and the case arrival.
type SimulationModelRepository interface {
	// Create inserts an empty simulation model.
	Create(ctx context.Context) (*models.SimulationModel, error)

	// Get returns the fully loaded aggregate, or nil when absent.
	Get(ctx context.Context, id int64) (*models.SimulationModel, error)

	// List returns the ids of all simulation models.
	List(ctx context.Context) ([]int64, error)

	// Delete removes the model and everything it owns. Referenced
	// calendars and distributions are left in place. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every model. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type simulationModelRepository struct {
	db       *database.DB
	profiles ResourceProfileRepository
	arrivals CaseArrivalRepository
}

// NewSimulationModelRepository creates a new SimulationModelRepository.
func NewSimulationModelRepository(db *database.DB) SimulationModelRepository {
	return &simulationModelRepository{
		db:       db,
		profiles: NewResourceProfileRepository(db),
		arrivals: NewCaseArrivalRepository(db),
	}
}

var _ SimulationModelRepository = (*simulationModelRepository)(nil)

func (r *simulationModelRepository) Create(ctx context.Context) (*models.SimulationModel, error) {
	model := &models.SimulationModel{}
	err := r.db.QueryRow(ctx, `INSERT INTO simulation_model DEFAULT VALUES RETURNING id`).Scan(&model.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation model: %w", err)
	}
	return model, nil
}

func (r *simulationModelRepository) Get(ctx context.Context, id int64) (*models.SimulationModel, error) {
	model := &models.SimulationModel{}
	err := r.db.QueryRow(ctx, `SELECT id FROM simulation_model WHERE id = $1`, id).Scan(&model.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation model: %w", err)
	}

	profiles, err := r.profiles.GetByModel(ctx, id)
	if err != nil {
		return nil, err
	}
	model.ResourceProfiles = profiles

	gateways, err := r.gatewaysForModel(ctx, id)
	if err != nil {
		return nil, err
	}
	model.Gateways = gateways

	arrival, err := r.arrivals.GetByModel(ctx, id)
	if err != nil {
		return nil, err
	}
	model.CaseArrival = arrival

	return model, nil
}

func (r *simulationModelRepository) gatewaysForModel(ctx context.Context, modelID int64) ([]models.Gateway, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, simulation_model_id, bpmn_id
		FROM gateway
		WHERE simulation_model_id = $1
		ORDER BY id`, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gateways: %w", err)
	}
	defer rows.Close()

	var gateways []models.Gateway
	for rows.Next() {
		var gateway models.Gateway
		if err := rows.Scan(&gateway.ID, &gateway.SimulationModelID, &gateway.BpmnID); err != nil {
			return nil, fmt.Errorf("failed to scan gateway: %w", err)
		}
		gateways = append(gateways, gateway)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gateways: %w", err)
	}

	for i := range gateways {
		flowRows, err := r.db.Query(ctx, `
			SELECT id, source_gateway_id, bpmn_id, probability
			FROM sequence_flow
			WHERE source_gateway_id = $1
			ORDER BY id`, gateways[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get sequence flows: %w", err)
		}
		for flowRows.Next() {
			var flow models.SequenceFlow
			if err := flowRows.Scan(&flow.ID, &flow.SourceGatewayID, &flow.BpmnID, &flow.Probability); err != nil {
				flowRows.Close()
				return nil, fmt.Errorf("failed to scan sequence flow: %w", err)
			}
			gateways[i].OutgoingFlows = append(gateways[i].OutgoingFlows, flow)
		}
		err = flowRows.Err()
		flowRows.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read sequence flows: %w", err)
		}
	}
	return gateways, nil
}

func (r *simulationModelRepository) List(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM simulation_model ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation models: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan simulation model id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read simulation model ids: %w", err)
	}
	return ids, nil
}

func (r *simulationModelRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM simulation_model WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete simulation model: %w", err)
	}
	return nil
}

func (r *simulationModelRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM simulation_model`); err != nil {
		return fmt.Errorf("failed to delete simulation models: %w", err)
	}
	return nil
}
