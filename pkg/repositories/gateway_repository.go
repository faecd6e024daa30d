package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// GatewayRepository provides data access for gateways and their outgoing
// sequence flows.
type GatewayRepository interface {
	// CreateWithFlows inserts a gateway and its sequence flows in one
	// transaction.
	CreateWithFlows(ctx context.Context, modelID int64, bpmnID string, flows []models.SequenceFlow) (*models.Gateway, error)

	// AddSequenceFlow appends one flow to an existing gateway.
	AddSequenceFlow(ctx context.Context, gatewayID int64, bpmnID string, probability float64) (*models.SequenceFlow, error)

	// Get returns the gateway with its flows, or nil when absent.
	Get(ctx context.Context, id int64) (*models.Gateway, error)

	// GetSequenceFlow returns one flow, or nil when absent.
	GetSequenceFlow(ctx context.Context, id int64) (*models.SequenceFlow, error)

	// Delete removes the gateway and its flows. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every gateway. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type gatewayRepository struct {
	db *database.DB
}

// NewGatewayRepository creates a new GatewayRepository.
func NewGatewayRepository(db *database.DB) GatewayRepository {
	return &gatewayRepository{db: db}
}

var _ GatewayRepository = (*gatewayRepository)(nil)

func (r *gatewayRepository) CreateWithFlows(ctx context.Context, modelID int64, bpmnID string, flows []models.SequenceFlow) (*models.Gateway, error) {
	gateway := &models.Gateway{SimulationModelID: modelID, BpmnID: bpmnID}
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO gateway (simulation_model_id, bpmn_id)
			VALUES ($1, $2)
			RETURNING id`,
			modelID, bpmnID,
		).Scan(&gateway.ID)
		if err != nil {
			return fmt.Errorf("failed to create gateway: %w", err)
		}
		for _, flow := range flows {
			flow.SourceGatewayID = gateway.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO sequence_flow (source_gateway_id, bpmn_id, probability)
				VALUES ($1, $2, $3)
				RETURNING id`,
				gateway.ID, flow.BpmnID, flow.Probability,
			).Scan(&flow.ID)
			if err != nil {
				return fmt.Errorf("failed to create sequence flow: %w", err)
			}
			gateway.OutgoingFlows = append(gateway.OutgoingFlows, flow)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gateway, nil
}

func (r *gatewayRepository) AddSequenceFlow(ctx context.Context, gatewayID int64, bpmnID string, probability float64) (*models.SequenceFlow, error) {
	flow := &models.SequenceFlow{SourceGatewayID: gatewayID, BpmnID: bpmnID, Probability: probability}
	err := r.db.QueryRow(ctx, `
		INSERT INTO sequence_flow (source_gateway_id, bpmn_id, probability)
		VALUES ($1, $2, $3)
		RETURNING id`,
		gatewayID, bpmnID, probability,
	).Scan(&flow.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequence flow: %w", err)
	}
	return flow, nil
}

func (r *gatewayRepository) Get(ctx context.Context, id int64) (*models.Gateway, error) {
	gateway := &models.Gateway{}
	err := r.db.QueryRow(ctx,
		`SELECT id, simulation_model_id, bpmn_id FROM gateway WHERE id = $1`, id,
	).Scan(&gateway.ID, &gateway.SimulationModelID, &gateway.BpmnID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway: %w", err)
	}

	flows, err := r.flowsForGateway(ctx, id)
	if err != nil {
		return nil, err
	}
	gateway.OutgoingFlows = flows
	return gateway, nil
}

func (r *gatewayRepository) flowsForGateway(ctx context.Context, gatewayID int64) ([]models.SequenceFlow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, source_gateway_id, bpmn_id, probability
		FROM sequence_flow
		WHERE source_gateway_id = $1
		ORDER BY id`, gatewayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence flows: %w", err)
	}
	defer rows.Close()

	var flows []models.SequenceFlow
	for rows.Next() {
		var flow models.SequenceFlow
		if err := rows.Scan(&flow.ID, &flow.SourceGatewayID, &flow.BpmnID, &flow.Probability); err != nil {
			return nil, fmt.Errorf("failed to scan sequence flow: %w", err)
		}
		flows = append(flows, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequence flows: %w", err)
	}
	return flows, nil
}

func (r *gatewayRepository) GetSequenceFlow(ctx context.Context, id int64) (*models.SequenceFlow, error) {
	flow := &models.SequenceFlow{}
	err := r.db.QueryRow(ctx,
		`SELECT id, source_gateway_id, bpmn_id, probability FROM sequence_flow WHERE id = $1`, id,
	).Scan(&flow.ID, &flow.SourceGatewayID, &flow.BpmnID, &flow.Probability)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence flow: %w", err)
	}
	return flow, nil
}

func (r *gatewayRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM gateway WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete gateway: %w", err)
	}
	return nil
}

func (r *gatewayRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM gateway`); err != nil {
		return fmt.Errorf("failed to delete gateways: %w", err)
	}
	return nil
}
