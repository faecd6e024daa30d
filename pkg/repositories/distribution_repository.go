package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// DistributionRepository provides data access for distributions and their
// parameters. Parameter validation and default completion is the service
// layer's job; this repository stores what it is given.
type DistributionRepository interface {
	// Create inserts a distribution without parameters.
	Create(ctx context.Context, name string) (*models.Distribution, error)

	// AddParameters appends parameters to an existing distribution in one
	// transaction.
	AddParameters(ctx context.Context, distributionID int64, parameters []models.DistributionParameter) error

	// Get returns the distribution with its parameters, or nil when absent.
	Get(ctx context.Context, id int64) (*models.Distribution, error)

	// Delete removes the distribution and its parameters. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every distribution. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type distributionRepository struct {
	db *database.DB
}

// NewDistributionRepository creates a new DistributionRepository.
func NewDistributionRepository(db *database.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

var _ DistributionRepository = (*distributionRepository)(nil)

func (r *distributionRepository) Create(ctx context.Context, name string) (*models.Distribution, error) {
	distribution := &models.Distribution{Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO distribution (name) VALUES ($1) RETURNING id`, name,
	).Scan(&distribution.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create distribution: %w", err)
	}
	return distribution, nil
}

func (r *distributionRepository) AddParameters(ctx context.Context, distributionID int64, parameters []models.DistributionParameter) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, parameter := range parameters {
			_, err := tx.Exec(ctx, `
				INSERT INTO distribution_parameter (distribution_id, name, value)
				VALUES ($1, $2, $3)`,
				distributionID, parameter.Name, parameter.Value)
			if err != nil {
				return fmt.Errorf("failed to create distribution parameter %q: %w", parameter.Name, err)
			}
		}
		return nil
	})
}

func (r *distributionRepository) Get(ctx context.Context, id int64) (*models.Distribution, error) {
	distribution := &models.Distribution{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM distribution WHERE id = $1`, id,
	).Scan(&distribution.ID, &distribution.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, distribution_id, name, value
		FROM distribution_parameter
		WHERE distribution_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution parameters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parameter models.DistributionParameter
		if err := rows.Scan(&parameter.ID, &parameter.DistributionID, &parameter.Name, &parameter.Value); err != nil {
			return nil, fmt.Errorf("failed to scan distribution parameter: %w", err)
		}
		distribution.Parameters = append(distribution.Parameters, parameter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read distribution parameters: %w", err)
	}
	return distribution, nil
}

func (r *distributionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM distribution WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete distribution: %w", err)
	}
	return nil
}

func (r *distributionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM distribution`); err != nil {
		return fmt.Errorf("failed to delete distributions: %w", err)
	}
	return nil
}
