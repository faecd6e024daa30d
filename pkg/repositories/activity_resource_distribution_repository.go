package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// ActivityResourceDistributionRepository provides data access for the
// join rows binding an activity, a resource, and a duration distribution.
type ActivityResourceDistributionRepository interface {
	// Create inserts one join row.
	Create(ctx context.Context, activityID, resourceID, distributionID int64) (*models.ActivityResourceDistribution, error)

	// Get returns the join row, or nil when absent.
	Get(ctx context.Context, id int64) (*models.ActivityResourceDistribution, error)

	// Delete removes the join row. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every join row. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type activityResourceDistributionRepository struct {
	db *database.DB
}

// NewActivityResourceDistributionRepository creates a new ActivityResourceDistributionRepository.
func NewActivityResourceDistributionRepository(db *database.DB) ActivityResourceDistributionRepository {
	return &activityResourceDistributionRepository{db: db}
}

var _ ActivityResourceDistributionRepository = (*activityResourceDistributionRepository)(nil)

func (r *activityResourceDistributionRepository) Create(ctx context.Context, activityID, resourceID, distributionID int64) (*models.ActivityResourceDistribution, error) {
	ard := &models.ActivityResourceDistribution{
		ActivityID:     activityID,
		ResourceID:     resourceID,
		DistributionID: distributionID,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO activity_resource_distribution (activity_id, resource_id, distribution_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		activityID, resourceID, distributionID,
	).Scan(&ard.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity resource distribution: %w", err)
	}
	return ard, nil
}

func (r *activityResourceDistributionRepository) Get(ctx context.Context, id int64) (*models.ActivityResourceDistribution, error) {
	ard := &models.ActivityResourceDistribution{}
	err := r.db.QueryRow(ctx, `
		SELECT id, activity_id, resource_id, distribution_id
		FROM activity_resource_distribution WHERE id = $1`, id,
	).Scan(&ard.ID, &ard.ActivityID, &ard.ResourceID, &ard.DistributionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity resource distribution: %w", err)
	}
	return ard, nil
}

func (r *activityResourceDistributionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM activity_resource_distribution WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete activity resource distribution: %w", err)
	}
	return nil
}

func (r *activityResourceDistributionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM activity_resource_distribution`); err != nil {
		return fmt.Errorf("failed to delete activity resource distributions: %w", err)
	}
	return nil
}
