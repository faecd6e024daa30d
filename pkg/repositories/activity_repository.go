package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// ActivityRepository provides data access for activities. An activity row
// is scoped to the one resource that performs it.
type ActivityRepository interface {
	// Create inserts an activity for a resource.
	Create(ctx context.Context, resourceID int64, bpmnID, name string) (*models.Activity, error)

	// Get returns the activity, or nil when absent.
	Get(ctx context.Context, id int64) (*models.Activity, error)

	// Delete removes the activity. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every activity. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type activityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *database.DB) ActivityRepository {
	return &activityRepository{db: db}
}

var _ ActivityRepository = (*activityRepository)(nil)

func (r *activityRepository) Create(ctx context.Context, resourceID int64, bpmnID, name string) (*models.Activity, error) {
	activity := &models.Activity{ResourceID: resourceID, BpmnID: bpmnID, Name: name}
	err := r.db.QueryRow(ctx, `
		INSERT INTO activity (resource_id, bpmn_id, name)
		VALUES ($1, $2, $3)
		RETURNING id`,
		resourceID, bpmnID, name,
	).Scan(&activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*models.Activity, error) {
	activity := &models.Activity{}
	err := r.db.QueryRow(ctx,
		`SELECT id, resource_id, bpmn_id, name FROM activity WHERE id = $1`, id,
	).Scan(&activity.ID, &activity.ResourceID, &activity.BpmnID, &activity.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM activity WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

func (r *activityRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM activity`); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}
