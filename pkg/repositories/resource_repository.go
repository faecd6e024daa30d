package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// ResourceRepository provides data access for resources and their
// activity-distribution assignments.
type ResourceRepository interface {
	// Create inserts a resource into a profile. The calendar is referenced,
	// not validated here.
	Create(ctx context.Context, profileID int64, bpmnID, name string, amount int, costPerHour float64, calendarID int64) (*models.Resource, error)

	// Get returns the resource with its assigned activity distributions,
	// or nil when absent.
	Get(ctx context.Context, id int64) (*models.Resource, error)

	// Delete removes the resource, its activities, and its assignments.
	// No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every resource. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type resourceRepository struct {
	db *database.DB
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(db *database.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

var _ ResourceRepository = (*resourceRepository)(nil)

func (r *resourceRepository) Create(ctx context.Context, profileID int64, bpmnID, name string, amount int, costPerHour float64, calendarID int64) (*models.Resource, error) {
	resource := &models.Resource{
		ProfileID:   profileID,
		BpmnID:      bpmnID,
		Name:        name,
		Amount:      amount,
		CostPerHour: costPerHour,
		CalendarID:  calendarID,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO resource (profile_id, bpmn_id, name, amount, cost_per_hour, calendar_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		profileID, bpmnID, name, amount, costPerHour, calendarID,
	).Scan(&resource.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

func (r *resourceRepository) Get(ctx context.Context, id int64) (*models.Resource, error) {
	resource := &models.Resource{}
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, bpmn_id, name, amount, cost_per_hour, calendar_id
		FROM resource WHERE id = $1`, id,
	).Scan(
		&resource.ID,
		&resource.ProfileID,
		&resource.BpmnID,
		&resource.Name,
		&resource.Amount,
		&resource.CostPerHour,
		&resource.CalendarID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	assigned, err := assignedActivities(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	resource.AssignedActivities = assigned
	return resource, nil
}

func assignedActivities(ctx context.Context, db *database.DB, resourceID int64) ([]models.ActivityResourceDistribution, error) {
	rows, err := db.Query(ctx, `
		SELECT id, activity_id, resource_id, distribution_id
		FROM activity_resource_distribution
		WHERE resource_id = $1
		ORDER BY id`, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned activities: %w", err)
	}
	defer rows.Close()

	var assigned []models.ActivityResourceDistribution
	for rows.Next() {
		var ard models.ActivityResourceDistribution
		if err := rows.Scan(&ard.ID, &ard.ActivityID, &ard.ResourceID, &ard.DistributionID); err != nil {
			return nil, fmt.Errorf("failed to scan assigned activity: %w", err)
		}
		assigned = append(assigned, ard)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assigned activities: %w", err)
	}
	return assigned, nil
}

func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM resource WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

func (r *resourceRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM resource`); err != nil {
		return fmt.Errorf("failed to delete resources: %w", err)
	}
	return nil
}
