package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// ResourceProfileRepository provides data access for resource profiles.
type ResourceProfileRepository interface {
	// Create inserts a profile into a model.
	Create(ctx context.Context, modelID int64, name string) (*models.ResourceProfile, error)

	// Get returns the profile with its resources (and their assignments),
	// or nil when absent.
	Get(ctx context.Context, id int64) (*models.ResourceProfile, error)

	// GetByModel returns all profiles of a model, fully loaded.
	GetByModel(ctx context.Context, modelID int64) ([]models.ResourceProfile, error)

	// Delete removes the profile and its resources. No-op when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every profile. Test teardown only.
	DeleteAll(ctx context.Context) error
}

type resourceProfileRepository struct {
	db *database.DB
}

// NewResourceProfileRepository creates a new ResourceProfileRepository.
func NewResourceProfileRepository(db *database.DB) ResourceProfileRepository {
	return &resourceProfileRepository{db: db}
}

var _ ResourceProfileRepository = (*resourceProfileRepository)(nil)

func (r *resourceProfileRepository) Create(ctx context.Context, modelID int64, name string) (*models.ResourceProfile, error) {
	profile := &models.ResourceProfile{SimulationModelID: modelID, Name: name}
	err := r.db.QueryRow(ctx, `
		INSERT INTO resource_profile (simulation_model_id, name)
		VALUES ($1, $2)
		RETURNING id`,
		modelID, name,
	).Scan(&profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource profile: %w", err)
	}
	return profile, nil
}

func (r *resourceProfileRepository) Get(ctx context.Context, id int64) (*models.ResourceProfile, error) {
	profile := &models.ResourceProfile{}
	err := r.db.QueryRow(ctx,
		`SELECT id, simulation_model_id, name FROM resource_profile WHERE id = $1`, id,
	).Scan(&profile.ID, &profile.SimulationModelID, &profile.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource profile: %w", err)
	}
	if err := r.loadResources(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *resourceProfileRepository) GetByModel(ctx context.Context, modelID int64) ([]models.ResourceProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, simulation_model_id, name
		FROM resource_profile
		WHERE simulation_model_id = $1
		ORDER BY id`, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ResourceProfile
	for rows.Next() {
		var profile models.ResourceProfile
		if err := rows.Scan(&profile.ID, &profile.SimulationModelID, &profile.Name); err != nil {
			return nil, fmt.Errorf("failed to scan resource profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resource profiles: %w", err)
	}

	for i := range profiles {
		if err := r.loadResources(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *resourceProfileRepository) loadResources(ctx context.Context, profile *models.ResourceProfile) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, bpmn_id, name, amount, cost_per_hour, calendar_id
		FROM resource
		WHERE profile_id = $1
		ORDER BY id`, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to get profile resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var resource models.Resource
		if err := rows.Scan(
			&resource.ID,
			&resource.ProfileID,
			&resource.BpmnID,
			&resource.Name,
			&resource.Amount,
			&resource.CostPerHour,
			&resource.CalendarID,
		); err != nil {
			return fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read profile resources: %w", err)
	}

	for i := range resources {
		assigned, err := assignedActivities(ctx, r.db, resources[i].ID)
		if err != nil {
			return err
		}
		resources[i].AssignedActivities = assigned
	}
	profile.Resources = resources
	return nil
}

func (r *resourceProfileRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM resource_profile WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resource profile: %w", err)
	}
	return nil
}

func (r *resourceProfileRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM resource_profile`); err != nil {
		return fmt.Errorf("failed to delete resource profiles: %w", err)
	}
	return nil
}
