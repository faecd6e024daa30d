package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/repositories"
)

// Entity kind names used in not-found errors.
const (
	kindSimulationModel = "simulation model"
	kindCalendar        = "calendar"
	kindDistribution    = "distribution"
	kindGateway         = "gateway"
	kindActivity        = "activity"
	kindResource        = "resource"
	kindResourceProfile = "resource profile"
)

// SequenceFlowInput describes one outgoing path of a gateway to create.
type SequenceFlowInput struct {
	BpmnID      string  `json:"bpmn_id"`
	Probability float64 `json:"probability"`
}

// ParameterInput is one named distribution parameter.
type ParameterInput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DistributionInput describes a distribution to create.
type DistributionInput struct {
	Name       string           `json:"name"`
	Parameters []ParameterInput `json:"parameters"`
}

// ActivityDistributionInput binds an activity to the duration distribution
// of the resource being created.
type ActivityDistributionInput struct {
	ActivityName   string            `json:"activity_name"`
	ActivityBpmnID string            `json:"activity_bpmn_id"`
	Distribution   DistributionInput `json:"distribution"`
}

// ResourceInput describes a resource to create inside a profile, together
// with the activities it performs.
type ResourceInput struct {
	BpmnID                string                      `json:"bpmn_id"`
	Name                  string                      `json:"name"`
	Amount                int                         `json:"amount"`
	CostPerHour           float64                     `json:"cost_per_hour"`
	CalendarID            int64                       `json:"calendar_id"`
	ActivityDistributions []ActivityDistributionInput `json:"activity_distributions"`
}

// SimulationService layers cross-entity invariants on top of the
// repositories: referenced parents are looked up before any write so
// failures surface as resolvable EntityNotFound errors instead of
// database constraint violations, and distribution parameters are
// validated and completed on the way in.
//
// Compound operations (resource with activity distributions, profile with
// resources) are saga-style sequences of independently committed steps:
// a failure partway through leaves the earlier rows committed.
type SimulationService interface {
	CreateSimulationModel(ctx context.Context) (*models.SimulationModel, error)
	GetSimulationModel(ctx context.Context, modelID int64) (*models.SimulationModel, error)
	ListSimulationModels(ctx context.Context) ([]int64, error)
	DeleteSimulationModel(ctx context.Context, modelID int64) error

	CreateGatewayWithSequenceFlows(ctx context.Context, modelID int64, gatewayBpmnID string, flows []SequenceFlowInput) (*models.Gateway, error)
	GetGateway(ctx context.Context, gatewayID int64) (*models.Gateway, error)
	DeleteGateway(ctx context.Context, gatewayID int64) error

	CreateDistributionWithParameters(ctx context.Context, name string, parameters []ParameterInput) (*models.Distribution, error)
	GetDistribution(ctx context.Context, distributionID int64) (*models.Distribution, error)
	DeleteDistribution(ctx context.Context, distributionID int64) error

	CreateCalendarWithIntervals(ctx context.Context, intervals []models.CalendarInterval) (*models.Calendar, error)
	GetCalendar(ctx context.Context, calendarID int64) (*models.Calendar, error)
	DeleteCalendar(ctx context.Context, calendarID int64) error

	CreateCaseArrival(ctx context.Context, modelID, calendarID, distributionID int64) (*models.CaseArrival, error)
	DeleteCaseArrival(ctx context.Context, caseArrivalID int64) error

	CreateActivity(ctx context.Context, resourceID int64, bpmnID, name string) (*models.Activity, error)
	GetActivity(ctx context.Context, activityID int64) (*models.Activity, error)
	DeleteActivity(ctx context.Context, activityID int64) error

	CreateResource(ctx context.Context, profileID int64, bpmnID, name string, amount int, costPerHour float64, calendarID int64) (*models.Resource, error)
	CreateResourceWithActivityDistributions(ctx context.Context, profileID int64, resource ResourceInput) (*models.Resource, error)
	GetResource(ctx context.Context, resourceID int64) (*models.Resource, error)
	DeleteResource(ctx context.Context, resourceID int64) error

	CreateActivityResourceDistribution(ctx context.Context, activityID, resourceID, distributionID int64) (*models.ActivityResourceDistribution, error)
	DeleteActivityResourceDistribution(ctx context.Context, id int64) error

	CreateResourceProfileWithResources(ctx context.Context, modelID int64, name string, resources []ResourceInput) (*models.ResourceProfile, error)
	GetResourceProfile(ctx context.Context, profileID int64) (*models.ResourceProfile, error)
	DeleteResourceProfile(ctx context.Context, profileID int64) error
}

type simulationService struct {
	repos  *repositories.Repositories
	logger *zap.Logger
}

// NewSimulationService creates a SimulationService over the given
// repositories.
func NewSimulationService(repos *repositories.Repositories, logger *zap.Logger) SimulationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &simulationService{repos: repos, logger: logger}
}

var _ SimulationService = (*simulationService)(nil)

func (s *simulationService) CreateSimulationModel(ctx context.Context) (*models.SimulationModel, error) {
	return s.repos.SimulationModel.Create(ctx)
}

func (s *simulationService) GetSimulationModel(ctx context.Context, modelID int64) (*models.SimulationModel, error) {
	return s.repos.SimulationModel.Get(ctx, modelID)
}

func (s *simulationService) ListSimulationModels(ctx context.Context) ([]int64, error) {
	return s.repos.SimulationModel.List(ctx)
}

func (s *simulationService) DeleteSimulationModel(ctx context.Context, modelID int64) error {
	return s.repos.SimulationModel.Delete(ctx, modelID)
}

func (s *simulationService) requireModel(ctx context.Context, modelID int64) error {
	model, err := s.repos.SimulationModel.Get(ctx, modelID)
	if err != nil {
		return err
	}
	if model == nil {
		return apperrors.EntityNotFound(kindSimulationModel, modelID)
	}
	return nil
}

func (s *simulationService) requireCalendar(ctx context.Context, calendarID int64) error {
	calendar, err := s.repos.Calendar.Get(ctx, calendarID)
	if err != nil {
		return err
	}
	if calendar == nil {
		return apperrors.EntityNotFound(kindCalendar, calendarID)
	}
	return nil
}

func (s *simulationService) requireDistribution(ctx context.Context, distributionID int64) error {
	distribution, err := s.repos.Distribution.Get(ctx, distributionID)
	if err != nil {
		return err
	}
	if distribution == nil {
		return apperrors.EntityNotFound(kindDistribution, distributionID)
	}
	return nil
}

func (s *simulationService) CreateGatewayWithSequenceFlows(ctx context.Context, modelID int64, gatewayBpmnID string, flows []SequenceFlowInput) (*models.Gateway, error) {
	if err := s.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	// Flow probabilities are stored as given; the sum-to-1 invariant is
	// the caller's concern because flows are also mutated one at a time.
	rows := make([]models.SequenceFlow, 0, len(flows))
	for _, flow := range flows {
		rows = append(rows, models.SequenceFlow{BpmnID: flow.BpmnID, Probability: flow.Probability})
	}
	gateway, err := s.repos.Gateway.CreateWithFlows(ctx, modelID, gatewayBpmnID, rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created gateway",
		zap.Int64("model_id", modelID),
		zap.String("bpmn_id", gatewayBpmnID),
		zap.Int("flows", len(flows)))
	return gateway, nil
}

func (s *simulationService) GetGateway(ctx context.Context, gatewayID int64) (*models.Gateway, error) {
	return s.repos.Gateway.Get(ctx, gatewayID)
}

func (s *simulationService) DeleteGateway(ctx context.Context, gatewayID int64) error {
	return s.repos.Gateway.Delete(ctx, gatewayID)
}

func (s *simulationService) CreateDistributionWithParameters(ctx context.Context, name string, parameters []ParameterInput) (*models.Distribution, error) {
	kind, params, err := normalizeDistribution(name, parameters)
	if err != nil {
		return nil, err
	}
	distribution, err := s.repos.Distribution.Create(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Distribution.AddParameters(ctx, distribution.ID, params); err != nil {
		return nil, err
	}
	return s.repos.Distribution.Get(ctx, distribution.ID)
}

func (s *simulationService) GetDistribution(ctx context.Context, distributionID int64) (*models.Distribution, error) {
	return s.repos.Distribution.Get(ctx, distributionID)
}

func (s *simulationService) DeleteDistribution(ctx context.Context, distributionID int64) error {
	return s.repos.Distribution.Delete(ctx, distributionID)
}

func (s *simulationService) CreateCalendarWithIntervals(ctx context.Context, intervals []models.CalendarInterval) (*models.Calendar, error) {
	for _, interval := range intervals {
		if err := interval.Validate(); err != nil {
			return nil, err
		}
	}
	return s.repos.Calendar.CreateWithIntervals(ctx, intervals)
}

func (s *simulationService) GetCalendar(ctx context.Context, calendarID int64) (*models.Calendar, error) {
	return s.repos.Calendar.Get(ctx, calendarID)
}

func (s *simulationService) DeleteCalendar(ctx context.Context, calendarID int64) error {
	return s.repos.Calendar.Delete(ctx, calendarID)
}

func (s *simulationService) CreateCaseArrival(ctx context.Context, modelID, calendarID, distributionID int64) (*models.CaseArrival, error) {
	if err := s.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	if err := s.requireCalendar(ctx, calendarID); err != nil {
		return nil, err
	}
	if err := s.requireDistribution(ctx, distributionID); err != nil {
		return nil, err
	}
	return s.repos.CaseArrival.Create(ctx, modelID, calendarID, distributionID)
}

func (s *simulationService) DeleteCaseArrival(ctx context.Context, caseArrivalID int64) error {
	return s.repos.CaseArrival.Delete(ctx, caseArrivalID)
}

func (s *simulationService) CreateActivity(ctx context.Context, resourceID int64, bpmnID, name string) (*models.Activity, error) {
	resource, err := s.repos.Resource.Get(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperrors.EntityNotFound(kindResource, resourceID)
	}
	return s.repos.Activity.Create(ctx, resourceID, bpmnID, name)
}

func (s *simulationService) GetActivity(ctx context.Context, activityID int64) (*models.Activity, error) {
	return s.repos.Activity.Get(ctx, activityID)
}

func (s *simulationService) DeleteActivity(ctx context.Context, activityID int64) error {
	return s.repos.Activity.Delete(ctx, activityID)
}

func (s *simulationService) CreateResource(ctx context.Context, profileID int64, bpmnID, name string, amount int, costPerHour float64, calendarID int64) (*models.Resource, error) {
	profile, err := s.repos.ResourceProfile.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.EntityNotFound(kindResourceProfile, profileID)
	}
	if err := s.requireCalendar(ctx, calendarID); err != nil {
		return nil, err
	}
	return s.repos.Resource.Create(ctx, profileID, bpmnID, name, amount, costPerHour, calendarID)
}

func (s *simulationService) CreateResourceWithActivityDistributions(ctx context.Context, profileID int64, resource ResourceInput) (*models.Resource, error) {
	created, err := s.CreateResource(ctx, profileID, resource.BpmnID, resource.Name, resource.Amount, resource.CostPerHour, resource.CalendarID)
	if err != nil {
		return nil, err
	}
	// Each activity is a separate committed step. A failure at activity
	// N leaves activities 1..N-1 in place.
	for _, ad := range resource.ActivityDistributions {
		activity, err := s.repos.Activity.Create(ctx, created.ID, ad.ActivityBpmnID, ad.ActivityName)
		if err != nil {
			return nil, err
		}
		distribution, err := s.CreateDistributionWithParameters(ctx, ad.Distribution.Name, ad.Distribution.Parameters)
		if err != nil {
			return nil, err
		}
		ard, err := s.repos.ActivityResourceDistribution.Create(ctx, activity.ID, created.ID, distribution.ID)
		if err != nil {
			return nil, err
		}
		created.AssignedActivities = append(created.AssignedActivities, *ard)
	}
	return created, nil
}

func (s *simulationService) GetResource(ctx context.Context, resourceID int64) (*models.Resource, error) {
	return s.repos.Resource.Get(ctx, resourceID)
}

func (s *simulationService) DeleteResource(ctx context.Context, resourceID int64) error {
	return s.repos.Resource.Delete(ctx, resourceID)
}

func (s *simulationService) CreateActivityResourceDistribution(ctx context.Context, activityID, resourceID, distributionID int64) (*models.ActivityResourceDistribution, error) {
	activity, err := s.repos.Activity.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apperrors.EntityNotFound(kindActivity, activityID)
	}
	resource, err := s.repos.Resource.Get(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperrors.EntityNotFound(kindResource, resourceID)
	}
	if err := s.requireDistribution(ctx, distributionID); err != nil {
		return nil, err
	}
	return s.repos.ActivityResourceDistribution.Create(ctx, activityID, resourceID, distributionID)
}

func (s *simulationService) DeleteActivityResourceDistribution(ctx context.Context, id int64) error {
	return s.repos.ActivityResourceDistribution.Delete(ctx, id)
}

func (s *simulationService) CreateResourceProfileWithResources(ctx context.Context, modelID int64, name string, resources []ResourceInput) (*models.ResourceProfile, error) {
	if err := s.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	profile, err := s.repos.ResourceProfile.Create(ctx, modelID, name)
	if err != nil {
		return nil, err
	}
	for _, resource := range resources {
		created, err := s.CreateResourceWithActivityDistributions(ctx, profile.ID, resource)
		if err != nil {
			return nil, err
		}
		profile.Resources = append(profile.Resources, *created)
	}
	s.logger.Debug("created resource profile",
		zap.Int64("model_id", modelID),
		zap.String("name", name),
		zap.Int("resources", len(resources)))
	return profile, nil
}

func (s *simulationService) GetResourceProfile(ctx context.Context, profileID int64) (*models.ResourceProfile, error) {
	return s.repos.ResourceProfile.Get(ctx, profileID)
}

func (s *simulationService) DeleteResourceProfile(ctx context.Context, profileID int64) error {
	return s.repos.ResourceProfile.Delete(ctx, profileID)
}
