// Package adapters bridges the normalized relational store and the
// simulation engine's nested scenario document, in both directions.
package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

// wireNameByKind maps stored distribution kinds onto the engine's short
// names. The service accepts the short names directly on the way in.
var wireNameByKind = map[string]string{
	models.DistUniform:     simulator.WireUniform,
	models.DistNormal:      simulator.WireNormal,
	models.DistExponential: simulator.WireExponential,
	models.DistLognormal:   simulator.WireLognormal,
	models.DistGamma:       simulator.WireGamma,
	models.DistFixed:       simulator.WireFixed,
}

// ModelReader is the slice of the service the export path needs. Lookup
// misses surface here when a stored reference points at a deleted
// calendar or distribution; deletions are not guarded.
type ModelReader interface {
	GetSimulationModel(ctx context.Context, modelID int64) (*models.SimulationModel, error)
	GetCalendar(ctx context.Context, calendarID int64) (*models.Calendar, error)
	GetDistribution(ctx context.Context, distributionID int64) (*models.Distribution, error)
	GetActivity(ctx context.Context, activityID int64) (*models.Activity, error)
}

// ToSimulator projects a relational simulation model into the engine's
// nested scenario.
type ToSimulator struct {
	reader ModelReader
	logger *zap.Logger
}

// NewToSimulator creates the relational-to-simulator adapter.
func NewToSimulator(reader ModelReader, logger *zap.Logger) *ToSimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToSimulator{reader: reader, logger: logger}
}

// Export loads the simulation model aggregate and projects it into a
// scenario. Sub-components the model does not have are left out of the
// result entirely.
func (a *ToSimulator) Export(ctx context.Context, modelID int64) (*simulator.Model, error) {
	model, err := a.reader.GetSimulationModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperrors.EntityNotFound("simulation model", modelID)
	}

	scenario := &simulator.Model{}

	for _, gateway := range model.Gateways {
		scenario.GatewayProbabilities = append(scenario.GatewayProbabilities, gatewayToWire(gateway))
	}

	if model.CaseArrival != nil {
		if err := a.exportCaseArrival(ctx, model.CaseArrival, scenario); err != nil {
			return nil, err
		}
	}

	if len(model.ResourceProfiles) > 0 {
		if err := a.exportResourceModel(ctx, model.ResourceProfiles, scenario); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("exported simulation model",
		zap.Int64("model_id", modelID),
		zap.Int("gateways", len(scenario.GatewayProbabilities)),
		zap.Int("profiles", len(scenario.ResourceProfiles)),
		zap.Int("calendars", len(scenario.ResourceCalendars)))
	return scenario, nil
}

func (a *ToSimulator) exportCaseArrival(ctx context.Context, arrival *models.CaseArrival, scenario *simulator.Model) error {
	calendar, err := a.requireCalendar(ctx, arrival.CalendarID)
	if err != nil {
		return err
	}
	distribution, err := a.requireDistribution(ctx, arrival.InterArrivalDistributionID)
	if err != nil {
		return err
	}
	wire, err := distributionToWire(distribution)
	if err != nil {
		return err
	}
	scenario.ArrivalTimeDistribution = wire
	scenario.ArrivalTimeCalendar = calendarToPeriods(calendar)
	return nil
}

// exportResourceModel walks all (profile, resource) pairs once, building
// three projections in the same pass: the per-profile resource lists, the
// distinct set of referenced calendars, and the per-activity grouping of
// (resource, distribution) pairs. A calendar referenced by five resources
// is emitted once; an activity stored under each resource comes out as
// one entry listing every resource that performs it.
func (a *ToSimulator) exportResourceModel(ctx context.Context, profiles []models.ResourceProfile, scenario *simulator.Model) error {
	var calendarIDs []int64
	seenCalendars := map[int64]bool{}

	var activityOrder []string
	activityResources := map[string][]simulator.ResourceDistribution{}

	for _, profile := range profiles {
		wireProfile := simulator.ResourceProfile{
			ID:   strconv.FormatInt(profile.ID, 10),
			Name: profile.Name,
		}
		for _, resource := range profile.Resources {
			wireProfile.Resources = append(wireProfile.Resources, simulator.Resource{
				ID:            resource.BpmnID,
				Name:          resource.Name,
				Amount:        resource.Amount,
				CostPerHour:   resource.CostPerHour,
				CalendarID:    strconv.FormatInt(resource.CalendarID, 10),
				AssignedTasks: []string{},
			})
			if !seenCalendars[resource.CalendarID] {
				seenCalendars[resource.CalendarID] = true
				calendarIDs = append(calendarIDs, resource.CalendarID)
			}
			for _, assignment := range resource.AssignedActivities {
				activity, err := a.reader.GetActivity(ctx, assignment.ActivityID)
				if err != nil {
					return err
				}
				if activity == nil {
					return apperrors.EntityNotFound("activity", assignment.ActivityID)
				}
				distribution, err := a.requireDistribution(ctx, assignment.DistributionID)
				if err != nil {
					return err
				}
				wire, err := distributionToWire(distribution)
				if err != nil {
					return err
				}
				if _, seen := activityResources[activity.BpmnID]; !seen {
					activityOrder = append(activityOrder, activity.BpmnID)
				}
				activityResources[activity.BpmnID] = append(activityResources[activity.BpmnID], simulator.ResourceDistribution{
					ResourceID:   resource.BpmnID,
					Distribution: *wire,
				})
			}
		}
		scenario.ResourceProfiles = append(scenario.ResourceProfiles, wireProfile)
	}

	for _, calendarID := range calendarIDs {
		calendar, err := a.requireCalendar(ctx, calendarID)
		if err != nil {
			return err
		}
		scenario.ResourceCalendars = append(scenario.ResourceCalendars, simulator.Calendar{
			ID:          strconv.FormatInt(calendar.ID, 10),
			TimePeriods: calendarToPeriods(calendar),
		})
	}

	for _, activityID := range activityOrder {
		scenario.TaskResourceDistribution = append(scenario.TaskResourceDistribution, simulator.ActivityResourceDistribution{
			ActivityID: activityID,
			Resources:  activityResources[activityID],
		})
	}
	return nil
}

func (a *ToSimulator) requireCalendar(ctx context.Context, calendarID int64) (*models.Calendar, error) {
	calendar, err := a.reader.GetCalendar(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return nil, apperrors.EntityNotFound("calendar", calendarID)
	}
	return calendar, nil
}

func (a *ToSimulator) requireDistribution(ctx context.Context, distributionID int64) (*models.Distribution, error) {
	distribution, err := a.reader.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if distribution == nil {
		return nil, apperrors.EntityNotFound("distribution", distributionID)
	}
	return distribution, nil
}

func gatewayToWire(gateway models.Gateway) simulator.GatewayProbabilities {
	wire := simulator.GatewayProbabilities{GatewayID: gateway.BpmnID}
	for _, flow := range gateway.OutgoingFlows {
		wire.OutgoingPaths = append(wire.OutgoingPaths, simulator.PathProbability{
			PathID:      flow.BpmnID,
			Probability: flow.Probability,
		})
	}
	return wire
}

func calendarToPeriods(calendar *models.Calendar) []simulator.TimePeriod {
	periods := make([]simulator.TimePeriod, 0, len(calendar.Intervals))
	for _, interval := range calendar.Intervals {
		periods = append(periods, simulator.TimePeriod{
			From:      strings.ToUpper(string(interval.StartDay)),
			To:        strings.ToUpper(string(interval.EndDay)),
			BeginTime: fmt.Sprintf("%d:%d", interval.StartHour, interval.StartMinute),
			EndTime:   fmt.Sprintf("%d:%d", interval.EndHour, interval.EndMinute),
		})
	}
	return periods
}

// distributionToWire converts a stored {name, parameters} distribution to
// the engine's duration-distribution shape. Stored parameter names
// outside the recognized set fail the projection.
func distributionToWire(distribution *models.Distribution) (*simulator.DurationDistribution, error) {
	name, ok := wireNameByKind[distribution.Name]
	if !ok {
		return nil, apperrors.UnknownDistributionKind(distribution.Name)
	}
	wire := &simulator.DurationDistribution{Name: name}
	for _, parameter := range distribution.Parameters {
		switch parameter.Name {
		case models.ParamMean:
			wire.Mean = parameter.Value
		case models.ParamStd, "stddev":
			wire.Std = parameter.Value
		case models.ParamVar:
			wire.Var = parameter.Value
		case models.ParamMin:
			wire.Min = parameter.Value
		case models.ParamMax:
			wire.Max = parameter.Value
		default:
			return nil, apperrors.UnknownParameterKind(parameter.Name)
		}
	}
	return wire, nil
}

var _ ModelReader = (services.SimulationService)(nil)
