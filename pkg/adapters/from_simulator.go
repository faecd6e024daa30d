package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/bpmn"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

// FromSimulator imports the engine's nested scenario into a freshly
// created relational simulation model.
//
// The import is a sequence of inner repository transactions without an
// enclosing rollback: a fatal error partway through leaves the rows
// created so far committed.
type FromSimulator struct {
	service services.SimulationService
	logger  *zap.Logger
}

// NewFromSimulator creates the simulator-to-relational adapter.
func NewFromSimulator(service services.SimulationService, logger *zap.Logger) *FromSimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FromSimulator{service: service, logger: logger}
}

// Import decomposes a scenario into normalized rows. Activity ids are
// resolved to display names through the process-model map; an id absent
// from the map fails the whole import.
func (a *FromSimulator) Import(ctx context.Context, scenario *simulator.Model, activities *bpmn.ActivityMap) (*models.SimulationModel, error) {
	model, err := a.service.CreateSimulationModel(ctx)
	if err != nil {
		return nil, err
	}

	for _, gateway := range scenario.GatewayProbabilities {
		flows := make([]services.SequenceFlowInput, 0, len(gateway.OutgoingPaths))
		for _, path := range gateway.OutgoingPaths {
			flows = append(flows, services.SequenceFlowInput{
				BpmnID:      path.PathID,
				Probability: path.Probability,
			})
		}
		if _, err := a.service.CreateGatewayWithSequenceFlows(ctx, model.ID, gateway.GatewayID, flows); err != nil {
			return nil, err
		}
	}

	if scenario.ArrivalTimeDistribution != nil {
		if err := a.importCaseArrival(ctx, model.ID, scenario); err != nil {
			return nil, err
		}
	}

	if len(scenario.ResourceProfiles) > 0 {
		if err := a.importResourceModel(ctx, model.ID, scenario, activities); err != nil {
			return nil, err
		}
	}

	// Re-fetch so all generated ids and relationships are populated.
	return a.service.GetSimulationModel(ctx, model.ID)
}

func (a *FromSimulator) importCaseArrival(ctx context.Context, modelID int64, scenario *simulator.Model) error {
	intervals, err := periodsToIntervals(scenario.ArrivalTimeCalendar)
	if err != nil {
		return err
	}
	calendar, err := a.service.CreateCalendarWithIntervals(ctx, intervals)
	if err != nil {
		return err
	}
	parameters, err := wireToParameters(scenario.ArrivalTimeDistribution)
	if err != nil {
		return err
	}
	distribution, err := a.service.CreateDistributionWithParameters(ctx, scenario.ArrivalTimeDistribution.Name, parameters)
	if err != nil {
		return err
	}
	_, err = a.service.CreateCaseArrival(ctx, modelID, calendar.ID, distribution.ID)
	return err
}

func (a *FromSimulator) importResourceModel(ctx context.Context, modelID int64, scenario *simulator.Model, activities *bpmn.ActivityMap) error {
	// Calendars are created here and nowhere else; resources reference
	// them through the scenario's calendar ids, so an id-translation map
	// is held for the duration of the import.
	calendarIDs := make(map[string]int64, len(scenario.ResourceCalendars))
	for _, calendar := range scenario.ResourceCalendars {
		intervals, err := periodsToIntervals(calendar.TimePeriods)
		if err != nil {
			return err
		}
		created, err := a.service.CreateCalendarWithIntervals(ctx, intervals)
		if err != nil {
			return err
		}
		calendarIDs[calendar.ID] = created.ID
	}

	// A resource appearing in several profiles is imported once.
	resources := map[string]*services.ResourceInput{}
	for _, profile := range scenario.ResourceProfiles {
		for _, resource := range profile.Resources {
			if _, seen := resources[resource.ID]; seen {
				continue
			}
			calendarID, ok := calendarIDs[resource.CalendarID]
			if !ok {
				return fmt.Errorf("resource %q references calendar %q absent from the scenario", resource.ID, resource.CalendarID)
			}
			resources[resource.ID] = &services.ResourceInput{
				BpmnID:      resource.ID,
				Name:        resource.Name,
				Amount:      resource.Amount,
				CostPerHour: resource.CostPerHour,
				CalendarID:  calendarID,
			}
		}
	}

	// Invert the per-activity grouping back into the per-resource
	// activity-distribution lists the relational schema stores.
	for _, entry := range scenario.TaskResourceDistribution {
		name, ok := activities.NameByID(entry.ActivityID)
		if !ok {
			return apperrors.ActivityNotFound(entry.ActivityID)
		}
		for _, resourceDistribution := range entry.Resources {
			input, ok := resources[resourceDistribution.ResourceID]
			if !ok {
				return fmt.Errorf("distribution for activity %q references unknown resource %q",
					entry.ActivityID, resourceDistribution.ResourceID)
			}
			parameters, err := wireToParameters(&resourceDistribution.Distribution)
			if err != nil {
				return err
			}
			input.ActivityDistributions = append(input.ActivityDistributions, services.ActivityDistributionInput{
				ActivityName:   name,
				ActivityBpmnID: entry.ActivityID,
				Distribution: services.DistributionInput{
					Name:       resourceDistribution.Distribution.Name,
					Parameters: parameters,
				},
			})
		}
	}

	for _, profile := range scenario.ResourceProfiles {
		inputs := make([]services.ResourceInput, 0, len(profile.Resources))
		for _, resource := range profile.Resources {
			inputs = append(inputs, *resources[resource.ID])
		}
		if _, err := a.service.CreateResourceProfileWithResources(ctx, modelID, profile.Name, inputs); err != nil {
			return err
		}
	}

	a.logger.Debug("imported resource model",
		zap.Int64("model_id", modelID),
		zap.Int("calendars", len(calendarIDs)),
		zap.Int("resources", len(resources)))
	return nil
}

// wireToParameters flattens a duration distribution into the named
// parameter list the store expects, emitting exactly the parameters the
// kind carries.
func wireToParameters(distribution *simulator.DurationDistribution) ([]services.ParameterInput, error) {
	switch distribution.Name {
	case simulator.WireUniform:
		return []services.ParameterInput{
			{Name: models.ParamMin, Value: distribution.Min},
			{Name: models.ParamMax, Value: distribution.Max},
		}, nil
	case simulator.WireNormal:
		return []services.ParameterInput{
			{Name: models.ParamMean, Value: distribution.Mean},
			{Name: models.ParamStd, Value: distribution.Std},
			{Name: models.ParamMin, Value: distribution.Min},
			{Name: models.ParamMax, Value: distribution.Max},
		}, nil
	case simulator.WireExponential:
		return []services.ParameterInput{
			{Name: models.ParamMean, Value: distribution.Mean},
			{Name: models.ParamMin, Value: distribution.Min},
			{Name: models.ParamMax, Value: distribution.Max},
		}, nil
	case simulator.WireLognormal, simulator.WireGamma:
		return []services.ParameterInput{
			{Name: models.ParamMean, Value: distribution.Mean},
			{Name: models.ParamVar, Value: distribution.Var},
			{Name: models.ParamMin, Value: distribution.Min},
			{Name: models.ParamMax, Value: distribution.Max},
		}, nil
	case simulator.WireFixed:
		return []services.ParameterInput{
			{Name: models.ParamMean, Value: distribution.Mean},
		}, nil
	}
	return nil, apperrors.UnknownDistributionKind(distribution.Name)
}

// periodsToIntervals converts wire time periods back into relational
// calendar intervals.
func periodsToIntervals(periods []simulator.TimePeriod) ([]models.CalendarInterval, error) {
	intervals := make([]models.CalendarInterval, 0, len(periods))
	for _, period := range periods {
		startDay, err := models.DayFromString(period.From)
		if err != nil {
			return nil, err
		}
		endDay, err := models.DayFromString(period.To)
		if err != nil {
			return nil, err
		}
		startHour, startMinute, err := parseWireTime(period.BeginTime)
		if err != nil {
			return nil, err
		}
		endHour, endMinute, err := parseWireTime(period.EndTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, models.CalendarInterval{
			StartDay:    startDay,
			EndDay:      endDay,
			StartHour:   startHour,
			StartMinute: startMinute,
			EndHour:     endHour,
			EndMinute:   endMinute,
		})
	}
	return intervals, nil
}

func parseWireTime(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed calendar time %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed calendar time %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed calendar time %q", value)
	}
	return hour, minute, nil
}
