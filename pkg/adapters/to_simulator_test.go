package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

// stubReader serves a fixed set of rows to the export path.
type stubReader struct {
	model         *models.SimulationModel
	calendars     map[int64]*models.Calendar
	distributions map[int64]*models.Distribution
	activities    map[int64]*models.Activity
}

func (s *stubReader) GetSimulationModel(_ context.Context, modelID int64) (*models.SimulationModel, error) {
	if s.model != nil && s.model.ID == modelID {
		return s.model, nil
	}
	return nil, nil
}

func (s *stubReader) GetCalendar(_ context.Context, calendarID int64) (*models.Calendar, error) {
	return s.calendars[calendarID], nil
}

func (s *stubReader) GetDistribution(_ context.Context, distributionID int64) (*models.Distribution, error) {
	return s.distributions[distributionID], nil
}

func (s *stubReader) GetActivity(_ context.Context, activityID int64) (*models.Activity, error) {
	return s.activities[activityID], nil
}

func workingHours(calendarID int64) *models.Calendar {
	return &models.Calendar{
		ID: calendarID,
		Intervals: []models.CalendarInterval{
			{CalendarID: calendarID, StartDay: models.Monday, EndDay: models.Friday, StartHour: 9, EndHour: 17},
		},
	}
}

func fixedDistribution(id int64, mean float64) *models.Distribution {
	return &models.Distribution{
		ID:   id,
		Name: models.DistFixed,
		Parameters: []models.DistributionParameter{
			{Name: models.ParamMean, Value: mean},
		},
	}
}

func TestExportModelNotFound(t *testing.T) {
	exporter := NewToSimulator(&stubReader{}, nil)

	_, err := exporter.Export(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestExportEmptyModel(t *testing.T) {
	exporter := NewToSimulator(&stubReader{model: &models.SimulationModel{ID: 1}}, nil)

	scenario, err := exporter.Export(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, scenario.GatewayProbabilities)
	assert.Nil(t, scenario.ArrivalTimeDistribution)
	assert.Empty(t, scenario.ArrivalTimeCalendar)
	assert.Empty(t, scenario.ResourceProfiles)
	assert.Empty(t, scenario.ResourceCalendars)
	assert.Empty(t, scenario.TaskResourceDistribution)
}

func TestExportGateways(t *testing.T) {
	reader := &stubReader{
		model: &models.SimulationModel{
			ID: 1,
			Gateways: []models.Gateway{
				{
					ID:     10,
					BpmnID: "Gateway_1",
					OutgoingFlows: []models.SequenceFlow{
						{BpmnID: "Flow_1", Probability: 0.7},
						{BpmnID: "Flow_2", Probability: 0.3},
					},
				},
			},
		},
	}
	exporter := NewToSimulator(reader, nil)

	scenario, err := exporter.Export(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, scenario.GatewayProbabilities, 1)
	gateway := scenario.GatewayProbabilities[0]
	assert.Equal(t, "Gateway_1", gateway.GatewayID)
	require.Len(t, gateway.OutgoingPaths, 2)
	assert.Equal(t, simulator.PathProbability{PathID: "Flow_1", Probability: 0.7}, gateway.OutgoingPaths[0])
	assert.Equal(t, simulator.PathProbability{PathID: "Flow_2", Probability: 0.3}, gateway.OutgoingPaths[1])
}

func TestExportCaseArrival(t *testing.T) {
	reader := &stubReader{
		model: &models.SimulationModel{
			ID:          1,
			CaseArrival: &models.CaseArrival{CalendarID: 5, InterArrivalDistributionID: 7},
		},
		calendars: map[int64]*models.Calendar{5: {
			ID: 5,
			Intervals: []models.CalendarInterval{
				{StartDay: models.Monday, EndDay: models.Friday, StartHour: 8, StartMinute: 30, EndHour: 17, EndMinute: 5},
			},
		}},
		distributions: map[int64]*models.Distribution{7: {
			ID:   7,
			Name: models.DistExponential,
			Parameters: []models.DistributionParameter{
				{Name: models.ParamMean, Value: 30},
				{Name: models.ParamMin, Value: 30},
				{Name: models.ParamMax, Value: 30},
			},
		}},
	}
	exporter := NewToSimulator(reader, nil)

	scenario, err := exporter.Export(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, scenario.ArrivalTimeDistribution)
	assert.Equal(t, simulator.WireExponential, scenario.ArrivalTimeDistribution.Name)
	assert.Equal(t, 30.0, scenario.ArrivalTimeDistribution.Mean)

	// Days upper-cased, times unpadded.
	require.Len(t, scenario.ArrivalTimeCalendar, 1)
	assert.Equal(t, simulator.TimePeriod{
		From:      "MONDAY",
		To:        "FRIDAY",
		BeginTime: "8:30",
		EndTime:   "17:5",
	}, scenario.ArrivalTimeCalendar[0])
}

func TestExportCaseArrivalDanglingCalendar(t *testing.T) {
	reader := &stubReader{
		model: &models.SimulationModel{
			ID:          1,
			CaseArrival: &models.CaseArrival{CalendarID: 5, InterArrivalDistributionID: 7},
		},
		distributions: map[int64]*models.Distribution{7: fixedDistribution(7, 30)},
	}
	exporter := NewToSimulator(reader, nil)

	_, err := exporter.Export(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "calendar")
}

func TestExportResourceModel(t *testing.T) {
	// Two profiles, three resources. Two resources share calendar 5, one
	// uses calendar 6. Both junior and senior perform Activity_check; the
	// senior alone performs Activity_approve.
	reader := &stubReader{
		model: &models.SimulationModel{
			ID: 1,
			ResourceProfiles: []models.ResourceProfile{
				{
					ID:   100,
					Name: "Clerks",
					Resources: []models.Resource{
						{
							ID: 1, BpmnID: "junior", Name: "Junior", Amount: 2, CostPerHour: 20, CalendarID: 5,
							AssignedActivities: []models.ActivityResourceDistribution{
								{ActivityID: 201, ResourceID: 1, DistributionID: 301},
							},
						},
						{
							ID: 2, BpmnID: "senior", Name: "Senior", Amount: 1, CostPerHour: 40, CalendarID: 5,
							AssignedActivities: []models.ActivityResourceDistribution{
								{ActivityID: 202, ResourceID: 2, DistributionID: 302},
								{ActivityID: 203, ResourceID: 2, DistributionID: 303},
							},
						},
					},
				},
				{
					ID:   101,
					Name: "Managers",
					Resources: []models.Resource{
						{ID: 3, BpmnID: "manager", Name: "Manager", Amount: 1, CostPerHour: 60, CalendarID: 6},
					},
				},
			},
		},
		calendars: map[int64]*models.Calendar{
			5: workingHours(5),
			6: workingHours(6),
		},
		distributions: map[int64]*models.Distribution{
			301: fixedDistribution(301, 60),
			302: fixedDistribution(302, 45),
			303: fixedDistribution(303, 120),
		},
		activities: map[int64]*models.Activity{
			201: {ID: 201, ResourceID: 1, BpmnID: "Activity_check", Name: "Check application"},
			202: {ID: 202, ResourceID: 2, BpmnID: "Activity_check", Name: "Check application"},
			203: {ID: 203, ResourceID: 2, BpmnID: "Activity_approve", Name: "Approve application"},
		},
	}
	exporter := NewToSimulator(reader, nil)

	scenario, err := exporter.Export(context.Background(), 1)
	require.NoError(t, err)

	// Profiles keep their order; resources are addressed by BPMN id.
	require.Len(t, scenario.ResourceProfiles, 2)
	assert.Equal(t, "100", scenario.ResourceProfiles[0].ID)
	assert.Equal(t, "Clerks", scenario.ResourceProfiles[0].Name)
	require.Len(t, scenario.ResourceProfiles[0].Resources, 2)
	assert.Equal(t, "junior", scenario.ResourceProfiles[0].Resources[0].ID)
	assert.Equal(t, "5", scenario.ResourceProfiles[0].Resources[0].CalendarID)
	assert.NotNil(t, scenario.ResourceProfiles[0].Resources[0].AssignedTasks)

	// Calendar 5 is referenced twice but emitted once, in first-seen order.
	require.Len(t, scenario.ResourceCalendars, 2)
	assert.Equal(t, "5", scenario.ResourceCalendars[0].ID)
	assert.Equal(t, "6", scenario.ResourceCalendars[1].ID)

	// The per-resource assignments come out grouped per activity.
	require.Len(t, scenario.TaskResourceDistribution, 2)
	check := scenario.TaskResourceDistribution[0]
	assert.Equal(t, "Activity_check", check.ActivityID)
	require.Len(t, check.Resources, 2)
	assert.Equal(t, "junior", check.Resources[0].ResourceID)
	assert.Equal(t, 60.0, check.Resources[0].Distribution.Mean)
	assert.Equal(t, "senior", check.Resources[1].ResourceID)
	assert.Equal(t, 45.0, check.Resources[1].Distribution.Mean)

	approve := scenario.TaskResourceDistribution[1]
	assert.Equal(t, "Activity_approve", approve.ActivityID)
	require.Len(t, approve.Resources, 1)
	assert.Equal(t, "senior", approve.Resources[0].ResourceID)
}

func TestExportDanglingActivityDistribution(t *testing.T) {
	reader := &stubReader{
		model: &models.SimulationModel{
			ID: 1,
			ResourceProfiles: []models.ResourceProfile{
				{
					ID:   100,
					Name: "Clerks",
					Resources: []models.Resource{
						{
							ID: 1, BpmnID: "junior", Name: "Junior", Amount: 1, CalendarID: 5,
							AssignedActivities: []models.ActivityResourceDistribution{
								{ActivityID: 201, ResourceID: 1, DistributionID: 999},
							},
						},
					},
				},
			},
		},
		calendars: map[int64]*models.Calendar{5: workingHours(5)},
		activities: map[int64]*models.Activity{
			201: {ID: 201, ResourceID: 1, BpmnID: "Activity_check", Name: "Check application"},
		},
	}
	exporter := NewToSimulator(reader, nil)

	_, err := exporter.Export(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "distribution")
}

func TestDistributionToWire(t *testing.T) {
	wire, err := distributionToWire(&models.Distribution{
		Name: models.DistNormal,
		Parameters: []models.DistributionParameter{
			{Name: models.ParamMean, Value: 10},
			{Name: models.ParamStd, Value: 2},
			{Name: models.ParamMin, Value: 5},
			{Name: models.ParamMax, Value: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &simulator.DurationDistribution{Name: simulator.WireNormal, Mean: 10, Std: 2, Min: 5, Max: 15}, wire)

	_, err = distributionToWire(&models.Distribution{Name: "poisson"})
	assert.True(t, errors.Is(err, apperrors.ErrUnknownDistribution))

	_, err = distributionToWire(&models.Distribution{
		Name:       models.DistFixed,
		Parameters: []models.DistributionParameter{{Name: "skew", Value: 1}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrUnknownParameter))
}
