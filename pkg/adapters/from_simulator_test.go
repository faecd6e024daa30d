package adapters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

func TestWireToParameters(t *testing.T) {
	tests := []struct {
		name         string
		distribution simulator.DurationDistribution
		expected     []services.ParameterInput
	}{
		{
			name:         "uniform",
			distribution: simulator.DurationDistribution{Name: simulator.WireUniform, Min: 1, Max: 5},
			expected: []services.ParameterInput{
				{Name: models.ParamMin, Value: 1},
				{Name: models.ParamMax, Value: 5},
			},
		},
		{
			name:         "normal",
			distribution: simulator.DurationDistribution{Name: simulator.WireNormal, Mean: 10, Std: 2, Min: 5, Max: 15},
			expected: []services.ParameterInput{
				{Name: models.ParamMean, Value: 10},
				{Name: models.ParamStd, Value: 2},
				{Name: models.ParamMin, Value: 5},
				{Name: models.ParamMax, Value: 15},
			},
		},
		{
			name:         "exponential",
			distribution: simulator.DurationDistribution{Name: simulator.WireExponential, Mean: 30, Min: 10, Max: 90},
			expected: []services.ParameterInput{
				{Name: models.ParamMean, Value: 30},
				{Name: models.ParamMin, Value: 10},
				{Name: models.ParamMax, Value: 90},
			},
		},
		{
			name:         "gamma",
			distribution: simulator.DurationDistribution{Name: simulator.WireGamma, Mean: 8, Var: 4, Min: 2, Max: 20},
			expected: []services.ParameterInput{
				{Name: models.ParamMean, Value: 8},
				{Name: models.ParamVar, Value: 4},
				{Name: models.ParamMin, Value: 2},
				{Name: models.ParamMax, Value: 20},
			},
		},
		{
			name:         "fixed drops the unused bounds",
			distribution: simulator.DurationDistribution{Name: simulator.WireFixed, Mean: 60, Min: 1, Max: 2},
			expected: []services.ParameterInput{
				{Name: models.ParamMean, Value: 60},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := wireToParameters(&tt.distribution)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestWireToParametersUnknownKind(t *testing.T) {
	_, err := wireToParameters(&simulator.DurationDistribution{Name: "poisson"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownDistribution))
}

func TestPeriodsToIntervals(t *testing.T) {
	intervals, err := periodsToIntervals([]simulator.TimePeriod{
		{From: "MONDAY", To: "FRIDAY", BeginTime: "9:0", EndTime: "17:30"},
		{From: "Saturday", To: "Saturday", BeginTime: "10:00:00", EndTime: "14:00:00"},
	})
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.Equal(t, models.CalendarInterval{
		StartDay: models.Monday,
		EndDay:   models.Friday,
		StartHour: 9, StartMinute: 0,
		EndHour: 17, EndMinute: 30,
	}, intervals[0])

	// Seconds, when present, are tolerated and discarded.
	assert.Equal(t, models.CalendarInterval{
		StartDay: models.Saturday,
		EndDay:   models.Saturday,
		StartHour: 10, StartMinute: 0,
		EndHour: 14, EndMinute: 0,
	}, intervals[1])
}

func TestPeriodsToIntervalsRejectsBadInput(t *testing.T) {
	_, err := periodsToIntervals([]simulator.TimePeriod{
		{From: "FUNDAY", To: "FRIDAY", BeginTime: "9:0", EndTime: "17:0"},
	})
	require.Error(t, err)

	_, err = periodsToIntervals([]simulator.TimePeriod{
		{From: "MONDAY", To: "FRIDAY", BeginTime: "nine", EndTime: "17:0"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed calendar time")

	_, err = periodsToIntervals([]simulator.TimePeriod{
		{From: "MONDAY", To: "FRIDAY", BeginTime: "9", EndTime: "17:0"},
	})
	require.Error(t, err)
}
