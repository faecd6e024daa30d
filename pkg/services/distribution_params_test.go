package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

func TestNormalizeDistribution(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		parameters []ParameterInput
		wantKind   string
		wantParams []models.DistributionParameter
	}{
		{
			name: "uniform passes through",
			kind: "uniform",
			parameters: []ParameterInput{
				{Name: "min", Value: 1},
				{Name: "max", Value: 5},
			},
			wantKind: models.DistUniform,
			wantParams: []models.DistributionParameter{
				{Name: "min", Value: 1},
				{Name: "max", Value: 5},
			},
		},
		{
			name: "short name resolves to long form",
			kind: "norm",
			parameters: []ParameterInput{
				{Name: "mean", Value: 10},
				{Name: "std", Value: 2},
				{Name: "min", Value: 5},
				{Name: "max", Value: 15},
			},
			wantKind: models.DistNormal,
			wantParams: []models.DistributionParameter{
				{Name: "mean", Value: 10},
				{Name: "std", Value: 2},
				{Name: "min", Value: 5},
				{Name: "max", Value: 15},
			},
		},
		{
			name: "stddev is stored as std",
			kind: "normal",
			parameters: []ParameterInput{
				{Name: "mean", Value: 10},
				{Name: "stddev", Value: 2},
				{Name: "min", Value: 5},
				{Name: "max", Value: 15},
			},
			wantKind: models.DistNormal,
			wantParams: []models.DistributionParameter{
				{Name: "mean", Value: 10},
				{Name: "std", Value: 2},
				{Name: "min", Value: 5},
				{Name: "max", Value: 15},
			},
		},
		{
			name: "missing min and max default to the mean",
			kind: "exponential",
			parameters: []ParameterInput{
				{Name: "mean", Value: 30},
			},
			wantKind: models.DistExponential,
			wantParams: []models.DistributionParameter{
				{Name: "mean", Value: 30},
				{Name: "min", Value: 30},
				{Name: "max", Value: 30},
			},
		},
		{
			name: "only missing max is filled",
			kind: "expon",
			parameters: []ParameterInput{
				{Name: "mean", Value: 30},
				{Name: "min", Value: 10},
			},
			wantKind: models.DistExponential,
			wantParams: []models.DistributionParameter{
				{Name: "mean", Value: 30},
				{Name: "min", Value: 10},
				{Name: "max", Value: 30},
			},
		},
		{
			name: "fixed gets no bounds",
			kind: "fix",
			parameters: []ParameterInput{
				{Name: "mean", Value: 60},
			},
			wantKind: models.DistFixed,
			wantParams: []models.DistributionParameter{
				{Name: "mean", Value: 60},
			},
		},
		{
			name: "no mean means no completion",
			kind: "lognorm",
			parameters: []ParameterInput{
				{Name: "var", Value: 4},
			},
			wantKind: models.DistLognormal,
			wantParams: []models.DistributionParameter{
				{Name: "var", Value: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, params, err := normalizeDistribution(tt.kind, tt.parameters)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestNormalizeDistributionUnknownKind(t *testing.T) {
	_, _, err := normalizeDistribution("poisson", []ParameterInput{{Name: "mean", Value: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownDistribution))
	assert.Contains(t, err.Error(), "poisson")
}

func TestNormalizeDistributionUnknownParameter(t *testing.T) {
	_, _, err := normalizeDistribution("normal", []ParameterInput{{Name: "skew", Value: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownParameter))
	assert.Contains(t, err.Error(), "skew")
}
