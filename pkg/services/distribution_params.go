package services

import (
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
)

// distributionAliases maps the simulator's short distribution names onto
// the stored long forms. Long forms pass through unchanged.
var distributionAliases = map[string]string{
	"norm":    models.DistNormal,
	"expon":   models.DistExponential,
	"lognorm": models.DistLognormal,
	"fix":     models.DistFixed,
}

// normalizeDistribution validates a distribution kind and its parameters
// and applies the documented default policy: for every kind except fixed,
// a missing min or max is filled with the mean when a mean is present.
// The stored parameter name for the standard deviation is "std"; "stddev"
// is accepted on input.
func normalizeDistribution(name string, parameters []ParameterInput) (string, []models.DistributionParameter, error) {
	kind, ok := distributionAliases[name]
	if !ok {
		kind = name
	}
	if _, known := models.RequiredParameters(kind); !known {
		return "", nil, apperrors.UnknownDistributionKind(name)
	}

	seen := map[string]bool{}
	params := make([]models.DistributionParameter, 0, len(parameters))
	var mean float64
	var hasMean bool
	for _, p := range parameters {
		if !models.KnownParameterName(p.Name) {
			return "", nil, apperrors.UnknownParameterKind(p.Name)
		}
		paramName := p.Name
		if paramName == "stddev" {
			paramName = models.ParamStd
		}
		if paramName == models.ParamMean {
			mean, hasMean = p.Value, true
		}
		seen[paramName] = true
		params = append(params, models.DistributionParameter{Name: paramName, Value: p.Value})
	}

	if kind != models.DistFixed && hasMean {
		if !seen[models.ParamMin] {
			params = append(params, models.DistributionParameter{Name: models.ParamMin, Value: mean})
		}
		if !seen[models.ParamMax] {
			params = append(params, models.DistributionParameter{Name: models.ParamMax, Value: mean})
		}
	}
	return kind, params, nil
}
