package models

// Distribution kind names as stored in the relational schema. The
// simulator wire format uses short forms ("norm", "expon", ...); the
// mapping lives in pkg/simulator.
const (
	DistUniform     = "uniform"
	DistNormal      = "normal"
	DistExponential = "exponential"
	DistLognormal   = "lognormal"
	DistGamma       = "gamma"
	DistFixed       = "fixed"
)

// Distribution parameter names recognized by the store and by the
// simulator projection. "stddev" is accepted on input and canonicalized
// to "std" on write.
const (
	ParamMean = "mean"
	ParamStd  = "std"
	ParamVar  = "var"
	ParamMin  = "min"
	ParamMax  = "max"
)

// Distribution is a named probability distribution with its numeric
// parameters, used for activity durations and case inter-arrival times.
type Distribution struct {
	ID         int64                   `json:"id"`
	Name       string                  `json:"name"`
	Parameters []DistributionParameter `json:"parameters"`
}

// DistributionParameter is one named numeric parameter of a distribution.
type DistributionParameter struct {
	ID             int64   `json:"id"`
	DistributionID int64   `json:"distribution_id"`
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
}

// Parameter returns the value of the named parameter and whether it is set.
func (d Distribution) Parameter(name string) (float64, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return 0, false
}

// RequiredParameters returns the parameter names a distribution kind
// needs, or false for an unknown kind.
func RequiredParameters(kind string) ([]string, bool) {
	switch kind {
	case DistUniform:
		return []string{ParamMin, ParamMax}, true
	case DistNormal:
		return []string{ParamMean, ParamStd, ParamMin, ParamMax}, true
	case DistExponential:
		return []string{ParamMean, ParamMin, ParamMax}, true
	case DistLognormal, DistGamma:
		return []string{ParamMean, ParamVar, ParamMin, ParamMax}, true
	case DistFixed:
		return []string{ParamMean}, true
	}
	return nil, false
}

// KnownParameterName reports whether name is one of the recognized
// distribution parameter names.
func KnownParameterName(name string) bool {
	switch name {
	case ParamMean, ParamStd, "stddev", ParamVar, ParamMin, ParamMax:
		return true
	}
	return false
}
