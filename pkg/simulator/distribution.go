package simulator

import (
	"encoding/json"
	"fmt"
)

// Wire names of the supported duration distribution kinds.
const (
	WireFixed       = "fix"
	WireNormal      = "norm"
	WireExponential = "expon"
	WireUniform     = "uniform"
	WireLognormal   = "lognorm"
	WireGamma       = "gamma"
)

// DurationDistribution is a duration (or inter-arrival) distribution in
// the engine's terms. Which of the numeric fields are meaningful depends
// on Name; the wire codec emits exactly the positional parameter list the
// engine expects for each kind.
type DurationDistribution struct {
	Name string
	Mean float64
	Std  float64
	Var  float64
	Min  float64
	Max  float64
}

// paramOrder gives the engine's positional parameter layout per kind.
var paramOrder = map[string][]string{
	WireFixed:       {"mean"},
	WireExponential: {"mean", "min", "max"},
	WireNormal:      {"mean", "std", "min", "max"},
	WireUniform:     {"min", "max"},
	WireLognormal:   {"mean", "var", "min", "max"},
	WireGamma:       {"mean", "var", "min", "max"},
}

// KnownWireName reports whether name is a supported distribution kind.
func KnownWireName(name string) bool {
	_, ok := paramOrder[name]
	return ok
}

type wireDistribution struct {
	DistributionName   string      `json:"distribution_name"`
	DistributionParams []wireParam `json:"distribution_params"`
}

type wireParam struct {
	Value float64 `json:"value"`
}

func (d DurationDistribution) field(name string) float64 {
	switch name {
	case "mean":
		return d.Mean
	case "std":
		return d.Std
	case "var":
		return d.Var
	case "min":
		return d.Min
	case "max":
		return d.Max
	}
	return 0
}

func (d *DurationDistribution) setField(name string, value float64) {
	switch name {
	case "mean":
		d.Mean = value
	case "std":
		d.Std = value
	case "var":
		d.Var = value
	case "min":
		d.Min = value
	case "max":
		d.Max = value
	}
}

// MarshalJSON encodes the distribution as
// {"distribution_name": ..., "distribution_params": [{"value": ...}, ...]}
// with the positional parameter order the engine requires.
func (d DurationDistribution) MarshalJSON() ([]byte, error) {
	order, ok := paramOrder[d.Name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution kind %q", d.Name)
	}
	wire := wireDistribution{DistributionName: d.Name}
	for _, name := range order {
		wire.DistributionParams = append(wire.DistributionParams, wireParam{Value: d.field(name)})
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the engine's positional parameter list back into
// named fields.
func (d *DurationDistribution) UnmarshalJSON(data []byte) error {
	var wire wireDistribution
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	order, ok := paramOrder[wire.DistributionName]
	if !ok {
		return fmt.Errorf("unknown distribution kind %q", wire.DistributionName)
	}
	if len(wire.DistributionParams) < len(order) {
		return fmt.Errorf("distribution %q needs %d parameters, got %d",
			wire.DistributionName, len(order), len(wire.DistributionParams))
	}
	*d = DurationDistribution{Name: wire.DistributionName}
	for i, name := range order {
		d.setField(name, wire.DistributionParams[i].Value)
	}
	return nil
}
