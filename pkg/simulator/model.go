// Package simulator holds the in-memory form of the Prosimos scenario
// document and its JSON wire codec. The field names are a fixed external
// contract consumed by the simulation engine; they must not drift.
package simulator

// Model is a Prosimos scenario. Absent sub-components stay nil and are
// omitted from the serialized document; a model without a resource model
// is a valid terminal state, not an error.
type Model struct {
	ProcessModel             string                         `json:"process_model,omitempty"`
	GatewayProbabilities     []GatewayProbabilities         `json:"gateway_branching_probabilities,omitempty"`
	ArrivalTimeDistribution  *DurationDistribution          `json:"arrival_time_distribution,omitempty"`
	ArrivalTimeCalendar      []TimePeriod                   `json:"arrival_time_calendar,omitempty"`
	ResourceProfiles         []ResourceProfile              `json:"resource_profiles,omitempty"`
	ResourceCalendars        []Calendar                     `json:"resource_calendars,omitempty"`
	TaskResourceDistribution []ActivityResourceDistribution `json:"task_resource_distribution,omitempty"`
}

// GatewayProbabilities is a gateway's branching probability tree.
type GatewayProbabilities struct {
	GatewayID     string            `json:"gateway_id"`
	OutgoingPaths []PathProbability `json:"outgoing_paths"`
}

// PathProbability is one outgoing path of a gateway.
type PathProbability struct {
	PathID      string  `json:"path_id"`
	Probability float64 `json:"probability"`
}

// Calendar is a weekly availability calendar referenced by resources.
type Calendar struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	TimePeriods []TimePeriod `json:"time_periods"`
}

// TimePeriod is one weekly interval. Days are upper-case names; times are
// "H:M" with no zero padding, exactly as the engine expects.
type TimePeriod struct {
	From      string `json:"from"`
	To        string `json:"to"`
	BeginTime string `json:"beginTime"`
	EndTime   string `json:"endTime"`
}

// ResourceProfile is a named group of resources.
type ResourceProfile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Resources []Resource `json:"resources"`
}

// Resource is one simulated resource inside a profile.
type Resource struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Amount        int      `json:"amount"`
	CostPerHour   float64  `json:"cost_per_hour"`
	CalendarID    string   `json:"calendar_id"`
	AssignedTasks []string `json:"assigned_tasks"`
}

// ActivityResourceDistribution groups, per activity, the duration
// distribution of every resource that can perform it. This is the
// inverse of the per-resource layout used by the relational store.
type ActivityResourceDistribution struct {
	ActivityID string                 `json:"activity_id"`
	Resources  []ResourceDistribution `json:"activity_resources_distributions"`
}

// ResourceDistribution is one resource's duration distribution for an
// activity.
type ResourceDistribution struct {
	ResourceID   string               `json:"resource_id"`
	Distribution DurationDistribution `json:"distribution"`
}
