package models

// ResourceProfile is a named group of resources (a role or team) within a
// simulation model.
type ResourceProfile struct {
	ID                int64      `json:"id"`
	SimulationModelID int64      `json:"simulation_model_id"`
	Name              string     `json:"name"`
	Resources         []Resource `json:"resources"`
}

// Resource is a person, machine, or other entity that performs activities.
// The calendar is a shared reference; the profile is the owning parent.
type Resource struct {
	ID                 int64                          `json:"id"`
	ProfileID          int64                          `json:"profile_id"`
	BpmnID             string                         `json:"bpmn_id"`
	Name               string                         `json:"name"`
	Amount             int                            `json:"amount"`
	CostPerHour        float64                        `json:"cost_per_hour"`
	CalendarID         int64                          `json:"calendar_id"`
	AssignedActivities []ActivityResourceDistribution `json:"assigned_activities"`
}

// Activity is a task performed by a resource. Activity identity is scoped
// to one resource, not a global task catalog; the adapters bridge this to
// the simulator's global activity ids.
type Activity struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resource_id"`
	BpmnID     string `json:"bpmn_id"`
	Name       string `json:"name"`
}

// ActivityResourceDistribution assigns a duration distribution to one
// resource performing one activity.
type ActivityResourceDistribution struct {
	ID             int64 `json:"id"`
	ActivityID     int64 `json:"activity_id"`
	ResourceID     int64 `json:"resource_id"`
	DistributionID int64 `json:"distribution_id"`
}
