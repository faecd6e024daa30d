package models

// CaseArrival describes how new process instances enter the system: an
// arrival calendar plus an inter-arrival time distribution. One-to-one
// with a simulation model. Both the calendar and the distribution are
// references, not owned rows.
type CaseArrival struct {
	ID                         int64 `json:"id"`
	SimulationModelID          int64 `json:"simulation_model_id"`
	CalendarID                 int64 `json:"calendar_id"`
	InterArrivalDistributionID int64 `json:"inter_arrival_distribution_id"`
}
