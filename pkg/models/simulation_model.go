package models

// SimulationModel is the aggregate root. It owns resource profiles and
// gateways (cascade-deleted with the model) and references one case
// arrival. A model starts empty and is populated incrementally across a
// conversation.
//
// Only a fraction of the simulator's model is supported: resource
// profiles, gateways, and case arrival.
type SimulationModel struct {
	ID               int64             `json:"id"`
	ResourceProfiles []ResourceProfile `json:"resource_profiles"`
	Gateways         []Gateway         `json:"gateways"`
	CaseArrival      *CaseArrival      `json:"case_arrival,omitempty"`
}
