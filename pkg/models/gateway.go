package models

// Gateway is a branching point in a process. It owns its outgoing sequence
// flows and belongs to one simulation model.
type Gateway struct {
	ID                int64          `json:"id"`
	SimulationModelID int64          `json:"simulation_model_id"`
	BpmnID            string         `json:"bpmn_id"`
	OutgoingFlows     []SequenceFlow `json:"outgoing_sequence_flows"`
}

// SequenceFlow is an outgoing path of a gateway with its branching
// probability. Probabilities of one gateway's flows are intended to sum
// to 1 but the store does not enforce it.
type SequenceFlow struct {
	ID              int64   `json:"id"`
	SourceGatewayID int64   `json:"source_gateway_id"`
	BpmnID          string  `json:"bpmn_id"`
	Probability     float64 `json:"probability"`
}
