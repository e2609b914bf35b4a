package core

// Metrics records saga outcomes and adapter health
type Metrics interface {
	// SagaStep counts a saga step outcome, e.g. ("event", "initiate", "INITIATED")
	SagaStep(path, step, outcome string)
	// EventDispatched counts an inbound message by topic and result
	EventDispatched(topic, result string)
	// EventPublished counts an outbound event by destination and result
	EventPublished(destination, result string)
	// RemoteCall records the latency of a remote service call
	RemoteCall(service, result string, elapsed Duration)
}
