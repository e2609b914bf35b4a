package messaging

import (
	"context"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
)

// Outbound destinations
const (
	DestinationSuccess = "success"
	DestinationFailure = "failure"
)

// DestinationFor selects the outbound destination by the event's error flag
func DestinationFor(event *entity.SagaEvent) string {
	if event.Error {
		return DestinationFailure
	}
	return DestinationSuccess
}

// EventPublisher emits saga events to same-process subscribers and downstream services
type EventPublisher interface {
	// Publish emits the event and reports whether it was accepted
	//
	// Possible errors:
	// - EmitError: If the in-process stream rejected the event or broker delivery failed
	Publish(ctx context.Context, event *entity.SagaEvent) error
}

// BrokerPublisher writes an event to a named outbound broker destination
type BrokerPublisher interface {
	PublishTo(ctx context.Context, destination string, event *entity.SagaEvent) error
}

// Broadcaster is a bounded in-process stream of saga events with many subscribers
type Broadcaster interface {
	// TryPublish hands the event to the stream without blocking
	TryPublish(event *entity.SagaEvent) error

	// Subscribe attaches a subscriber; the returned func detaches it
	Subscribe() (<-chan *entity.SagaEvent, func())
}
