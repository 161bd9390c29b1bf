package shared

import "context"

// EventPublisher publishes domain events raised by aggregates. The engine
// only depends on this port; delivery (bus, outbox, broker) is the concern
// of the hosting service.
type EventPublisher interface {
	// Publish publishes one or more domain events
	Publish(ctx context.Context, events ...DomainEvent) error
}
