package ports

import (
	"context"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
)

// EventPublisher publishes domain events after successfully applied mutations.
type EventPublisher interface {
	// Publish delivers one event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event domain.Event) error
}

// EventSubscriber allows callers to observe published events, e.g. to wait for
// an accepted command to complete.
type EventSubscriber interface {
	// Subscribe returns a channel of future events and a cancel function that
	// releases the subscription.
	Subscribe() (<-chan domain.Event, func())
}
