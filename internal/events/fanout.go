package events

import (
	"context"
	"errors"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/core/ports"
)

// FanOut publishes each event to every configured publisher and joins their
// errors. Used to feed the in-process bus and Kafka from one call site.
type FanOut struct {
	publishers []ports.EventPublisher
}

// NewFanOut creates a composite publisher. Nil entries are ignored.
func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	filtered := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return &FanOut{publishers: filtered}
}

var _ ports.EventPublisher = (*FanOut)(nil)

// Publish delivers the event to all publishers, collecting failures.
func (f *FanOut) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
