package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/core/ports"
)

const subscriberBuffer = 64

// Bus is an in-process event bus. Publishing fans the event out to every
// active subscriber; a subscriber that falls behind its buffer drops events
// rather than blocking the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.Event
	nextID int
	closed bool
}

// NewBus creates an empty in-memory bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan domain.Event)}
}

var (
	_ ports.EventPublisher  = (*Bus)(nil)
	_ ports.EventSubscriber = (*Bus)(nil)
)

// Publish delivers the event to all current subscribers.
func (b *Bus) Publish(_ context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a new subscriber channel. The returned cancel func
// removes the subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan domain.Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close removes all subscribers and closes their channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// WaitFor blocks until an event with the given name and entity ID arrives or
// the timeout elapses. Intended for callers that need read-your-write
// semantics on top of the asynchronous mutation path.
func (b *Bus) WaitFor(ctx context.Context, name, entityID string, timeout time.Duration) (domain.Event, bool) {
	ch, cancel := b.Subscribe()
	defer cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return domain.Event{}, false
			}
			if event.Name == name && event.EntityID == entityID {
				return event, true
			}
		case <-timer.C:
			return domain.Event{}, false
		case <-ctx.Done():
			return domain.Event{}, false
		}
	}
}
