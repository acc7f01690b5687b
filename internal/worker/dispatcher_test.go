package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/events/memory"
	"github.com/fincore/bookkeeper_svc/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherPublishesEventOnSuccess(t *testing.T) {
	bus := memory.NewBus()
	defer bus.Close()

	d := worker.NewDispatcher(2, 8, bus, discardLogger())
	defer d.Stop()

	ch, cancel := bus.Subscribe()
	defer cancel()

	err := d.Submit(worker.Task{
		EventName: domain.EventPostLedger,
		EntityID:  "1000",
		Tenant:    "acme",
		Execute:   func(ctx context.Context) error { return nil },
	})
	require.NoError(t, err)

	select {
	case event := <-ch:
		assert.Equal(t, domain.EventPostLedger, event.Name)
		assert.Equal(t, "1000", event.EntityID)
		assert.Equal(t, "acme", event.Tenant)
		assert.False(t, event.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestDispatcherDoesNotPublishOnFailure(t *testing.T) {
	bus := memory.NewBus()
	defer bus.Close()

	d := worker.NewDispatcher(1, 8, bus, discardLogger())

	ch, cancel := bus.Subscribe()
	defer cancel()

	err := d.Submit(worker.Task{
		EventName: domain.EventPostAccount,
		EntityID:  "1000.100",
		Execute:   func(ctx context.Context) error { return errors.New("boom") },
	})
	require.NoError(t, err)

	d.Stop()

	select {
	case event := <-ch:
		t.Fatalf("unexpected event %s for %s", event.Name, event.EntityID)
	default:
	}
}

func TestDispatcherRejectsWhenQueueFull(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	defer once.Do(func() { close(release) })

	d := worker.NewDispatcher(1, 1, nil, discardLogger())
	defer d.Stop()

	blocking := worker.Task{
		EventName: domain.EventPostJournalEntry,
		EntityID:  "tx-1",
		Execute: func(ctx context.Context) error {
			<-release
			return nil
		},
	}

	// First task occupies the worker, second fills the queue.
	require.NoError(t, d.Submit(blocking))
	require.Eventually(t, func() bool {
		return d.Submit(blocking) == nil
	}, time.Second, 10*time.Millisecond)

	err := d.Submit(worker.Task{
		EventName: domain.EventPostJournalEntry,
		EntityID:  "tx-3",
		Execute:   func(ctx context.Context) error { return nil },
	})
	assert.Error(t, err)

	once.Do(func() { close(release) })
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	var mu sync.Mutex
	done := 0

	d := worker.NewDispatcher(2, 16, nil, discardLogger())
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Submit(worker.Task{
			EventName: domain.EventPostAccount,
			EntityID:  "a",
			Execute: func(ctx context.Context) error {
				mu.Lock()
				done++
				mu.Unlock()
				return nil
			},
		}))
	}
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, done)
}

func TestBusWaitFor(t *testing.T) {
	bus := memory.NewBus()
	defer bus.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = bus.Publish(context.Background(), domain.Event{Name: domain.EventPutLedger, EntityID: "2000"})
	}()

	event, ok := bus.WaitFor(context.Background(), domain.EventPutLedger, "2000", 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, "2000", event.EntityID)

	_, ok = bus.WaitFor(context.Background(), domain.EventPutLedger, "absent", 50*time.Millisecond)
	assert.False(t, ok)
}
