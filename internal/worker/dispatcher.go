package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/core/ports"
)

// Task is one queued mutation. Execute runs the actual state change; on
// success an event with the given name and entity ID is published.
type Task struct {
	EventName string
	EntityID  string
	Tenant    string
	Execute   func(ctx context.Context) error
}

// Dispatcher runs mutation tasks on a fixed pool of workers fed from a
// bounded queue. Submit rejects when the queue is full so callers can shed
// load instead of blocking request handlers.
type Dispatcher struct {
	queue     chan Task
	publisher ports.EventPublisher
	logger    *slog.Logger
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity and starts its workers.
func NewDispatcher(workerCount, queueCapacity int, publisher ports.EventPublisher, logger *slog.Logger) *Dispatcher {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueCapacity < 1 {
		queueCapacity = 1
	}
	d := &Dispatcher{
		queue:     make(chan Task, queueCapacity),
		publisher: publisher,
		logger:    logger,
	}
	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	return d
}

// Submit enqueues a task. Returns an error when the queue is at capacity.
func (d *Dispatcher) Submit(task Task) error {
	select {
	case d.queue <- task:
		return nil
	default:
		return fmt.Errorf("command queue is full, rejecting %s for %s", task.EventName, task.EntityID)
	}
}

// Stop closes the queue and waits for in-flight tasks to drain.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for task := range d.queue {
		d.run(id, task)
	}
}

func (d *Dispatcher) run(workerID int, task Task) {
	ctx := context.Background()
	start := time.Now()

	err := task.Execute(ctx)
	if err != nil {
		d.logger.Error("task failed",
			slog.Int("worker", workerID),
			slog.String("event", task.EventName),
			slog.String("entity_id", task.EntityID),
			slog.String("error", err.Error()),
		)
		return
	}

	d.logger.Info("task completed",
		slog.Int("worker", workerID),
		slog.String("event", task.EventName),
		slog.String("entity_id", task.EntityID),
		slog.Duration("took", time.Since(start)),
	)

	if d.publisher == nil {
		return
	}
	event := domain.Event{
		Name:       task.EventName,
		EntityID:   task.EntityID,
		Tenant:     task.Tenant,
		OccurredAt: time.Now().UTC(),
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("event publish failed",
			slog.String("event", task.EventName),
			slog.String("entity_id", task.EntityID),
			slog.String("error", err.Error()),
		)
	}
}
