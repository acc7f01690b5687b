package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/events/memory"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/worker"
	"github.com/gin-gonic/gin"
)

// waitTimeout bounds how long a wait=true caller blocks on the completion event.
const waitTimeout = 5 * time.Second

const (
	statusAccepted  = "ACCEPTED"
	statusCompleted = "COMPLETED"
)

// CommandAcceptedResponse acknowledges an accepted mutation command. The
// mutation is applied by a worker after this response; COMPLETED is only
// reported when the caller asked to wait and the completion event arrived.
type CommandAcceptedResponse struct {
	ID     string `json:"id"`
	Event  string `json:"event"`
	Status string `json:"status"`
}

// commandRunner submits mutation commands to the worker pool and optionally
// waits for their completion events.
type commandRunner struct {
	dispatcher *worker.Dispatcher
	bus        *memory.Bus
}

// submit queues the mutation and writes the acceptance response. The execute
// closure runs on a worker with a fresh context carrying the caller's identity
// and the request logger, since the request context ends with this response.
func (r *commandRunner) submit(c *gin.Context, eventName, entityID string, execute func(ctx context.Context) error) {
	reqCtx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(reqCtx)
	userID, _ := middleware.GetUserIDFromContext(reqCtx)
	tenant, _ := middleware.GetTenantFromContext(reqCtx)

	task := worker.Task{
		EventName: eventName,
		EntityID:  entityID,
		Tenant:    tenant,
		Execute: func(ctx context.Context) error {
			ctx = middleware.ContextWithIdentity(ctx, userID, tenant)
			ctx = middleware.ContextWithLogger(ctx, logger)
			return execute(ctx)
		},
	}

	wait := c.Query("wait") == "true" && r.bus != nil

	// Subscribe before submitting so a fast worker cannot publish the
	// completion event before the waiter is listening.
	var (
		eventCh <-chan domain.Event
		cancel  func()
	)
	if wait {
		eventCh, cancel = r.bus.Subscribe()
		defer cancel()
	}

	if err := r.dispatcher.Submit(task); err != nil {
		logger.Warn("Command rejected, queue full", slog.String("event", eventName), slog.String("entity_id", entityID))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "command queue is full, retry later"})
		return
	}

	resp := CommandAcceptedResponse{ID: entityID, Event: eventName, Status: statusAccepted}

	if wait {
		timer := time.NewTimer(waitTimeout)
		defer timer.Stop()
		for {
			select {
			case event, ok := <-eventCh:
				if !ok {
					c.JSON(http.StatusAccepted, resp)
					return
				}
				if event.Name == eventName && event.EntityID == entityID {
					resp.Status = statusCompleted
					c.JSON(http.StatusOK, resp)
					return
				}
			case <-timer.C:
				// Timed out or the command failed; the caller polls or re-reads.
				c.JSON(http.StatusAccepted, resp)
				return
			case <-reqCtx.Done():
				c.JSON(http.StatusAccepted, resp)
				return
			}
		}
	}

	c.JSON(http.StatusAccepted, resp)
}
