// Package analytics is the visit-event collaborator. Recording is
// best-effort and side-effect-only: the dispatcher detaches every event
// from the request path, and a failed insert ends in a log line, never
// in a response.
package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventStorefrontVisit is recorded once per successful public render.
const EventStorefrontVisit = "storefront_visit"

// Event is one analytics signal tied to a store.
type Event struct {
	ID         string
	StoreID    int64
	Name       string
	Metadata   map[string]string
	OccurredAt time.Time
}

// Recorder persists events. Implementations may fail; callers using the
// Dispatcher never see those failures.
type Recorder interface {
	RecordEvent(ctx context.Context, event Event) error
}

// MySQLRecorder writes events into the 'store_events' table.
type MySQLRecorder struct {
	DB *sql.DB
}

func NewMySQLRecorder(db *sql.DB) *MySQLRecorder {
	return &MySQLRecorder{DB: db}
}

func (r *MySQLRecorder) RecordEvent(ctx context.Context, event Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO store_events (id, store_id, event_name, metadata, occurred_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err = r.DB.ExecContext(ctx, query,
		event.ID, event.StoreID, event.Name, metadata, event.OccurredAt)
	return err
}

// Dispatcher fires events on detached goroutines with their own timeout,
// so a slow or broken recorder can never block or fail a render.
type Dispatcher struct {
	recorder Recorder
	log      *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(recorder Recorder, log *zap.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{recorder: recorder, log: log, timeout: timeout}
}

// Dispatch records the event asynchronously. It returns immediately; the
// caller gets no result and no error. Recorder failures are logged and
// swallowed, with no retry in the request path.
func (d *Dispatcher) Dispatch(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.recorder.RecordEvent(ctx, event); err != nil {
			d.log.Warn("analytics event dropped",
				zap.String("event", event.Name),
				zap.Int64("storeId", event.StoreID),
				zap.Error(err))
		}
	}()
}

// Close waits for in-flight dispatches. Only meant for shutdown and tests.
func (d *Dispatcher) Close() {
	d.wg.Wait()
}
