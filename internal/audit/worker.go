package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the recorder and persists them. A failed
// append is logged and the worker keeps running; audit persistence failures
// must not back-pressure request handling.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run blocks until ctx is cancelled, draining the inbox.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed",
					slog.String("type", string(event.Type)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
