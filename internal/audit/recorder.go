package audit

import (
	"log/slog"
)

// Recorder accepts events from request paths without blocking them. Events
// flow through a buffered channel to a Worker; when the buffer is full the
// event is dropped and counted in the log — the audit trail is best-effort
// and must never fail a registration or consumption.
type Recorder struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewRecorder(bufferSize int, logger *slog.Logger) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Recorder{
		inbox:  make(chan Event, bufferSize),
		logger: logger,
	}
}

// Emit enqueues an event. Non-blocking; nil receivers are no-ops so services
// can run without auditing in tests.
func (r *Recorder) Emit(event Event) {
	if r == nil {
		return
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit buffer full, dropping event",
			"type", string(event.Type),
			"entity_id", event.EntityID,
		)
	}
}

// Inbox exposes the consumption side for the Worker.
func (r *Recorder) Inbox() <-chan Event {
	return r.inbox
}
