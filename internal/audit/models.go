package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a recorded occurrence on the enrollment or session paths.
type EventType string

const (
	EventRegistrationAccepted EventType = "class.registration_accepted"
	EventRegistrationRejected EventType = "class.registration_rejected"
	EventSessionConsumed      EventType = "subscription.session_consumed"
	EventSessionRejected      EventType = "subscription.session_rejected"
)

// Event is an append-only audit record. EntityID is the class or
// subscription the event concerns; Detail carries the human-readable reason.
type Event struct {
	ID        uuid.UUID
	Type      EventType
	EntityID  string
	Detail    string
	Timestamp time.Time
}

// NewEvent builds a timestamped event.
func NewEvent(eventType EventType, entityID, detail string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		EntityID:  entityID,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}
