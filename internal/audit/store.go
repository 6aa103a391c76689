package audit

import "context"

// Store is the audit persistence sink. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ListByEntity returns events for one entity, newest first.
	ListByEntity(ctx context.Context, entityID string) ([]Event, error)
}
