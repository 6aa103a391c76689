package subscription

import (
	"context"
	"errors"

	"classtrack/pkg/domain"
)

// ErrSessionsExhausted means a consumption would push used past total. The
// increment that detected it has been rolled back.
var ErrSessionsExhausted = errors.New("sessions exhausted")

// ErrStudentMissing means the referenced student does not exist.
var ErrStudentMissing = errors.New("student missing")

// Store persists subscriptions.
type Store interface {
	Create(ctx context.Context, sub *Subscription) error
	FindByID(ctx context.Context, id domain.SubscriptionID) (*Subscription, error)
	List(ctx context.Context) ([]*Subscription, error)
	// ConsumeSession atomically increments used_sessions by one and verifies
	// the result against total_sessions inside a single transaction. The
	// increment must be column-level (used = used + 1), never a
	// read-modify-write of a fetched value, so concurrent consumers each
	// observe the other's increment.
	//
	// Errors: sentinel.ErrNotFound, ErrSessionsExhausted.
	ConsumeSession(ctx context.Context, id domain.SubscriptionID) error
}
