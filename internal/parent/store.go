package parent

import (
	"context"

	"classtrack/pkg/domain"
)

// Store is interface-driven to keep the domain logic testable and to allow
// swapping in-memory and PostgreSQL persistence without rewiring services.
//
// Errors: Create returns sentinel.ErrConflict when phone or email is taken;
// FindByID and Delete return sentinel.ErrNotFound for absent parents.
type Store interface {
	Create(ctx context.Context, p *Parent) error
	FindByID(ctx context.Context, id domain.ParentID) (*Parent, error)
	List(ctx context.Context) ([]*Parent, error)
	// Delete removes the parent. Dependent students, registrations and
	// subscriptions are removed by the store's cascade rules.
	Delete(ctx context.Context, id domain.ParentID) error
	// ContactInUse is the advisory fast path for duplicate phone/email
	// detection; the unique constraints in Create are authoritative.
	ContactInUse(ctx context.Context, phone, email string) (bool, error)
}
