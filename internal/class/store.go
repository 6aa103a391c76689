package class

import (
	"context"

	"classtrack/pkg/domain"
)

// Store persists classes. Registration rows are owned by the enrollment
// package; this store only reads their per-class counts.
type Store interface {
	Create(ctx context.Context, c *Class) error
	FindByID(ctx context.Context, id domain.ClassID) (*Class, error)
	// ListByDay returns all classes, or only those on the given day when
	// day is non-nil.
	ListByDay(ctx context.Context, day *domain.DayOfWeek) ([]*Class, error)
	// RegistrationCounts returns the current registration count per class.
	// Classes with no registrations are absent from the map.
	RegistrationCounts(ctx context.Context) (map[domain.ClassID]int, error)
}
