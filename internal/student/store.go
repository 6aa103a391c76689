package student

import (
	"context"
	"errors"

	"classtrack/pkg/domain"
)

// ErrParentMissing is returned by Create when the referenced parent does not
// exist. Distinct from sentinel.ErrNotFound, which means the student itself
// is absent.
var ErrParentMissing = errors.New("parent missing")

// Store persists students.
type Store interface {
	Create(ctx context.Context, st *Student) error
	FindByID(ctx context.Context, id domain.StudentID) (*WithParent, error)
	List(ctx context.Context) ([]*WithParent, error)
}
