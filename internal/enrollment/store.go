package enrollment

import (
	"context"
	"errors"

	"classtrack/internal/class"
	"classtrack/pkg/domain"
)

// Business errors surfaced by the registration stores. The service maps them
// to user-visible rejections.
var (
	// ErrAlreadyRegistered means the (class, student) pair already exists.
	// Raised by the advisory pre-check and, authoritatively, by the store's
	// uniqueness constraint when two requests race past the pre-check.
	ErrAlreadyRegistered = errors.New("student already registered")
	// ErrClassFull means the post-insert recount exceeded the class
	// capacity and the insert was rolled back.
	ErrClassFull = errors.New("class full")
	// ErrStudentMissing means the student referenced by the registration
	// does not exist.
	ErrStudentMissing = errors.New("student missing")
)

// Registration is the (class, student) relation. No independent identity;
// the pair is unique.
type Registration struct {
	ClassID   domain.ClassID   `json:"classId"`
	StudentID domain.StudentID `json:"studentId"`
}

// DaySchedule is one existing registration of a student projected to what
// the conflict check needs: the class identity and its slot.
type DaySchedule struct {
	ClassID  domain.ClassID
	TimeSlot string
}

// Store gives the enrollment service its two views of the world: the
// student's same-day schedule for the advisory conflict check, and the
// atomic capacity-guarded insert.
type Store interface {
	// FindClass returns the target class, or sentinel.ErrNotFound.
	FindClass(ctx context.Context, id domain.ClassID) (*class.Class, error)
	// ListSameDay returns the student's registrations whose class falls on
	// the given day of week.
	ListSameDay(ctx context.Context, studentID domain.StudentID, day domain.DayOfWeek) ([]DaySchedule, error)
	// Register inserts the pair inside one transaction that also recounts
	// the class's registrations. The insert is rolled back when the count
	// would exceed the class capacity.
	//
	// Errors: sentinel.ErrNotFound (class absent), ErrStudentMissing,
	// ErrAlreadyRegistered, ErrClassFull.
	Register(ctx context.Context, classID domain.ClassID, studentID domain.StudentID) error
}
