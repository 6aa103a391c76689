package enrollment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"classtrack/internal/audit"
	"classtrack/internal/platform/metrics"
	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/sentinel"
)

// Service decides whether a student may join a class and performs the
// registration.
//
// The conflict check (duplicate, same-day time overlap) is advisory: it runs
// outside the insert transaction and two racing requests can both pass it.
// The store's uniqueness constraint and the locked recount in Register are
// the authoritative guards; the service only translates their verdicts into
// user-visible rejections.
type Service struct {
	store   Store
	audit   *audit.Recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, rec *audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, audit: rec, metrics: m, logger: logger}
}

// Register enrolls the student in the class.
//
// Errors: CodeNotFound (class or student absent), CodeConflict (duplicate
// registration, time overlap, class full), CodeInternal otherwise. A failed
// registration leaves no registration row behind.
func (s *Service) Register(ctx context.Context, classID domain.ClassID, studentID domain.StudentID) error {
	start := time.Now()

	target, err := s.store.FindClass(ctx, classID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordRegistration(metrics.OutcomeNotFound, start)
			return dErrors.New(dErrors.CodeNotFound, "Class not found")
		}
		return s.internal(ctx, start, classID, studentID, err)
	}

	sameDay, err := s.store.ListSameDay(ctx, studentID, target.DayOfWeek)
	if err != nil {
		return s.internal(ctx, start, classID, studentID, err)
	}

	for _, existing := range sameDay {
		if existing.ClassID == classID {
			return s.reject(start, classID, studentID,
				metrics.OutcomeDuplicate, "Student already registered this class")
		}
	}

	targetSlot, err := domain.ParseTimeSlot(target.TimeSlot)
	if err != nil {
		// A stored class with an unparseable slot violates the creation
		// invariant; surface loudly instead of skipping the check.
		s.logger.ErrorContext(ctx, "stored class has invalid time slot",
			"class_id", string(classID), "time_slot", target.TimeSlot)
		s.metrics.RecordRegistration(metrics.OutcomeError, start)
		return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "class has invalid time slot")
	}
	for _, existing := range sameDay {
		slot, err := domain.ParseTimeSlot(existing.TimeSlot)
		if err != nil {
			s.logger.ErrorContext(ctx, "stored class has invalid time slot",
				"class_id", string(existing.ClassID), "time_slot", existing.TimeSlot)
			s.metrics.RecordRegistration(metrics.OutcomeError, start)
			return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "class has invalid time slot")
		}
		if targetSlot.Overlaps(slot) {
			return s.reject(start, classID, studentID, metrics.OutcomeOverlap, "Time slot conflict")
		}
	}

	if err := s.store.Register(ctx, classID, studentID); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered):
			// Race between two requests for the same student: the pre-check
			// passed for both, the constraint rejected the loser.
			return s.reject(start, classID, studentID,
				metrics.OutcomeDuplicate, "Student already registered this class")
		case errors.Is(err, ErrClassFull):
			return s.reject(start, classID, studentID, metrics.OutcomeFull, "Class is full")
		case errors.Is(err, ErrStudentMissing):
			s.metrics.RecordRegistration(metrics.OutcomeNotFound, start)
			return dErrors.New(dErrors.CodeNotFound, "Student not found")
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.RecordRegistration(metrics.OutcomeNotFound, start)
			return dErrors.New(dErrors.CodeNotFound, "Class not found")
		default:
			return s.internal(ctx, start, classID, studentID, err)
		}
	}

	s.metrics.RecordRegistration(metrics.OutcomeOK, start)
	s.audit.Emit(audit.NewEvent(audit.EventRegistrationAccepted, string(classID),
		"student "+string(studentID)))
	return nil
}

func (s *Service) reject(start time.Time, classID domain.ClassID, studentID domain.StudentID, outcome, reason string) error {
	s.metrics.RecordRegistration(outcome, start)
	s.audit.Emit(audit.NewEvent(audit.EventRegistrationRejected, string(classID),
		"student "+string(studentID)+": "+reason))
	return dErrors.New(dErrors.CodeConflict, reason)
}

func (s *Service) internal(ctx context.Context, start time.Time, classID domain.ClassID, studentID domain.StudentID, err error) error {
	s.logger.ErrorContext(ctx, "registration failed",
		"class_id", string(classID),
		"student_id", string(studentID),
		"error", err.Error(),
	)
	s.metrics.RecordRegistration(metrics.OutcomeError, start)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register student")
}
