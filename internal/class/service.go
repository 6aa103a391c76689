package class

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/sentinel"
)

// Service owns class lifecycle rules. Day and time slot are re-validated
// here so no unvalidated value reaches the store, regardless of transport.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateParams carries creation input before domain validation.
type CreateParams struct {
	Name        string
	Subject     string
	DayOfWeek   int
	TimeSlot    string
	TeacherName string
	MaxStudents int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Class, error) {
	day, err := domain.ParseDayOfWeek(params.DayOfWeek)
	if err != nil {
		return nil, err
	}
	slot, err := domain.ParseTimeSlot(params.TimeSlot)
	if err != nil {
		return nil, err
	}
	if params.MaxStudents <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "maxStudents must be positive")
	}

	c := &Class{
		ID:          domain.ClassID(domain.NewID()),
		Name:        params.Name,
		Subject:     params.Subject,
		DayOfWeek:   day,
		TimeSlot:    slot.String(),
		TeacherName: params.TeacherName,
		MaxStudents: params.MaxStudents,
	}
	if err := s.store.Create(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "class create failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create class")
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id domain.ClassID) (*Class, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Class not found")
		}
		s.logger.ErrorContext(ctx, "class lookup failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find class")
	}
	return c, nil
}

// FindByDay lists classes, optionally filtered to one day of the week.
func (s *Service) FindByDay(ctx context.Context, day *domain.DayOfWeek) ([]*Class, error) {
	classes, err := s.store.ListByDay(ctx, day)
	if err != nil {
		s.logger.ErrorContext(ctx, "class list failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list classes")
	}
	return classes, nil
}

// ListWithCounts returns every class annotated with its registration count.
// The list and the counts are fetched concurrently; the count is a snapshot
// and may lag concurrent registrations by design.
func (s *Service) ListWithCounts(ctx context.Context) ([]*WithCount, error) {
	var (
		classes []*Class
		counts  map[domain.ClassID]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		classes, err = s.store.ListByDay(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.store.RegistrationCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "class listing with counts failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list classes")
	}

	out := make([]*WithCount, 0, len(classes))
	for _, c := range classes {
		out = append(out, &WithCount{Class: *c, Registered: counts[c.ID]})
	}
	return out, nil
}
