package student

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/sentinel"
)

// Service owns student lifecycle rules.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateParams carries validated creation input.
type CreateParams struct {
	Name         string
	DOB          time.Time
	Gender       domain.Gender
	CurrentGrade *int
	ParentID     *domain.ParentID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Student, error) {
	if !params.Gender.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid gender")
	}
	st := &Student{
		ID:           domain.StudentID(domain.NewID()),
		Name:         params.Name,
		DOB:          params.DOB,
		Gender:       params.Gender,
		CurrentGrade: params.CurrentGrade,
		ParentID:     params.ParentID,
	}
	if err := s.store.Create(ctx, st); err != nil {
		if errors.Is(err, ErrParentMissing) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Parent not found")
		}
		s.logger.ErrorContext(ctx, "student create failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create student")
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id domain.StudentID) (*WithParent, error) {
	st, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		s.logger.ErrorContext(ctx, "student lookup failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find student")
	}
	return st, nil
}

func (s *Service) List(ctx context.Context) ([]*WithParent, error) {
	students, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "student list failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list students")
	}
	return students, nil
}
