package parent

import (
	"context"
	"errors"
	"log/slog"

	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/sentinel"
)

// Service owns parent lifecycle rules. Duplicate phone/email is pre-checked
// as a fast path; the store's unique constraints remain the authoritative
// defense against races.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Create(ctx context.Context, name, phone, email string) (*Parent, error) {
	taken, err := s.store.ContactInUse(ctx, phone, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "parent contact check failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create parent")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "Phone/Email already exists.")
	}

	p := &Parent{
		ID:    domain.ParentID(domain.NewID()),
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the race against a concurrent create with the same contact.
			return nil, dErrors.New(dErrors.CodeConflict, "Phone/Email already exists.")
		}
		s.logger.ErrorContext(ctx, "parent create failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create parent")
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id domain.ParentID) (*Parent, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Parent not found")
		}
		s.logger.ErrorContext(ctx, "parent lookup failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find parent")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Parent, error) {
	parents, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "parent list failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list parents")
	}
	return parents, nil
}

func (s *Service) Delete(ctx context.Context, id domain.ParentID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Parent not found")
		}
		s.logger.ErrorContext(ctx, "parent delete failed", "error", err.Error())
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete parent")
	}
	return nil
}
