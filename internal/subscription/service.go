package subscription

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

// Service owns the session ledger. The exhausted pre-check is a fast path
// that avoids a write when the balance is obviously gone; the store's
// increment-and-check transaction is the authoritative guard under
// concurrency.
type Service struct {
	store   Store
	audit   *audit.Recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, rec *audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, audit: rec, metrics: m, logger: logger}
}

// CreateParams carries validated purchase input.
type CreateParams struct {
	StudentID     domain.StudentID
	PackageName   string
	StartDate     time.Time
	EndDate       time.Time
	TotalSessions int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Subscription, error) {
	if params.TotalSessions <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "totalSessions must be positive")
	}
	if params.EndDate.Before(params.StartDate) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "endDate must not be before startDate")
	}

	sub := &Subscription{
		ID:            domain.SubscriptionID(domain.NewID()),
		StudentID:     params.StudentID,
		PackageName:   params.PackageName,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		TotalSessions: params.TotalSessions,
		UsedSessions:  0,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrStudentMissing) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		s.logger.ErrorContext(ctx, "subscription create failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create subscription")
	}
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id domain.SubscriptionID) (*Subscription, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Subscription not found")
		}
		s.logger.ErrorContext(ctx, "subscription lookup failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find subscription")
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context) ([]*Subscription, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "subscription list failed", "error", err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list subscriptions")
	}
	return subs, nil
}

// ConsumeSession spends one session from the subscription's balance.
//
// Errors: CodeNotFound, CodeConflict (no sessions left), CodeInternal. A
// rejected consumption leaves used_sessions unchanged.
func (s *Service) ConsumeSession(ctx context.Context, id domain.SubscriptionID) error {
	start := time.Now()

	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordConsumption(metrics.OutcomeNotFound, start)
			return dErrors.New(dErrors.CodeNotFound, "Subscription not found")
		}
		return s.internal(ctx, start, id, err)
	}

	if sub.UsedSessions >= sub.TotalSessions {
		return s.exhausted(start, id)
	}

	if err := s.store.ConsumeSession(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrSessionsExhausted):
			// Lost the race against concurrent consumers after the fast
			// path passed; the store rolled the increment back.
			return s.exhausted(start, id)
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.RecordConsumption(metrics.OutcomeNotFound, start)
			return dErrors.New(dErrors.CodeNotFound, "Subscription not found")
		default:
			return s.internal(ctx, start, id, err)
		}
	}

	s.metrics.RecordConsumption(metrics.OutcomeOK, start)
	s.audit.Emit(audit.NewEvent(audit.EventSessionConsumed, string(id), ""))
	return nil
}

func (s *Service) exhausted(start time.Time, id domain.SubscriptionID) error {
	s.metrics.RecordConsumption(metrics.OutcomeExhausted, start)
	s.audit.Emit(audit.NewEvent(audit.EventSessionRejected, string(id), "No sessions left"))
	return dErrors.New(dErrors.CodeConflict, "No sessions left")
}

func (s *Service) internal(ctx context.Context, start time.Time, id domain.SubscriptionID, err error) error {
	s.logger.ErrorContext(ctx, "session consumption failed",
		"subscription_id", string(id),
		"error", err.Error(),
	)
	s.metrics.RecordConsumption(metrics.OutcomeError, start)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to use session")
}
