package subscription

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classtrack/pkg/domain"
	dErrors "classtrack/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(store Store) *Service {
	return NewService(store, nil, nil, testLogger())
}

func seedSubscription(t *testing.T, store *InMemory, total, used int) domain.SubscriptionID {
	t.Helper()
	sub := &Subscription{
		ID:            domain.SubscriptionID(domain.NewID()),
		StudentID:     domain.StudentID("student-01"),
		PackageName:   "Standard 8",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalSessions: total,
		UsedSessions:  used,
	}
	require.NoError(t, store.Create(context.Background(), sub))
	return sub.ID
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects non-positive session totals", func(t *testing.T) {
		svc := newTestService(NewInMemory())
		for _, total := range []int{0, -1} {
			_, err := svc.Create(ctx, CreateParams{
				StudentID:     "student-01",
				PackageName:   "Standard 8",
				StartDate:     start,
				EndDate:       start.AddDate(0, 6, 0),
				TotalSessions: total,
			})
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("rejects endDate before startDate", func(t *testing.T) {
		svc := newTestService(NewInMemory())
		_, err := svc.Create(ctx, CreateParams{
			StudentID:     "student-01",
			PackageName:   "Standard 8",
			StartDate:     start,
			EndDate:       start.AddDate(0, 0, -1),
			TotalSessions: 8,
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("starts with zero used sessions", func(t *testing.T) {
		store := NewInMemory()
		svc := newTestService(store)
		sub, err := svc.Create(ctx, CreateParams{
			StudentID:     "student-01",
			PackageName:   "Standard 8",
			StartDate:     start,
			EndDate:       start.AddDate(0, 6, 0),
			TotalSessions: 8,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, sub.UsedSessions)
		assert.Len(t, string(sub.ID), 10)

		stored, err := store.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, stored.TotalSessions)
	})
}

func TestConsumeSession(t *testing.T) {
	ctx := context.Background()

	t.Run("spends one session", func(t *testing.T) {
		store := NewInMemory()
		id := seedSubscription(t, store, 3, 0)
		svc := newTestService(store)

		require.NoError(t, svc.ConsumeSession(ctx, id))

		sub, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, sub.UsedSessions)
	})

	t.Run("allows spending the last session", func(t *testing.T) {
		store := NewInMemory()
		id := seedSubscription(t, store, 3, 2)
		svc := newTestService(store)

		require.NoError(t, svc.ConsumeSession(ctx, id))

		sub, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 3, sub.UsedSessions)
	})

	t.Run("rejects when exhausted", func(t *testing.T) {
		store := NewInMemory()
		id := seedSubscription(t, store, 3, 3)
		svc := newTestService(store)

		err := svc.ConsumeSession(ctx, id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(t, err.Error(), "No sessions left")

		sub, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 3, sub.UsedSessions)
	})

	t.Run("rejects unknown subscription", func(t *testing.T) {
		svc := newTestService(NewInMemory())
		err := svc.ConsumeSession(ctx, domain.SubscriptionID("missing"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// The balance must hold under concurrency: with 3 sessions left and 5 racing
// consumers, exactly 3 succeed and used never commits above total.
func TestConsumeSessionConcurrent(t *testing.T) {
	const remaining = 3
	const contenders = 5

	store := NewInMemory()
	id := seedSubscription(t, store, remaining, 0)
	svc := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.ConsumeSession(context.Background(), id)
		}(i)
	}
	wg.Wait()

	var ok, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case dErrors.HasCode(err, dErrors.CodeConflict):
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, remaining, ok)
	assert.Equal(t, contenders-remaining, exhausted)

	sub, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, remaining, sub.UsedSessions)
}
