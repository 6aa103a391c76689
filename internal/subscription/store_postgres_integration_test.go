//go:build integration

package subscription_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"classtrack/internal/subscription"
	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
	"classtrack/pkg/testutil/containers"
)

type SubscriptionPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *subscription.Postgres
}

func TestSubscriptionPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SubscriptionPostgresSuite))
}

func (s *SubscriptionPostgresSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = subscription.NewPostgres(s.postgres.DB)
}

func (s *SubscriptionPostgresSuite) TearDownSuite() {
	s.postgres.Terminate(context.Background())
}

func (s *SubscriptionPostgresSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "students", "parents")
	s.Require().NoError(err)
}

func (s *SubscriptionPostgresSuite) seedStudent() domain.StudentID {
	id := domain.StudentID(domain.NewID())
	_, err := s.postgres.DB.Exec(
		`INSERT INTO students (id, name, dob, gender) VALUES ($1, 'Mina Park', '2014-03-15', 'female')`,
		string(id),
	)
	s.Require().NoError(err)
	return id
}

func (s *SubscriptionPostgresSuite) newSubscription(total int) *subscription.Subscription {
	return &subscription.Subscription{
		ID:            domain.SubscriptionID(domain.NewID()),
		StudentID:     s.seedStudent(),
		PackageName:   "Standard 8",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalSessions: total,
	}
}

func (s *SubscriptionPostgresSuite) usedSessions(id domain.SubscriptionID) int {
	var used int
	err := s.postgres.DB.QueryRow(
		`SELECT used_sessions FROM subscriptions WHERE id = $1`, string(id),
	).Scan(&used)
	s.Require().NoError(err)
	return used
}

func (s *SubscriptionPostgresSuite) TestCreateAndFind() {
	ctx := context.Background()
	sub := s.newSubscription(8)
	s.Require().NoError(s.store.Create(ctx, sub))

	found, err := s.store.FindByID(ctx, sub.ID)
	s.Require().NoError(err)
	s.Equal(sub.StudentID, found.StudentID)
	s.Equal(8, found.TotalSessions)
	s.Equal(0, found.UsedSessions)
}

func (s *SubscriptionPostgresSuite) TestCreateUnknownStudent() {
	sub := s.newSubscription(8)
	sub.StudentID = domain.StudentID("ghost")
	err := s.store.Create(context.Background(), sub)
	s.Require().ErrorIs(err, subscription.ErrStudentMissing)
}

func (s *SubscriptionPostgresSuite) TestConsumeSession() {
	ctx := context.Background()
	sub := s.newSubscription(3)
	s.Require().NoError(s.store.Create(ctx, sub))

	s.Require().NoError(s.store.ConsumeSession(ctx, sub.ID))
	s.Equal(1, s.usedSessions(sub.ID))
}

func (s *SubscriptionPostgresSuite) TestConsumeLastSession() {
	ctx := context.Background()
	sub := s.newSubscription(1)
	s.Require().NoError(s.store.Create(ctx, sub))

	s.Require().NoError(s.store.ConsumeSession(ctx, sub.ID))
	s.Equal(1, s.usedSessions(sub.ID))

	err := s.store.ConsumeSession(ctx, sub.ID)
	s.Require().ErrorIs(err, subscription.ErrSessionsExhausted)
	s.Equal(1, s.usedSessions(sub.ID))
}

func (s *SubscriptionPostgresSuite) TestConsumeUnknownSubscription() {
	err := s.store.ConsumeSession(context.Background(), domain.SubscriptionID("missing"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentConsumption verifies the ledger under contention: with N
// sessions and more than N racing consumers, exactly N succeed and
// used_sessions commits at exactly N.
func (s *SubscriptionPostgresSuite) TestConcurrentConsumption() {
	ctx := context.Background()
	const total = 3
	const contenders = 5

	sub := s.newSubscription(total)
	s.Require().NoError(s.store.Create(ctx, sub))

	var wg sync.WaitGroup
	var accepted, exhausted atomic.Int32
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.ConsumeSession(ctx, sub.ID)
			if err == nil {
				accepted.Add(1)
			} else if errors.Is(err, subscription.ErrSessionsExhausted) {
				exhausted.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(total), accepted.Load(), "exactly total consumptions should succeed")
	s.Equal(int32(contenders-total), exhausted.Load(), "the rest should be rejected")
	s.Equal(total, s.usedSessions(sub.ID))
}
