package subscription

import (
	"context"
	"sync"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// InMemory holds subscriptions behind one mutex. The lock makes the
// increment-and-check atomic with respect to other goroutines, matching the
// row-lock semantics of the PostgreSQL store.
type InMemory struct {
	mu   sync.Mutex
	subs map[domain.SubscriptionID]Subscription
}

func NewInMemory() *InMemory {
	return &InMemory{subs: make(map[domain.SubscriptionID]Subscription)}
}

func (s *InMemory) Create(_ context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = *sub
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.SubscriptionID) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[id]; ok {
		copied := sub
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		copied := sub
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemory) ConsumeSession(_ context.Context, id domain.SubscriptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if sub.UsedSessions+1 > sub.TotalSessions {
		// Equivalent to increment-check-rollback: the map is only written
		// when the check passes.
		return ErrSessionsExhausted
	}
	sub.UsedSessions++
	s.subs[id] = sub
	return nil
}
