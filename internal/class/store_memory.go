package class

import (
	"context"
	"sync"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// InMemory backs unit tests. Counts are seeded explicitly since registration
// rows live in the enrollment store.
type InMemory struct {
	mu      sync.RWMutex
	classes map[domain.ClassID]Class
	counts  map[domain.ClassID]int
}

func NewInMemory() *InMemory {
	return &InMemory{
		classes: make(map[domain.ClassID]Class),
		counts:  make(map[domain.ClassID]int),
	}
}

// SeedCount sets a registration count for listing tests.
func (s *InMemory) SeedCount(id domain.ClassID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[id] = n
}

func (s *InMemory) Create(_ context.Context, c *Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[c.ID] = *c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ClassID) (*Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.classes[id]; ok {
		copied := c
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListByDay(_ context.Context, day *domain.DayOfWeek) ([]*Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Class
	for _, c := range s.classes {
		if day != nil && c.DayOfWeek != *day {
			continue
		}
		copied := c
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemory) RegistrationCounts(_ context.Context) (map[domain.ClassID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.ClassID]int, len(s.counts))
	for id, n := range s.counts {
		out[id] = n
	}
	return out, nil
}
