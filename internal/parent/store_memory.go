package parent

import (
	"context"
	"sync"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// InMemory favors clarity over performance; it backs unit tests and local
// runs without a database.
type InMemory struct {
	mu      sync.RWMutex
	parents map[domain.ParentID]Parent
}

func NewInMemory() *InMemory {
	return &InMemory{parents: make(map[domain.ParentID]Parent)}
}

func (s *InMemory) Create(_ context.Context, p *Parent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.parents {
		if existing.Phone == p.Phone || existing.Email == p.Email {
			return sentinel.ErrConflict
		}
	}
	s.parents[p.ID] = *p
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ParentID) (*Parent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.parents[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]*Parent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Parent, 0, len(s.parents))
	for _, p := range s.parents {
		copied := p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemory) Delete(_ context.Context, id domain.ParentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parents[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.parents, id)
	return nil
}

func (s *InMemory) ContactInUse(_ context.Context, phone, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parents {
		if p.Phone == phone || p.Email == email {
			return true, nil
		}
	}
	return false, nil
}
