package student

import (
	"context"
	"sync"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// InMemory backs unit tests. Parent summaries are seeded explicitly since
// the memory stores are feature-scoped.
type InMemory struct {
	mu       sync.RWMutex
	students map[domain.StudentID]Student
	parents  map[domain.ParentID]ParentSummary
}

func NewInMemory() *InMemory {
	return &InMemory{
		students: make(map[domain.StudentID]Student),
		parents:  make(map[domain.ParentID]ParentSummary),
	}
}

// SeedParent registers a parent summary for join lookups in tests.
func (s *InMemory) SeedParent(p ParentSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents[p.ID] = p
}

func (s *InMemory) Create(_ context.Context, st *Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ParentID != nil {
		if _, ok := s.parents[*st.ParentID]; !ok {
			return ErrParentMissing
		}
	}
	s.students[st.ID] = *st
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.StudentID) (*WithParent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.join(st), nil
}

func (s *InMemory) List(_ context.Context) ([]*WithParent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*WithParent, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, s.join(st))
	}
	return out, nil
}

func (s *InMemory) join(st Student) *WithParent {
	wp := &WithParent{Student: st}
	if st.ParentID != nil {
		if p, ok := s.parents[*st.ParentID]; ok {
			copied := p
			wp.Parent = &copied
		}
	}
	return wp
}
