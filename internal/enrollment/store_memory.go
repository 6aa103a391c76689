package enrollment

import (
	"context"
	"sync"

	"classtrack/internal/class"
	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// InMemory holds classes and registrations behind one mutex. The coarse lock
// stands in for the database transaction: check-insert-recount happens
// atomically with respect to other goroutines, giving the same capacity
// guarantee the PostgreSQL store gets from its row lock.
type InMemory struct {
	mu       sync.Mutex
	classes  map[domain.ClassID]class.Class
	students map[domain.StudentID]bool
	regs     map[domain.ClassID]map[domain.StudentID]bool
}

func NewInMemory() *InMemory {
	return &InMemory{
		classes:  make(map[domain.ClassID]class.Class),
		students: make(map[domain.StudentID]bool),
		regs:     make(map[domain.ClassID]map[domain.StudentID]bool),
	}
}

// SeedClass adds a class the store knows about.
func (s *InMemory) SeedClass(c class.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[c.ID] = c
}

// SeedStudent marks a student as existing.
func (s *InMemory) SeedStudent(id domain.StudentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[id] = true
}

func (s *InMemory) FindClass(_ context.Context, id domain.ClassID) (*class.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.classes[id]; ok {
		copied := c
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListSameDay(_ context.Context, studentID domain.StudentID, day domain.DayOfWeek) ([]DaySchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DaySchedule
	for classID, students := range s.regs {
		if !students[studentID] {
			continue
		}
		c, ok := s.classes[classID]
		if !ok || c.DayOfWeek != day {
			continue
		}
		out = append(out, DaySchedule{ClassID: classID, TimeSlot: c.TimeSlot})
	}
	return out, nil
}

func (s *InMemory) Register(_ context.Context, classID domain.ClassID, studentID domain.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.classes[classID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !s.students[studentID] {
		return ErrStudentMissing
	}

	students := s.regs[classID]
	if students[studentID] {
		return ErrAlreadyRegistered
	}
	if len(students)+1 > c.MaxStudents {
		return ErrClassFull
	}

	if students == nil {
		students = make(map[domain.StudentID]bool)
		s.regs[classID] = students
	}
	students[studentID] = true
	return nil
}

// Count reports the registration count for a class; used by tests to assert
// the capacity invariant.
func (s *InMemory) Count(classID domain.ClassID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs[classID])
}
