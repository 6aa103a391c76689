//go:build integration

package enrollment_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"classtrack/internal/enrollment"
	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
	"classtrack/pkg/testutil/containers"
)

type EnrollmentPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *enrollment.Postgres
}

func TestEnrollmentPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(EnrollmentPostgresSuite))
}

func (s *EnrollmentPostgresSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = enrollment.NewPostgres(s.postgres.DB)
}

func (s *EnrollmentPostgresSuite) TearDownSuite() {
	s.postgres.Terminate(context.Background())
}

func (s *EnrollmentPostgresSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "classes", "students", "parents")
	s.Require().NoError(err)
}

func (s *EnrollmentPostgresSuite) seedClass(capacity int) domain.ClassID {
	id := domain.ClassID(domain.NewID())
	_, err := s.postgres.DB.Exec(
		`INSERT INTO classes (id, name, subject, day_of_week, time_slot, teacher_name, max_students)
		 VALUES ($1, 'Algebra I', 'math', 1, '09:00-10:00', 'T. Chen', $2)`,
		string(id), capacity,
	)
	s.Require().NoError(err)
	return id
}

func (s *EnrollmentPostgresSuite) seedStudent(i int) domain.StudentID {
	id := domain.StudentID(domain.NewID())
	_, err := s.postgres.DB.Exec(
		`INSERT INTO students (id, name, dob, gender) VALUES ($1, $2, '2014-03-15', 'female')`,
		string(id), fmt.Sprintf("Student %d", i),
	)
	s.Require().NoError(err)
	return id
}

func (s *EnrollmentPostgresSuite) registrationCount(classID domain.ClassID) int {
	var count int
	err := s.postgres.DB.QueryRow(
		`SELECT COUNT(*) FROM class_registrations WHERE class_id = $1`, string(classID),
	).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *EnrollmentPostgresSuite) TestRegisterAndRecount() {
	ctx := context.Background()
	classID := s.seedClass(3)
	studentID := s.seedStudent(1)

	err := s.store.Register(ctx, classID, studentID)
	s.Require().NoError(err)
	s.Equal(1, s.registrationCount(classID))
}

func (s *EnrollmentPostgresSuite) TestDuplicateRegistration() {
	ctx := context.Background()
	classID := s.seedClass(3)
	studentID := s.seedStudent(1)

	s.Require().NoError(s.store.Register(ctx, classID, studentID))

	err := s.store.Register(ctx, classID, studentID)
	s.Require().ErrorIs(err, enrollment.ErrAlreadyRegistered)
	s.Equal(1, s.registrationCount(classID))
}

func (s *EnrollmentPostgresSuite) TestUnknownClass() {
	err := s.store.Register(context.Background(), domain.ClassID("missing"), s.seedStudent(1))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *EnrollmentPostgresSuite) TestUnknownStudent() {
	classID := s.seedClass(3)
	err := s.store.Register(context.Background(), classID, domain.StudentID("ghost"))
	s.Require().ErrorIs(err, enrollment.ErrStudentMissing)
	s.Equal(0, s.registrationCount(classID))
}

// TestConcurrentCapacity verifies that with capacity N and more than N racing
// registrations, exactly N commit. The rest are rejected and leave no row
// behind.
func (s *EnrollmentPostgresSuite) TestConcurrentCapacity() {
	ctx := context.Background()
	const capacity = 5
	const contenders = 20

	classID := s.seedClass(capacity)
	students := make([]domain.StudentID, contenders)
	for i := range students {
		students[i] = s.seedStudent(i)
	}

	var wg sync.WaitGroup
	var accepted, rejected atomic.Int32
	for _, studentID := range students {
		wg.Add(1)
		go func(studentID domain.StudentID) {
			defer wg.Done()
			err := s.store.Register(ctx, classID, studentID)
			if err == nil {
				accepted.Add(1)
			} else if errors.Is(err, enrollment.ErrClassFull) {
				rejected.Add(1)
			}
		}(studentID)
	}
	wg.Wait()

	s.Equal(int32(capacity), accepted.Load(), "exactly capacity registrations should succeed")
	s.Equal(int32(contenders-capacity), rejected.Load(), "the rest should be rejected as full")
	s.Equal(capacity, s.registrationCount(classID))
}

// TestConcurrentSameStudent verifies that two racing registrations for the
// same student commit exactly once.
func (s *EnrollmentPostgresSuite) TestConcurrentSameStudent() {
	ctx := context.Background()
	classID := s.seedClass(10)
	studentID := s.seedStudent(1)

	var wg sync.WaitGroup
	var accepted atomic.Int32
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Register(ctx, classID, studentID); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), accepted.Load())
	s.Equal(1, s.registrationCount(classID))
}

func (s *EnrollmentPostgresSuite) TestListSameDay() {
	ctx := context.Background()
	studentID := s.seedStudent(1)

	mondayClass := s.seedClass(10)
	tuesdayID := domain.ClassID(domain.NewID())
	_, err := s.postgres.DB.Exec(
		`INSERT INTO classes (id, name, subject, day_of_week, time_slot, teacher_name, max_students)
		 VALUES ($1, 'Chem', 'science', 2, '09:00-10:00', 'R. Vance', 10)`,
		string(tuesdayID),
	)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Register(ctx, mondayClass, studentID))
	s.Require().NoError(s.store.Register(ctx, tuesdayID, studentID))

	monday, err := s.store.ListSameDay(ctx, studentID, domain.DayOfWeek(1))
	s.Require().NoError(err)
	s.Require().Len(monday, 1)
	s.Equal(mondayClass, monday[0].ClassID)
	s.Equal("09:00-10:00", monday[0].TimeSlot)
}
