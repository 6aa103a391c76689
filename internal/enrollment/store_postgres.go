package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"classtrack/internal/class"
	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// Postgres implements the registration store over PostgreSQL.
//
// Isolation: Register takes a row lock on the class (SELECT ... FOR UPDATE)
// before inserting and recounting. Concurrent registrations for the same
// class serialize on that lock, so the post-insert COUNT always sees every
// committed and own-transaction row and the capacity comparison is exact.
// This closes the read-committed overbooking race without requiring
// serializable isolation; registrations for different classes do not
// contend.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindClass(ctx context.Context, id domain.ClassID) (*class.Class, error) {
	var c class.Class
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, subject, day_of_week, time_slot, teacher_name, max_students
		 FROM classes WHERE id = $1`, string(id),
	).Scan(&c.ID, &c.Name, &c.Subject, &c.DayOfWeek, &c.TimeSlot, &c.TeacherName, &c.MaxStudents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &c, nil
}

func (s *Postgres) ListSameDay(ctx context.Context, studentID domain.StudentID, day domain.DayOfWeek) ([]DaySchedule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.time_slot
		 FROM class_registrations r
		 INNER JOIN classes c ON c.id = r.class_id
		 WHERE r.student_id = $1 AND c.day_of_week = $2`,
		string(studentID), day.Int(),
	)
	if err != nil {
		return nil, fmt.Errorf("list same-day registrations: %w", err)
	}
	defer rows.Close()

	var out []DaySchedule
	for rows.Next() {
		var ds DaySchedule
		if err := rows.Scan(&ds.ClassID, &ds.TimeSlot); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list same-day registrations: %w", err)
	}
	return out, nil
}

func (s *Postgres) Register(ctx context.Context, classID domain.ClassID, studentID domain.StudentID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Lock the class row first. All registrations for this class serialize
	// here, making the recount below authoritative.
	var maxStudents int
	err = tx.QueryRowContext(ctx,
		`SELECT max_students FROM classes WHERE id = $1 FOR UPDATE`, string(classID),
	).Scan(&maxStudents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("lock class: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO class_registrations (class_id, student_id) VALUES ($1, $2)`,
		string(classID), string(studentID),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrAlreadyRegistered
			case "23503":
				if strings.Contains(pqErr.Constraint, "student") {
					return ErrStudentMissing
				}
				return sentinel.ErrNotFound
			}
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	// Recount inside the same transaction; the count includes our own
	// insert, so the comparison is exact.
	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM class_registrations WHERE class_id = $1`, string(classID),
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("recount registrations: %w", err)
	}
	if count > maxStudents {
		// Rolled back by the deferred Rollback; the insert is not retained.
		return ErrClassFull
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}
