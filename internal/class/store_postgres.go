package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// Postgres persists classes.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, c *Class) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classes (id, name, subject, day_of_week, time_slot, teacher_name, max_students)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(c.ID), c.Name, c.Subject, c.DayOfWeek.Int(), c.TimeSlot, c.TeacherName, c.MaxStudents,
	)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.ClassID) (*Class, error) {
	var c Class
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

func (s *Postgres) ListByDay(ctx context.Context, day *domain.DayOfWeek) ([]*Class, error) {
	query := `SELECT id, name, subject, day_of_week, time_slot, teacher_name, max_students
	          FROM classes`
	args := []any{}
	if day != nil {
		query += ` WHERE day_of_week = $1`
		args = append(args, day.Int())
	}
	query += ` ORDER BY day_of_week, time_slot`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var out []*Class
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.DayOfWeek, &c.TimeSlot,
			&c.TeacherName, &c.MaxStudents); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return out, nil
}

func (s *Postgres) RegistrationCounts(ctx context.Context) (map[domain.ClassID]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT class_id, COUNT(*) FROM class_registrations GROUP BY class_id`)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.ClassID]int)
	for rows.Next() {
		var id domain.ClassID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan registration count: %w", err)
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return out, nil
}
