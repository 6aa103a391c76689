package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// Postgres persists students. Reads left-join the parent row so callers get
// the embedded summary in one round trip.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const selectWithParent = `
	SELECT s.id, s.name, s.dob, s.gender, s.current_grade, s.parent_id,
	       p.id, p.name, p.phone, p.email
	FROM students s
	LEFT JOIN parents p ON p.id = s.parent_id`

func (s *Postgres) Create(ctx context.Context, st *Student) error {
	var parentID any
	if st.ParentID != nil {
		parentID = string(*st.ParentID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id, name, dob, gender, current_grade, parent_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(st.ID), st.Name, st.DOB, st.Gender.String(), st.CurrentGrade, parentID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrParentMissing
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.StudentID) (*WithParent, error) {
	row := s.db.QueryRowContext(ctx, selectWithParent+` WHERE s.id = $1`, string(id))
	wp, err := scanWithParent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return wp, nil
}

func (s *Postgres) List(ctx context.Context) ([]*WithParent, error) {
	rows, err := s.db.QueryContext(ctx, selectWithParent+` ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []*WithParent
	for rows.Next() {
		wp, err := scanWithParent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWithParent(row rowScanner) (*WithParent, error) {
	var (
		wp       WithParent
		gender   string
		parentID sql.NullString
		pID      sql.NullString
		pName    sql.NullString
		pPhone   sql.NullString
		pEmail   sql.NullString
	)
	err := row.Scan(&wp.ID, &wp.Name, &wp.DOB, &gender, &wp.CurrentGrade, &parentID,
		&pID, &pName, &pPhone, &pEmail)
	if err != nil {
		return nil, err
	}
	wp.Gender = domain.Gender(gender)
	if parentID.Valid {
		id := domain.ParentID(parentID.String)
		wp.ParentID = &id
	}
	if pID.Valid {
		wp.Parent = &ParentSummary{
			ID:    domain.ParentID(pID.String),
			Name:  pName.String,
			Phone: pPhone.String,
			Email: pEmail.String,
		}
	}
	return &wp, nil
}
