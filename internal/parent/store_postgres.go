package parent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// Postgres persists parents in PostgreSQL. Uniqueness of phone and email is
// enforced by column constraints; student cleanup on delete is enforced by
// ON DELETE CASCADE.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, p *Parent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parents (id, name, phone, email) VALUES ($1, $2, $3, $4)`,
		string(p.ID), p.Name, p.Phone, p.Email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create parent: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.ParentID) (*Parent, error) {
	var p Parent
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM parents WHERE id = $1`, string(id),
	).Scan(&p.ID, &p.Name, &p.Phone, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find parent: %w", err)
	}
	return &p, nil
}

func (s *Postgres) List(ctx context.Context) ([]*Parent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email FROM parents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	defer rows.Close()

	var out []*Parent
	for rows.Next() {
		var p Parent
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email); err != nil {
			return nil, fmt.Errorf("scan parent: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	return out, nil
}

func (s *Postgres) Delete(ctx context.Context, id domain.ParentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM parents WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete parent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete parent: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ContactInUse(ctx context.Context, phone, email string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parents WHERE phone = $1 OR email = $2`, phone, email,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check parent contact: %w", err)
	}
	return count > 0, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
