package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"classtrack/pkg/domain"
	"classtrack/pkg/platform/sentinel"
)

// Postgres persists subscriptions.
//
// ConsumeSession relies on PostgreSQL's row-level write lock: the UPDATE
// serializes concurrent increments on the same row, and RETURNING hands back
// the value this transaction produced. Each transaction independently checks
// its own result and rolls back when it overshot, so used_sessions never
// commits above total_sessions.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, sub *Subscription) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, student_id, package_name, start_date, end_date, total_sessions, used_sessions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(sub.ID), string(sub.StudentID), sub.PackageName,
		sub.StartDate, sub.EndDate, sub.TotalSessions, sub.UsedSessions,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrStudentMissing
		}
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.SubscriptionID) (*Subscription, error) {
	var sub Subscription
	err := s.db.QueryRowContext(ctx,
		`SELECT id, student_id, package_name, start_date, end_date, total_sessions, used_sessions
		 FROM subscriptions WHERE id = $1`, string(id),
	).Scan(&sub.ID, &sub.StudentID, &sub.PackageName, &sub.StartDate, &sub.EndDate,
		&sub.TotalSessions, &sub.UsedSessions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &sub, nil
}

func (s *Postgres) List(ctx context.Context) ([]*Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, package_name, start_date, end_date, total_sessions, used_sessions
		 FROM subscriptions ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ID, &sub.StudentID, &sub.PackageName, &sub.StartDate,
			&sub.EndDate, &sub.TotalSessions, &sub.UsedSessions); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}

func (s *Postgres) ConsumeSession(ctx context.Context, id domain.SubscriptionID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin consume tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var used, total int
	err = tx.QueryRowContext(ctx,
		`UPDATE subscriptions SET used_sessions = used_sessions + 1
		 WHERE id = $1
		 RETURNING used_sessions, total_sessions`, string(id),
	).Scan(&used, &total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("increment used sessions: %w", err)
	}

	if used > total {
		// The increment overshot; the deferred rollback undoes it.
		return ErrSessionsExhausted
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit consume tx: %w", err)
	}
	return nil
}
