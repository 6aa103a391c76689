package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres persists audit events.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, type, entity_id, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.ID, string(event.Type), event.EntityID, event.Detail, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Postgres) ListByEntity(ctx context.Context, entityID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, entity_id, detail, created_at
		 FROM audit_events WHERE entity_id = $1 ORDER BY created_at DESC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var eventType string
		if err := rows.Scan(&e.ID, &eventType, &e.EntityID, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Type = EventType(eventType)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
