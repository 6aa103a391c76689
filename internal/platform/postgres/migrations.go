package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema idempotently at startup. Statements are ordered
// by foreign-key dependency. The (class_id, student_id) uniqueness constraint
// and the used_sessions check are correctness-bearing: they are the
// authoritative defense behind the service-level guards.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`DO $$ BEGIN
			CREATE TYPE gender AS ENUM ('male', 'female', 'other');
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
		`CREATE TABLE IF NOT EXISTS parents (
			id varchar(10) PRIMARY KEY,
			name varchar(255) NOT NULL,
			phone varchar(20) NOT NULL UNIQUE,
			email varchar(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id varchar(10) PRIMARY KEY,
			name varchar(255) NOT NULL,
			dob date NOT NULL,
			gender gender NOT NULL,
			current_grade integer,
			parent_id varchar(10) REFERENCES parents(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS students_parent_id_idx ON students (parent_id)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id varchar(10) PRIMARY KEY,
			name varchar(255) NOT NULL,
			subject varchar(100) NOT NULL,
			day_of_week integer NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			time_slot varchar(50) NOT NULL,
			teacher_name varchar(255) NOT NULL,
			max_students integer NOT NULL CHECK (max_students > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS classes_day_of_week_idx ON classes (day_of_week)`,
		`CREATE TABLE IF NOT EXISTS class_registrations (
			class_id varchar(10) NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			student_id varchar(10) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			CONSTRAINT class_registrations_class_student_unique UNIQUE (class_id, student_id)
		)`,
		`CREATE INDEX IF NOT EXISTS class_registrations_student_id_idx ON class_registrations (student_id)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id varchar(10) PRIMARY KEY,
			student_id varchar(10) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			package_name varchar(100) NOT NULL,
			start_date date NOT NULL,
			end_date date NOT NULL,
			total_sessions integer NOT NULL CHECK (total_sessions > 0),
			used_sessions integer NOT NULL DEFAULT 0 CHECK (used_sessions >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS subscriptions_student_id_idx ON subscriptions (student_id)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id uuid PRIMARY KEY,
			type text NOT NULL,
			entity_id text NOT NULL,
			detail text NOT NULL DEFAULT '',
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
