package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunEventLogMigrations ensures the append-only event log table exists.
// This keeps the service self-contained without an external migration step.
func RunEventLogMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS form_events
(
	event_id     String,
	form_id      String,
	event_type   LowCardinality(String),
	field_id     String,
	session_id   String,
	time_spent   UInt32,
	device_info  String DEFAULT '',
	user_agent   String DEFAULT '',
	ip_address   String DEFAULT '',
	occurred_at  DateTime64(3, 'UTC'),
	ingested_at  DateTime DEFAULT now()
)
ENGINE = MergeTree
PARTITION BY toYYYYMMDD(occurred_at)
ORDER BY (form_id, occurred_at, event_type)
SETTINGS index_granularity = 8192;
`)
	if err != nil {
		return fmt.Errorf("apply event log migrations: %w", err)
	}
	return nil
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              SERIAL PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		hashed_password BYTEA NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS forms (
		id           UUID PRIMARY KEY,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		schema       JSONB NOT NULL DEFAULT '{}',
		settings     JSONB NOT NULL DEFAULT '{}',
		status       TEXT NOT NULL DEFAULT 'DRAFT',
		published_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_forms_user ON forms (user_id, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id              UUID PRIMARY KEY,
		form_id         UUID NOT NULL REFERENCES forms(id) ON DELETE CASCADE,
		data            JSONB NOT NULL DEFAULT '{}',
		completion_time INTEGER NOT NULL DEFAULT 0,
		ip_address      TEXT NOT NULL DEFAULT '',
		user_agent      TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_form ON submissions (form_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS form_sessions (
		form_id           UUID NOT NULL,
		session_id        TEXT NOT NULL,
		fields_interacted TEXT[] NOT NULL DEFAULT '{}',
		total_time_spent  BIGINT NOT NULL DEFAULT 0,
		is_completed      BOOLEAN NOT NULL DEFAULT FALSE,
		device_info       JSONB,
		user_agent        TEXT NOT NULL DEFAULT '',
		ip_address        TEXT NOT NULL DEFAULT '',
		started_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		ended_at          TIMESTAMPTZ,
		PRIMARY KEY (form_id, session_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_form_sessions_started ON form_sessions (form_id, started_at)`,
}

// RunPostgresMigrations creates the relational tables when absent. Every
// statement is idempotent so startup can run them unconditionally.
func RunPostgresMigrations(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range postgresMigrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply postgres migrations: %w", err)
		}
	}
	return nil
}
