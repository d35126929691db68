package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"formforge-api/internal/model"
)

// SessionRepository maintains the canonical SessionAggregate per
// (form_id, session_id). Every mutation is a single atomic statement against
// the current persisted row; there is deliberately no fetch-then-write path,
// so concurrent merges for the same key can never lose each other's
// contributions.
type SessionRepository interface {
	// StartSession creates the aggregate for a view event. Duplicate views
	// are a no-op: creation is idempotent on the composite key.
	StartSession(ctx context.Context, event model.InteractionEvent) error

	// MergeFieldInteraction records a field_focus/field_blur: it adds the
	// field to fields_interacted (set semantics) and accumulates time spent.
	// A missing aggregate is created implicitly. Completed aggregates are
	// left untouched.
	MergeFieldInteraction(ctx context.Context, event model.InteractionEvent) error

	// CompleteSession marks the aggregate completed and adds the final time
	// spent. The transition is terminal; repeated submits are no-ops.
	CompleteSession(ctx context.Context, event model.InteractionEvent) error

	// ListStartedBetween returns aggregates whose started_at falls within
	// [from, to] for the given form.
	ListStartedBetween(ctx context.Context, formID string, from, to time.Time) ([]model.SessionAggregate, error)
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a SessionRepository backed by PostgreSQL.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

const startSessionQuery = `
	INSERT INTO form_sessions (form_id, session_id, fields_interacted, total_time_spent, is_completed, device_info, user_agent, ip_address, started_at)
	VALUES ($1, $2, '{}', 0, FALSE, $3, $4, $5, $6)
	ON CONFLICT (form_id, session_id) DO NOTHING
`

// mergeFieldQuery is a single upsert: it creates the aggregate when absent
// and otherwise merges the interaction into the existing row in place. The
// array append only fires when the field is not already present, and the
// is_completed guard freezes completed sessions.
const mergeFieldQuery = `
	INSERT INTO form_sessions (form_id, session_id, fields_interacted, total_time_spent, is_completed, device_info, user_agent, ip_address, started_at)
	VALUES ($1, $2, ARRAY[$3], $4, FALSE, $5, $6, $7, $8)
	ON CONFLICT (form_id, session_id) DO UPDATE SET
		fields_interacted = CASE
			WHEN $3 = ANY(form_sessions.fields_interacted) THEN form_sessions.fields_interacted
			ELSE array_append(form_sessions.fields_interacted, $3)
		END,
		total_time_spent = form_sessions.total_time_spent + $4
	WHERE NOT form_sessions.is_completed
`

const completeSessionQuery = `
	UPDATE form_sessions
	SET is_completed = TRUE,
		total_time_spent = total_time_spent + $3,
		ended_at = $4
	WHERE form_id = $1 AND session_id = $2 AND NOT is_completed
`

const listSessionsQuery = `
	SELECT form_id, session_id, fields_interacted, total_time_spent, is_completed, device_info, user_agent, ip_address, started_at, ended_at
	FROM form_sessions
	WHERE form_id = $1 AND started_at >= $2 AND started_at <= $3
	ORDER BY started_at ASC, session_id ASC
`

func (r *sessionRepository) StartSession(ctx context.Context, event model.InteractionEvent) error {
	_, err := r.db.ExecContext(ctx, startSessionQuery,
		event.FormID,
		event.SessionID,
		nullIfEmptyJSON(event.DeviceInfo),
		event.UserAgent,
		event.IPAddress,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

func (r *sessionRepository) MergeFieldInteraction(ctx context.Context, event model.InteractionEvent) error {
	_, err := r.db.ExecContext(ctx, mergeFieldQuery,
		event.FormID,
		event.SessionID,
		event.FieldID,
		event.TimeSpent,
		nullIfEmptyJSON(event.DeviceInfo),
		event.UserAgent,
		event.IPAddress,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("merge field interaction: %w", err)
	}
	return nil
}

func (r *sessionRepository) CompleteSession(ctx context.Context, event model.InteractionEvent) error {
	_, err := r.db.ExecContext(ctx, completeSessionQuery,
		event.FormID,
		event.SessionID,
		event.TimeSpent,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) ListStartedBetween(ctx context.Context, formID string, from, to time.Time) ([]model.SessionAggregate, error) {
	rows, err := r.db.QueryContext(ctx, listSessionsQuery, formID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var (
			agg        model.SessionAggregate
			deviceInfo []byte
			endedAt    sql.NullTime
		)
		if err := rows.Scan(
			&agg.FormID,
			&agg.SessionID,
			pq.Array(&agg.FieldsInteracted),
			&agg.TotalTimeSpent,
			&agg.IsCompleted,
			&deviceInfo,
			&agg.UserAgent,
			&agg.IPAddress,
			&agg.StartedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if len(deviceInfo) > 0 {
			agg.DeviceInfo = deviceInfo
		}
		if endedAt.Valid {
			t := endedAt.Time
			agg.EndedAt = &t
		}
		sessions = append(sessions, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func nullIfEmptyJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
