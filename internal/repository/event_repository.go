package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"formforge-api/internal/model"
)

// EventRepository is the append-only event log. Rows are immutable once
// written; concurrent appends need no coordination.
type EventRepository interface {
	// Create inserts a single interaction event.
	Create(ctx context.Context, event model.InteractionEvent) error

	// CreateBatch inserts multiple events in one native batch.
	CreateBatch(ctx context.Context, events []model.InteractionEvent) error

	// ListByFormBetween returns all events for a form whose occurred_at
	// falls within [from, to], ordered by occurrence.
	ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.InteractionEvent, error)
}

type eventRepository struct {
	conn clickhouse.Conn
}

// NewEventRepository creates an EventRepository backed by ClickHouse.
func NewEventRepository(conn clickhouse.Conn) EventRepository {
	return &eventRepository{conn: conn}
}

const insertEventQuery = `
	INSERT INTO form_events (event_id, form_id, event_type, field_id, session_id, time_spent, device_info, user_agent, ip_address, occurred_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const listEventsQuery = `
	SELECT event_id, form_id, event_type, field_id, session_id, time_spent, device_info, user_agent, ip_address, occurred_at
	FROM form_events
	WHERE form_id = ? AND occurred_at >= ? AND occurred_at <= ?
	ORDER BY occurred_at ASC, event_id ASC
`

func (r *eventRepository) Create(ctx context.Context, event model.InteractionEvent) error {
	err := r.conn.Exec(ctx, insertEventQuery,
		event.EventID,
		event.FormID,
		event.EventType,
		event.FieldID,
		event.SessionID,
		uint32(event.TimeSpent),
		deviceInfoString(event.DeviceInfo),
		event.UserAgent,
		event.IPAddress,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []model.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEventQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.FormID,
			event.EventType,
			event.FieldID,
			event.SessionID,
			uint32(event.TimeSpent),
			deviceInfoString(event.DeviceInfo),
			event.UserAgent,
			event.IPAddress,
			event.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (r *eventRepository) ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.InteractionEvent, error) {
	rows, err := r.conn.Query(ctx, listEventsQuery, formID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.InteractionEvent
	for rows.Next() {
		var (
			ev         model.InteractionEvent
			timeSpent  uint32
			deviceInfo string
		)
		if err := rows.Scan(
			&ev.EventID,
			&ev.FormID,
			&ev.EventType,
			&ev.FieldID,
			&ev.SessionID,
			&timeSpent,
			&deviceInfo,
			&ev.UserAgent,
			&ev.IPAddress,
			&ev.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.TimeSpent = int(timeSpent)
		if deviceInfo != "" {
			ev.DeviceInfo = json.RawMessage(deviceInfo)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// deviceInfoString normalizes the opaque device payload for storage. It is
// stored verbatim; absent payloads become the empty string.
func deviceInfoString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	return string(raw)
}
