package model

import (
	"encoding/json"
	"time"
)

// Interaction event types accepted by the tracking endpoint.
const (
	EventView       = "view"
	EventFieldFocus = "field_focus"
	EventFieldBlur  = "field_blur"
	EventSubmit     = "submit"
	EventAbandon    = "abandon"
)

// IsValidEventType reports whether t is one of the accepted event types.
func IsValidEventType(t string) bool {
	switch t {
	case EventView, EventFieldFocus, EventFieldBlur, EventSubmit, EventAbandon:
		return true
	default:
		return false
	}
}

// TrackRequest represents the incoming tracking payload from a public form
// page. Only FormID and Action are required; the rest is normalized by the
// tracking service before storage.
type TrackRequest struct {
	FormID     string          `json:"formId"`
	Action     string          `json:"action"`
	FieldID    string          `json:"fieldId"`
	TimeSpent  int             `json:"timeSpent"`
	DeviceInfo json.RawMessage `json:"deviceInfo"`
	UserAgent  string          `json:"userAgent"`
	IPAddress  string          `json:"ipAddress"`
	SessionID  string          `json:"sessionId"`
}

// InteractionEvent is the immutable record appended to the event log.
// OccurredAt is assigned at ingestion time; client clocks are not trusted.
type InteractionEvent struct {
	EventID    string
	FormID     string
	EventType  string
	FieldID    string
	SessionID  string
	TimeSpent  int
	DeviceInfo json.RawMessage
	UserAgent  string
	IPAddress  string
	OccurredAt time.Time
}

// TrackAck echoes the accepted event back to the caller.
type TrackAck struct {
	FormID    string `json:"formId"`
	Action    string `json:"action"`
	FieldID   string `json:"fieldId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}
