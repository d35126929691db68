package model

import (
	"encoding/json"
	"time"
)

// SessionAggregate is the mutable per-(form, session) rollup, distinct from
// the immutable event log. It is only ever mutated through atomic merge
// statements in the session repository.
type SessionAggregate struct {
	FormID           string
	SessionID        string
	FieldsInteracted []string
	TotalTimeSpent   int
	IsCompleted      bool
	DeviceInfo       json.RawMessage
	UserAgent        string
	IPAddress        string
	StartedAt        time.Time
	EndedAt          *time.Time
}

// DeviceType extracts the device classification from the opaque DeviceInfo
// payload. Unknown or missing classifications return "unknown".
func (s SessionAggregate) DeviceType() string {
	if len(s.DeviceInfo) == 0 {
		return "unknown"
	}
	var info struct {
		DeviceType string `json:"deviceType"`
	}
	if err := json.Unmarshal(s.DeviceInfo, &info); err != nil || info.DeviceType == "" {
		return "unknown"
	}
	return info.DeviceType
}
