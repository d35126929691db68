package model

import (
	"encoding/json"
	"time"
)

// Form lifecycle states.
const (
	FormStatusDraft     = "DRAFT"
	FormStatusPublished = "PUBLISHED"
	FormStatusArchived  = "ARCHIVED"
)

// Form is a user-owned form definition. Schema and Settings are opaque
// builder payloads stored verbatim.
type Form struct {
	ID              string          `json:"id"`
	UserID          int             `json:"userId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Schema          json.RawMessage `json:"schema"`
	Settings        json.RawMessage `json:"settings"`
	Status          string          `json:"status"`
	SubmissionCount int             `json:"submissionCount"`
	PublishedAt     *time.Time      `json:"publishedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateFormRequest is the payload for creating a form. Title is required;
// Schema and Settings fall back to defaults when absent.
type CreateFormRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Settings    json.RawMessage `json:"settings"`
}

// UpdateFormRequest carries a partial form update. Nil pointers leave the
// corresponding column untouched.
type UpdateFormRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Settings    json.RawMessage `json:"settings"`
	Status      *string         `json:"status"`
}

// Submission is one completed form fill. CompletionTime is the seconds the
// visitor spent from first view to submit, as reported by the client.
type Submission struct {
	ID             string          `json:"id"`
	FormID         string          `json:"formId"`
	Data           json.RawMessage `json:"data"`
	CompletionTime int             `json:"completionTime"`
	IPAddress      string          `json:"ipAddress,omitempty"`
	UserAgent      string          `json:"userAgent,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SubmitFormRequest is the public submission payload.
type SubmitFormRequest struct {
	Data           json.RawMessage `json:"data"`
	CompletionTime int             `json:"completionTime"`
	IPAddress      string          `json:"ipAddress"`
	UserAgent      string          `json:"userAgent"`
}
