package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"formforge-api/internal/model"
)

// SubmissionRepository persists completed form fills.
type SubmissionRepository interface {
	Create(ctx context.Context, sub model.Submission) (model.Submission, error)
	ListByForm(ctx context.Context, formID string) ([]model.Submission, error)

	// ListByFormBetween returns submissions created within [from, to],
	// oldest first. The analytics aggregator reads from here.
	ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.Submission, error)
}

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a SubmissionRepository backed by PostgreSQL.
func NewSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

const insertSubmissionQuery = `
	INSERT INTO submissions (id, form_id, data, completion_time, ip_address, user_agent)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
`

const listSubmissionsQuery = `
	SELECT id, form_id, data, completion_time, ip_address, user_agent, created_at
	FROM submissions
	WHERE form_id = $1
	ORDER BY created_at DESC
`

const listSubmissionsBetweenQuery = `
	SELECT id, form_id, data, completion_time, ip_address, user_agent, created_at
	FROM submissions
	WHERE form_id = $1 AND created_at >= $2 AND created_at <= $3
	ORDER BY created_at ASC
`

func (r *submissionRepository) Create(ctx context.Context, sub model.Submission) (model.Submission, error) {
	err := r.db.QueryRowContext(ctx, insertSubmissionQuery,
		sub.ID,
		sub.FormID,
		[]byte(sub.Data),
		sub.CompletionTime,
		sub.IPAddress,
		sub.UserAgent,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return model.Submission{}, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

func (r *submissionRepository) ListByForm(ctx context.Context, formID string) ([]model.Submission, error) {
	return r.list(ctx, listSubmissionsQuery, formID)
}

func (r *submissionRepository) ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.Submission, error) {
	return r.list(ctx, listSubmissionsBetweenQuery, formID, from, to)
}

func (r *submissionRepository) list(ctx context.Context, query string, args ...any) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var (
			sub  model.Submission
			data []byte
		)
		if err := rows.Scan(
			&sub.ID,
			&sub.FormID,
			&data,
			&sub.CompletionTime,
			&sub.IPAddress,
			&sub.UserAgent,
			&sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Data = data
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}
