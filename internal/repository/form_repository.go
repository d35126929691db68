package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"formforge-api/internal/model"
)

// ErrNotFound is returned when a row does not exist or the caller is not
// allowed to see it. The repository does not distinguish the two cases.
var ErrNotFound = sql.ErrNoRows

// FormRepository persists form definitions and answers ownership questions.
type FormRepository interface {
	Create(ctx context.Context, form model.Form) (model.Form, error)
	ListByUser(ctx context.Context, userID int) ([]model.Form, error)

	// GetOwned fetches a form only when it belongs to userID; ErrNotFound
	// otherwise, whether the form is missing or owned by someone else.
	GetOwned(ctx context.Context, formID string, userID int) (model.Form, error)

	// GetPublished fetches a form only when it is in PUBLISHED state.
	GetPublished(ctx context.Context, formID string) (model.Form, error)

	Update(ctx context.Context, form model.Form) (model.Form, error)
	Delete(ctx context.Context, formID string, userID int) error
}

type formRepository struct {
	db *sql.DB
}

// NewFormRepository creates a FormRepository backed by PostgreSQL.
func NewFormRepository(db *sql.DB) FormRepository {
	return &formRepository{db: db}
}

const insertFormQuery = `
	INSERT INTO forms (id, user_id, title, description, schema, settings, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
`

const listFormsQuery = `
	SELECT f.id, f.user_id, f.title, f.description, f.schema, f.settings, f.status, f.published_at, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM submissions s WHERE s.form_id = f.id) AS submission_count
	FROM forms f
	WHERE f.user_id = $1
	ORDER BY f.updated_at DESC
`

const getOwnedFormQuery = `
	SELECT f.id, f.user_id, f.title, f.description, f.schema, f.settings, f.status, f.published_at, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM submissions s WHERE s.form_id = f.id) AS submission_count
	FROM forms f
	WHERE f.id = $1 AND f.user_id = $2
`

const getPublishedFormQuery = `
	SELECT f.id, f.user_id, f.title, f.description, f.schema, f.settings, f.status, f.published_at, f.created_at, f.updated_at,
		0 AS submission_count
	FROM forms f
	WHERE f.id = $1 AND f.status = 'PUBLISHED'
`

const updateFormQuery = `
	UPDATE forms
	SET title = $3, description = $4, schema = $5, settings = $6, status = $7, published_at = $8, updated_at = now()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
`

const deleteFormQuery = `DELETE FROM forms WHERE id = $1 AND user_id = $2`

// validFormID rejects identifiers that cannot be a forms.id value. The id
// column is UUID typed, so passing arbitrary path input through would make
// Postgres fail the cast instead of returning zero rows.
func validFormID(formID string) bool {
	_, err := uuid.Parse(formID)
	return err == nil
}

func (r *formRepository) Create(ctx context.Context, form model.Form) (model.Form, error) {
	err := r.db.QueryRowContext(ctx, insertFormQuery,
		form.ID,
		form.UserID,
		form.Title,
		form.Description,
		[]byte(form.Schema),
		[]byte(form.Settings),
		form.Status,
	).Scan(&form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		return model.Form{}, fmt.Errorf("create form: %w", err)
	}
	return form, nil
}

func (r *formRepository) ListByUser(ctx context.Context, userID int) ([]model.Form, error) {
	rows, err := r.db.QueryContext(ctx, listFormsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var forms []model.Form
	for rows.Next() {
		form, err := scanForm(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		forms = append(forms, form)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}
	return forms, nil
}

func (r *formRepository) GetOwned(ctx context.Context, formID string, userID int) (model.Form, error) {
	if !validFormID(formID) {
		return model.Form{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, getOwnedFormQuery, formID, userID)
	form, err := scanForm(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Form{}, ErrNotFound
		}
		return model.Form{}, fmt.Errorf("get form: %w", err)
	}
	return form, nil
}

func (r *formRepository) GetPublished(ctx context.Context, formID string) (model.Form, error) {
	if !validFormID(formID) {
		return model.Form{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, getPublishedFormQuery, formID)
	form, err := scanForm(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Form{}, ErrNotFound
		}
		return model.Form{}, fmt.Errorf("get published form: %w", err)
	}
	return form, nil
}

func (r *formRepository) Update(ctx context.Context, form model.Form) (model.Form, error) {
	if !validFormID(form.ID) {
		return model.Form{}, ErrNotFound
	}
	var publishedAt interface{}
	if form.PublishedAt != nil {
		publishedAt = *form.PublishedAt
	}

	err := r.db.QueryRowContext(ctx, updateFormQuery,
		form.ID,
		form.UserID,
		form.Title,
		form.Description,
		[]byte(form.Schema),
		[]byte(form.Settings),
		form.Status,
		publishedAt,
	).Scan(&form.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Form{}, ErrNotFound
		}
		return model.Form{}, fmt.Errorf("update form: %w", err)
	}
	return form, nil
}

func (r *formRepository) Delete(ctx context.Context, formID string, userID int) error {
	if !validFormID(formID) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteFormQuery, formID, userID)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanForm(scan func(dest ...any) error) (model.Form, error) {
	var (
		form        model.Form
		schema      []byte
		settings    []byte
		publishedAt sql.NullTime
	)
	err := scan(
		&form.ID,
		&form.UserID,
		&form.Title,
		&form.Description,
		&schema,
		&settings,
		&form.Status,
		&publishedAt,
		&form.CreatedAt,
		&form.UpdatedAt,
		&form.SubmissionCount,
	)
	if err != nil {
		return model.Form{}, err
	}
	form.Schema = schema
	form.Settings = settings
	if publishedAt.Valid {
		t := publishedAt.Time
		form.PublishedAt = &t
	}
	return form, nil
}
