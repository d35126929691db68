package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

// FormService covers form definition CRUD and public submissions.
type FormService interface {
	CreateForm(ctx context.Context, userID int, req model.CreateFormRequest) (model.Form, error)
	ListForms(ctx context.Context, userID int) ([]model.Form, error)
	GetForm(ctx context.Context, userID int, formID string) (model.Form, error)
	UpdateForm(ctx context.Context, userID int, formID string, req model.UpdateFormRequest) (model.Form, error)
	DeleteForm(ctx context.Context, userID int, formID string) error
	DuplicateForm(ctx context.Context, userID int, formID string) (model.Form, error)

	// SubmitForm accepts a public submission for a published form.
	SubmitForm(ctx context.Context, formID string, req model.SubmitFormRequest) (model.Submission, error)
	ListSubmissions(ctx context.Context, userID int, formID string) ([]model.Submission, error)
}

type formService struct {
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	now         func() time.Time
}

// NewFormService constructs a formService.
func NewFormService(forms repository.FormRepository, submissions repository.SubmissionRepository) FormService {
	return &formService{
		forms:       forms,
		submissions: submissions,
		now:         time.Now,
	}
}

func (s *formService) CreateForm(ctx context.Context, userID int, req model.CreateFormRequest) (model.Form, error) {
	if req.Title == "" {
		return model.Form{}, &ValidationError{Message: "title is required"}
	}

	schema := req.Schema
	if len(schema) == 0 {
		schema = defaultSchema(req.Title, req.Description)
	}

	settings := req.Settings
	if len(settings) == 0 {
		settings = defaultSettings()
	}

	form := model.Form{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Schema:      schema,
		Settings:    settings,
		Status:      model.FormStatusDraft,
	}
	return s.forms.Create(ctx, form)
}

func (s *formService) ListForms(ctx context.Context, userID int) ([]model.Form, error) {
	return s.forms.ListByUser(ctx, userID)
}

func (s *formService) GetForm(ctx context.Context, userID int, formID string) (model.Form, error) {
	form, err := s.forms.GetOwned(ctx, formID, userID)
	if err != nil {
		return model.Form{}, notFoundOrInternal(err)
	}
	return form, nil
}

func (s *formService) UpdateForm(ctx context.Context, userID int, formID string, req model.UpdateFormRequest) (model.Form, error) {
	form, err := s.forms.GetOwned(ctx, formID, userID)
	if err != nil {
		return model.Form{}, notFoundOrInternal(err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return model.Form{}, &ValidationError{Message: "title must not be empty"}
		}
		form.Title = *req.Title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if len(req.Schema) > 0 {
		form.Schema = req.Schema
	}
	if len(req.Settings) > 0 {
		form.Settings = req.Settings
	}
	if req.Status != nil {
		if !isValidStatus(*req.Status) {
			return model.Form{}, &ValidationError{Message: "unsupported status"}
		}
		form.Status = *req.Status
		// published_at records the first publish only.
		if form.Status == model.FormStatusPublished && form.PublishedAt == nil {
			t := s.now().UTC()
			form.PublishedAt = &t
		}
	}

	updated, err := s.forms.Update(ctx, form)
	if err != nil {
		return model.Form{}, notFoundOrInternal(err)
	}
	return updated, nil
}

func (s *formService) DeleteForm(ctx context.Context, userID int, formID string) error {
	if err := s.forms.Delete(ctx, formID, userID); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func (s *formService) DuplicateForm(ctx context.Context, userID int, formID string) (model.Form, error) {
	original, err := s.forms.GetOwned(ctx, formID, userID)
	if err != nil {
		return model.Form{}, notFoundOrInternal(err)
	}

	copyForm := model.Form{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       original.Title + " (Copy)",
		Description: original.Description,
		Schema:      original.Schema,
		Settings:    original.Settings,
		// A duplicate always starts unpublished.
		Status: model.FormStatusDraft,
	}
	return s.forms.Create(ctx, copyForm)
}

func (s *formService) SubmitForm(ctx context.Context, formID string, req model.SubmitFormRequest) (model.Submission, error) {
	if _, err := s.forms.GetPublished(ctx, formID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Submission{}, &NotFoundError{Message: "form not found or not published"}
		}
		return model.Submission{}, err
	}

	if req.CompletionTime < 0 {
		return model.Submission{}, &ValidationError{Message: "completionTime must not be negative"}
	}

	data := req.Data
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}

	sub := model.Submission{
		ID:             uuid.NewString(),
		FormID:         formID,
		Data:           data,
		CompletionTime: req.CompletionTime,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
	}
	return s.submissions.Create(ctx, sub)
}

func (s *formService) ListSubmissions(ctx context.Context, userID int, formID string) ([]model.Submission, error) {
	if _, err := s.forms.GetOwned(ctx, formID, userID); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return s.submissions.ListByForm(ctx, formID)
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "form not found"}
	}
	return err
}

func isValidStatus(status string) bool {
	switch status {
	case model.FormStatusDraft, model.FormStatusPublished, model.FormStatusArchived:
		return true
	default:
		return false
	}
}

func defaultSchema(title, description string) json.RawMessage {
	schema, _ := json.Marshal(map[string]any{
		"title":       title,
		"description": description,
		"fields":      []any{},
	})
	return schema
}

func defaultSettings() json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"submitText":%q,"redirectUrl":null,"thankYouMessage":%q,"notifications":{"email":false,"adminEmail":null}}`,
		"Submit", "Thank you for your submission!"))
}
