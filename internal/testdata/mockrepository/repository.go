package mockrepository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

type EventRepository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.EventRepository = &EventRepository{}

func (m *EventRepository) Create(ctx context.Context, event model.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) CreateBatch(ctx context.Context, events []model.InteractionEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *EventRepository) ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.InteractionEvent, error) {
	args := m.Called(ctx, formID, from, to)
	return args.Get(0).([]model.InteractionEvent), args.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = &SessionRepository{}

func (m *SessionRepository) StartSession(ctx context.Context, event model.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *SessionRepository) MergeFieldInteraction(ctx context.Context, event model.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *SessionRepository) CompleteSession(ctx context.Context, event model.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *SessionRepository) ListStartedBetween(ctx context.Context, formID string, from, to time.Time) ([]model.SessionAggregate, error) {
	args := m.Called(ctx, formID, from, to)
	return args.Get(0).([]model.SessionAggregate), args.Error(1)
}

type FormRepository struct {
	mock.Mock
}

var _ repository.FormRepository = &FormRepository{}

func (m *FormRepository) Create(ctx context.Context, form model.Form) (model.Form, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormRepository) ListByUser(ctx context.Context, userID int) ([]model.Form, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Form), args.Error(1)
}

func (m *FormRepository) GetOwned(ctx context.Context, formID string, userID int) (model.Form, error) {
	args := m.Called(ctx, formID, userID)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormRepository) GetPublished(ctx context.Context, formID string) (model.Form, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormRepository) Update(ctx context.Context, form model.Form) (model.Form, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormRepository) Delete(ctx context.Context, formID string, userID int) error {
	args := m.Called(ctx, formID, userID)
	return args.Error(0)
}

type SubmissionRepository struct {
	mock.Mock
}

var _ repository.SubmissionRepository = &SubmissionRepository{}

func (m *SubmissionRepository) Create(ctx context.Context, sub model.Submission) (model.Submission, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(model.Submission), args.Error(1)
}

func (m *SubmissionRepository) ListByForm(ctx context.Context, formID string) ([]model.Submission, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).([]model.Submission), args.Error(1)
}

func (m *SubmissionRepository) ListByFormBetween(ctx context.Context, formID string, from, to time.Time) ([]model.Submission, error) {
	args := m.Called(ctx, formID, from, to)
	return args.Get(0).([]model.Submission), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = &UserRepository{}

func (m *UserRepository) Create(ctx context.Context, email string, hashedPassword []byte) (model.User, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}
