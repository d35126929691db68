package mockservice

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"formforge-api/internal/model"
	"formforge-api/internal/service"
)

type TrackingService struct {
	mock.Mock
}

var _ service.TrackingService = &TrackingService{}

func (m *TrackingService) BuildEvent(req model.TrackRequest) (model.InteractionEvent, error) {
	args := m.Called(req)
	return args.Get(0).(model.InteractionEvent), args.Error(1)
}

func (m *TrackingService) Track(ctx context.Context, event model.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type AnalyticsService struct {
	mock.Mock
}

var _ service.AnalyticsService = &AnalyticsService{}

func (m *AnalyticsService) GetFormAnalytics(ctx context.Context, userID int, formID, rangeToken string) (model.FormAnalyticsReport, error) {
	args := m.Called(ctx, userID, formID, rangeToken)
	return args.Get(0).(model.FormAnalyticsReport), args.Error(1)
}

type FormService struct {
	mock.Mock
}

var _ service.FormService = &FormService{}

func (m *FormService) CreateForm(ctx context.Context, userID int, req model.CreateFormRequest) (model.Form, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormService) ListForms(ctx context.Context, userID int) ([]model.Form, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Form), args.Error(1)
}

func (m *FormService) GetForm(ctx context.Context, userID int, formID string) (model.Form, error) {
	args := m.Called(ctx, userID, formID)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormService) UpdateForm(ctx context.Context, userID int, formID string, req model.UpdateFormRequest) (model.Form, error) {
	args := m.Called(ctx, userID, formID, req)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormService) DeleteForm(ctx context.Context, userID int, formID string) error {
	args := m.Called(ctx, userID, formID)
	return args.Error(0)
}

func (m *FormService) DuplicateForm(ctx context.Context, userID int, formID string) (model.Form, error) {
	args := m.Called(ctx, userID, formID)
	return args.Get(0).(model.Form), args.Error(1)
}

func (m *FormService) SubmitForm(ctx context.Context, formID string, req model.SubmitFormRequest) (model.Submission, error) {
	args := m.Called(ctx, formID, req)
	return args.Get(0).(model.Submission), args.Error(1)
}

func (m *FormService) ListSubmissions(ctx context.Context, userID int, formID string) ([]model.Submission, error) {
	args := m.Called(ctx, userID, formID)
	return args.Get(0).([]model.Submission), args.Error(1)
}

type AuthService struct {
	mock.Mock
}

var _ service.AuthService = &AuthService{}

func (m *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.User, string, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if v := args.Get(0); v != nil {
		return v.(*service.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

type UploadService struct {
	mock.Mock
}

var _ service.UploadService = &UploadService{}

func (m *UploadService) Upload(ctx context.Context, formID, fieldID, fileName, contentType string, size int64, reader io.Reader) (service.UploadResult, error) {
	args := m.Called(ctx, formID, fieldID, fileName, contentType, size, reader)
	return args.Get(0).(service.UploadResult), args.Error(1)
}
