package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"formforge-api/internal/model"
)

type SessionRepositoryTestSuite struct {
	suite.Suite

	mock       sqlmock.Sqlmock
	repository *sessionRepository
}

func TestSessionRepository(t *testing.T) {
	suite.Run(t, new(SessionRepositoryTestSuite))
}

func (s *SessionRepositoryTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	s.Require().NoError(err)
	s.mock = mock
	s.repository = &sessionRepository{db: db}
}

func (s *SessionRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func sessionEvent(eventType string) model.InteractionEvent {
	return model.InteractionEvent{
		EventID:    "ev-1",
		FormID:     "form-1",
		EventType:  eventType,
		SessionID:  "sess-1",
		DeviceInfo: json.RawMessage(`{"deviceType":"mobile"}`),
		UserAgent:  "ua",
		IPAddress:  "10.0.0.1",
		OccurredAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *SessionRepositoryTestSuite) TestStartSession() {
	event := sessionEvent(model.EventView)

	s.mock.ExpectExec(startSessionQuery).
		WithArgs(event.FormID, event.SessionID, []byte(event.DeviceInfo), event.UserAgent, event.IPAddress, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repository.StartSession(context.Background(), event))
}

// A second view hits the conflict branch and affects no rows; that is still
// a success for the caller.
func (s *SessionRepositoryTestSuite) TestStartSession_DuplicateIsNoOp() {
	event := sessionEvent(model.EventView)

	s.mock.ExpectExec(startSessionQuery).
		WithArgs(event.FormID, event.SessionID, []byte(event.DeviceInfo), event.UserAgent, event.IPAddress, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s.NoError(s.repository.StartSession(context.Background(), event))
}

func (s *SessionRepositoryTestSuite) TestStartSession_NoDeviceInfoInsertsNull() {
	event := sessionEvent(model.EventView)
	event.DeviceInfo = nil

	s.mock.ExpectExec(startSessionQuery).
		WithArgs(event.FormID, event.SessionID, nil, event.UserAgent, event.IPAddress, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repository.StartSession(context.Background(), event))
}

func (s *SessionRepositoryTestSuite) TestMergeFieldInteraction() {
	event := sessionEvent(model.EventFieldBlur)
	event.FieldID = "email"
	event.TimeSpent = 5

	s.mock.ExpectExec(mergeFieldQuery).
		WithArgs(event.FormID, event.SessionID, event.FieldID, event.TimeSpent, []byte(event.DeviceInfo), event.UserAgent, event.IPAddress, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repository.MergeFieldInteraction(context.Background(), event))
}

func (s *SessionRepositoryTestSuite) TestMergeFieldInteraction_Error() {
	event := sessionEvent(model.EventFieldFocus)
	event.FieldID = "name"

	s.mock.ExpectExec(mergeFieldQuery).
		WithArgs(event.FormID, event.SessionID, event.FieldID, event.TimeSpent, []byte(event.DeviceInfo), event.UserAgent, event.IPAddress, event.OccurredAt).
		WillReturnError(errors.New("connection reset"))

	err := s.repository.MergeFieldInteraction(context.Background(), event)

	s.Error(err)
	s.ErrorContains(err, "merge field interaction")
}

func (s *SessionRepositoryTestSuite) TestCompleteSession() {
	event := sessionEvent(model.EventSubmit)
	event.TimeSpent = 3

	s.mock.ExpectExec(completeSessionQuery).
		WithArgs(event.FormID, event.SessionID, event.TimeSpent, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repository.CompleteSession(context.Background(), event))
}

// Completing an already-completed session matches no rows; the terminal
// state is preserved without an error.
func (s *SessionRepositoryTestSuite) TestCompleteSession_AlreadyCompleted() {
	event := sessionEvent(model.EventSubmit)

	s.mock.ExpectExec(completeSessionQuery).
		WithArgs(event.FormID, event.SessionID, event.TimeSpent, event.OccurredAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s.NoError(s.repository.CompleteSession(context.Background(), event))
}

func (s *SessionRepositoryTestSuite) TestListStartedBetween() {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	started := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)
	ended := time.Date(2025, 1, 2, 9, 31, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"form_id", "session_id", "fields_interacted", "total_time_spent", "is_completed",
		"device_info", "user_agent", "ip_address", "started_at", "ended_at",
	}).
		AddRow("form-1", "sess-1", pq.Array([]string{"name", "email"}), 8, true, []byte(`{"deviceType":"desktop"}`), "ua", "10.0.0.1", started, ended).
		AddRow("form-1", "sess-2", pq.Array([]string{}), 0, false, nil, "", "", started, nil)

	s.mock.ExpectQuery(listSessionsQuery).
		WithArgs("form-1", from, to).
		WillReturnRows(rows)

	sessions, err := s.repository.ListStartedBetween(context.Background(), "form-1", from, to)

	s.Require().NoError(err)
	s.Require().Len(sessions, 2)

	s.Equal([]string{"name", "email"}, sessions[0].FieldsInteracted)
	s.Equal(8, sessions[0].TotalTimeSpent)
	s.True(sessions[0].IsCompleted)
	s.Equal("desktop", sessions[0].DeviceType())
	s.Require().NotNil(sessions[0].EndedAt)
	s.Equal(ended, *sessions[0].EndedAt)

	s.False(sessions[1].IsCompleted)
	s.Nil(sessions[1].EndedAt)
	s.Equal("unknown", sessions[1].DeviceType())
}

func (s *SessionRepositoryTestSuite) TestListStartedBetween_QueryError() {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectQuery(listSessionsQuery).
		WithArgs("form-1", from, to).
		WillReturnError(errors.New("connection refused"))

	_, err := s.repository.ListStartedBetween(context.Background(), "form-1", from, to)

	s.Error(err)
	s.ErrorContains(err, "query sessions")
}
