package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

const mergeTimeout = 5 * time.Second

// ErrEventBufferFull is returned when the event log buffer cannot take
// another event; the only logging failure the endpoint reports.
var ErrEventBufferFull = errors.New("event buffer full")

// TrackingService ingests interaction events: it validates and normalizes
// the public payload, appends to the event log and merges session state.
type TrackingService interface {
	BuildEvent(req model.TrackRequest) (model.InteractionEvent, error)
	Track(ctx context.Context, event model.InteractionEvent) error
}

type trackingService struct {
	sessions repository.SessionRepository
	worker   EventWorker
	log      *zap.Logger
	now      func() time.Time
}

// NewTrackingService constructs a trackingService.
func NewTrackingService(sessions repository.SessionRepository, worker EventWorker, log *zap.Logger) TrackingService {
	return &trackingService{
		sessions: sessions,
		worker:   worker,
		log:      log,
		now:      time.Now,
	}
}

// BuildEvent validates a tracking request and constructs the immutable
// event record. The occurrence timestamp is always server-assigned.
func (s *trackingService) BuildEvent(req model.TrackRequest) (model.InteractionEvent, error) {
	if req.FormID == "" {
		return model.InteractionEvent{}, &ValidationError{Message: "formId is required"}
	}

	if req.Action == "" {
		return model.InteractionEvent{}, &ValidationError{Message: "action is required"}
	}

	if !model.IsValidEventType(req.Action) {
		return model.InteractionEvent{}, &ValidationError{Message: "unsupported action"}
	}

	if req.TimeSpent < 0 {
		return model.InteractionEvent{}, &ValidationError{Message: "timeSpent must not be negative"}
	}

	if len(req.DeviceInfo) > 0 && !json.Valid(req.DeviceInfo) {
		return model.InteractionEvent{}, &ValidationError{Message: "deviceInfo must be valid JSON"}
	}

	return model.InteractionEvent{
		EventID:    uuid.NewString(),
		FormID:     req.FormID,
		EventType:  req.Action,
		FieldID:    req.FieldID,
		SessionID:  req.SessionID,
		TimeSpent:  req.TimeSpent,
		DeviceInfo: req.DeviceInfo,
		UserAgent:  req.UserAgent,
		IPAddress:  req.IPAddress,
		OccurredAt: s.now().UTC(),
	}, nil
}

// Track appends the event to the event log and, when a session id is
// present, merges it into the session aggregate. The merge is best-effort:
// its failures are logged and never surfaced, so tracking can never break
// the form-fill experience.
func (s *trackingService) Track(ctx context.Context, event model.InteractionEvent) error {
	if !s.worker.Enqueue(event) {
		return ErrEventBufferFull
	}

	if event.SessionID == "" {
		return nil
	}

	// A client disconnect must not abort a merge already under way.
	mergeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mergeTimeout)
	defer cancel()

	if err := s.mergeSession(mergeCtx, event); err != nil {
		s.log.Error("session merge failed",
			zap.String("form_id", event.FormID),
			zap.String("session_id", event.SessionID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
	return nil
}

func (s *trackingService) mergeSession(ctx context.Context, event model.InteractionEvent) error {
	switch event.EventType {
	case model.EventView:
		return s.sessions.StartSession(ctx, event)
	case model.EventFieldFocus, model.EventFieldBlur:
		if event.FieldID == "" {
			return nil
		}
		return s.sessions.MergeFieldInteraction(ctx, event)
	case model.EventSubmit:
		return s.sessions.CompleteSession(ctx, event)
	default:
		// abandon and future event types are log-only.
		return nil
	}
}
