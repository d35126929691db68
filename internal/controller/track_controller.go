package controller

import (
	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/model"
	"formforge-api/internal/service"
)

type TrackController interface {
	TrackEvent(c *fiber.Ctx) error
}

type trackController struct {
	tracking service.TrackingService
}

// NewTrackController builds a TrackController.
func NewTrackController(tracking service.TrackingService) TrackController {
	return &trackController{tracking: tracking}
}

// TrackEvent accepts a single interaction event from a public form page.
// The caller is unauthenticated; everything beyond basic validation is
// best-effort and must never block the form-fill experience.
func (h *trackController) TrackEvent(c *fiber.Ctx) error {
	var req model.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	// The client may omit transport metadata; take it from the request.
	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	event, err := h.tracking.BuildEvent(req)
	if err != nil {
		return httpError(err, "failed to track analytics")
	}

	if err := h.tracking.Track(c.Context(), event); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to track analytics")
	}

	return c.JSON(fiber.Map{
		"message": "Analytics tracked successfully",
		"data": model.TrackAck{
			FormID:    event.FormID,
			Action:    event.EventType,
			FieldID:   event.FieldID,
			SessionID: event.SessionID,
		},
	})
}
