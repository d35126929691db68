package controller

import (
	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/service"
)

type AnalyticsController interface {
	GetFormAnalytics(c *fiber.Ctx) error
}

type analyticsController struct {
	analytics service.AnalyticsService
}

// NewAnalyticsController builds an AnalyticsController.
func NewAnalyticsController(analytics service.AnalyticsService) AnalyticsController {
	return &analyticsController{analytics: analytics}
}

// GetFormAnalytics serves the dashboard report for a form the caller owns.
// An unrecognized range token silently falls back to the default window.
func (h *analyticsController) GetFormAnalytics(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	report, err := h.analytics.GetFormAnalytics(c.Context(), userID, c.Params("formId"), c.Query("range"))
	if err != nil {
		return httpError(err, "failed to compute analytics")
	}

	return c.JSON(fiber.Map{"analytics": report})
}
