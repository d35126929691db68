package routes

import (
	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/controller"
)

// Controllers bundles everything Register needs to wire.
type Controllers struct {
	Auth      controller.AuthController
	Forms     controller.FormController
	Track     controller.TrackController
	Analytics controller.AnalyticsController
	Uploads   controller.UploadController
}

// Register attaches all HTTP routes to the Fiber app. requireAuth guards
// the account-scoped group; tracking and submissions stay public so
// embedded forms work without a session.
func Register(app *fiber.App, c Controllers, requireAuth fiber.Handler) {
	api := app.Group("/api")

	api.Post("/signup", c.Auth.Signup)
	api.Post("/login", c.Auth.Login)
	api.Post("/logout", c.Auth.Logout)

	api.Post("/analytics/track", c.Track.TrackEvent)
	api.Post("/forms/:formId/submit", c.Forms.SubmitForm)

	authed := api.Group("", requireAuth)
	authed.Post("/forms", c.Forms.CreateForm)
	authed.Get("/forms", c.Forms.ListForms)
	authed.Get("/forms/:formId", c.Forms.GetForm)
	authed.Put("/forms/:formId", c.Forms.UpdateForm)
	authed.Delete("/forms/:formId", c.Forms.DeleteForm)
	authed.Post("/forms/:formId/duplicate", c.Forms.DuplicateForm)
	authed.Get("/forms/:formId/submissions", c.Forms.ListSubmissions)
	authed.Get("/analytics/:formId", c.Analytics.GetFormAnalytics)
	authed.Post("/uploads", c.Uploads.Upload)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
