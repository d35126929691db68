package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/controller"
	"formforge-api/internal/service"
)

// RequireAuth resolves the caller's identity from the auth cookie or a
// bearer token and stores the user id in request locals.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(controller.AuthCookieName)
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(controller.UserIDKey, claims.UserID)
		return c.Next()
	}
}
