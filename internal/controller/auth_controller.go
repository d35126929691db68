package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/model"
	"formforge-api/internal/service"
)

// AuthCookieName is the cookie carrying the session JWT.
const AuthCookieName = "jwt_token"

type AuthController interface {
	Signup(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
}

type authController struct {
	auth      service.AuthService
	cookieTTL time.Duration
}

// NewAuthController builds an AuthController. cookieTTL should match the
// token TTL so cookie and token expire together.
func NewAuthController(auth service.AuthService, cookieTTL time.Duration) AuthController {
	return &authController{auth: auth, cookieTTL: cookieTTL}
}

func (h *authController) Signup(c *fiber.Ctx) error {
	var req model.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	user, token, err := h.auth.Signup(c.Context(), req)
	if err != nil {
		return httpError(err, "failed to sign up")
	}

	h.setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *authController) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	user, token, err := h.auth.Login(c.Context(), req)
	if err != nil {
		return httpError(err, "failed to log in")
	}

	h.setAuthCookie(c, token)
	return c.JSON(fiber.Map{"user": user})
}

func (h *authController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *authController) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
