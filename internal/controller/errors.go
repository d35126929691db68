package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/service"
)

// httpError maps service-layer error types onto HTTP statuses. Anything
// unrecognized is a server fault with a generic message so internals never
// leak to callers.
func httpError(err error, fallback string) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Message)
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		return fiber.NewError(fiber.StatusNotFound, notFoundErr.Message)
	}

	var unauthorizedErr *service.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		return fiber.NewError(fiber.StatusUnauthorized, unauthorizedErr.Message)
	}

	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
