package controller

import (
	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/service"
)

type UploadController interface {
	Upload(c *fiber.Ctx) error
}

type uploadController struct {
	uploads service.UploadService
}

// NewUploadController builds an UploadController.
func NewUploadController(uploads service.UploadService) UploadController {
	return &uploadController{uploads: uploads}
}

func (h *uploadController) Upload(c *fiber.Ctx) error {
	if _, ok := c.Locals(UserIDKey).(int); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read file")
	}
	defer file.Close()

	result, err := h.uploads.Upload(
		c.Context(),
		c.FormValue("formId"),
		c.FormValue("fieldId"),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return httpError(err, "failed to upload file")
	}

	return c.JSON(fiber.Map{"file": result})
}
