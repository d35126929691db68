package controller

import (
	"github.com/gofiber/fiber/v2"

	"formforge-api/internal/model"
	"formforge-api/internal/service"
)

// UserIDKey is the request-locals key under which the auth middleware
// stores the authenticated user id.
const UserIDKey = "userID"

type FormController interface {
	CreateForm(c *fiber.Ctx) error
	ListForms(c *fiber.Ctx) error
	GetForm(c *fiber.Ctx) error
	UpdateForm(c *fiber.Ctx) error
	DeleteForm(c *fiber.Ctx) error
	DuplicateForm(c *fiber.Ctx) error
	SubmitForm(c *fiber.Ctx) error
	ListSubmissions(c *fiber.Ctx) error
}

type formController struct {
	forms service.FormService
}

// NewFormController builds a FormController.
func NewFormController(forms service.FormService) FormController {
	return &formController{forms: forms}
}

func (h *formController) CreateForm(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req model.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	form, err := h.forms.CreateForm(c.Context(), userID, req)
	if err != nil {
		return httpError(err, "failed to create form")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"form": form})
}

func (h *formController) ListForms(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	forms, err := h.forms.ListForms(c.Context(), userID)
	if err != nil {
		return httpError(err, "failed to list forms")
	}
	if forms == nil {
		forms = []model.Form{}
	}

	return c.JSON(fiber.Map{"forms": forms})
}

func (h *formController) GetForm(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	form, err := h.forms.GetForm(c.Context(), userID, c.Params("formId"))
	if err != nil {
		return httpError(err, "failed to get form")
	}

	return c.JSON(fiber.Map{"form": form})
}

func (h *formController) UpdateForm(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req model.UpdateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	form, err := h.forms.UpdateForm(c.Context(), userID, c.Params("formId"), req)
	if err != nil {
		return httpError(err, "failed to update form")
	}

	return c.JSON(fiber.Map{"form": form})
}

func (h *formController) DeleteForm(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.forms.DeleteForm(c.Context(), userID, c.Params("formId")); err != nil {
		return httpError(err, "failed to delete form")
	}

	return c.JSON(fiber.Map{"message": "Form deleted successfully"})
}

func (h *formController) DuplicateForm(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	form, err := h.forms.DuplicateForm(c.Context(), userID, c.Params("formId"))
	if err != nil {
		return httpError(err, "failed to duplicate form")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"form": form})
}

// SubmitForm is public: form fills come from visitors, not account holders.
func (h *formController) SubmitForm(c *fiber.Ctx) error {
	var req model.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	sub, err := h.forms.SubmitForm(c.Context(), c.Params("formId"), req)
	if err != nil {
		return httpError(err, "failed to submit form")
	}

	return c.JSON(fiber.Map{
		"message":      "Form submitted successfully",
		"submissionId": sub.ID,
	})
}

func (h *formController) ListSubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals(UserIDKey).(int)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	subs, err := h.forms.ListSubmissions(c.Context(), userID, c.Params("formId"))
	if err != nil {
		return httpError(err, "failed to list submissions")
	}
	if subs == nil {
		subs = []model.Submission{}
	}

	return c.JSON(fiber.Map{"submissions": subs})
}
