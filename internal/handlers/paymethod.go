package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/models"
	"raillo/internal/services/paymethod"
	"raillo/internal/utils/response"
)

// PayMethodHandler manages the member's saved payment instruments.
type PayMethodHandler struct {
	service paymethod.Service
}

func NewPayMethodHandler(service paymethod.Service) *PayMethodHandler {
	if service == nil {
		panic("paymethod service is required")
	}
	return &PayMethodHandler{service: service}
}

// List returns the masked instrument list plus which one to preselect.
func (h *PayMethodHandler) List(c *fiber.Ctx) error {
	methods := h.service.List(c.UserContext())
	body := fiber.Map{"paymentMethods": methods}
	if selected := paymethod.DefaultSelection(methods); selected != nil {
		body["defaultMethodId"] = selected.ID
	}
	return response.Success(c, body)
}

// Raw returns one instrument with unmasked credentials, for populating the
// payment form.
func (h *PayMethodHandler) Raw(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment method id")
	}
	method, err := h.service.Raw(c.UserContext(), int64(id))
	if err != nil {
		return payMethodError(c, err)
	}
	return response.Success(c, method)
}

// Save registers a new instrument.
func (h *PayMethodHandler) Save(c *fiber.Ctx) error {
	var req models.CreateSavedPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid payment method")
	}
	method, err := h.service.Save(c.UserContext(), req)
	if err != nil {
		return payMethodError(c, err)
	}
	return response.Created(c, method)
}

// Delete removes an instrument.
func (h *PayMethodHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment method id")
	}
	if err := h.service.Delete(c.UserContext(), int64(id)); err != nil {
		return payMethodError(c, err)
	}
	return response.Success(c, fiber.Map{"deleted": true})
}

// SetDefault marks an instrument as the default.
func (h *PayMethodHandler) SetDefault(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment method id")
	}
	if err := h.service.SetDefault(c.UserContext(), int64(id)); err != nil {
		return payMethodError(c, err)
	}
	return response.Success(c, fiber.Map{"updated": true})
}

func payMethodError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, paymethod.ErrMembersOnly):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, paymethod.ErrMethodNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, paymethod.ErrInvalidMethodID):
		return response.BadRequest(c, err.Error())
	default:
		return response.BadGateway(c, "payment method operation failed")
	}
}
