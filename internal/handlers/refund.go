package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/models"
	"raillo/internal/services/refund"
	"raillo/internal/upstream"
	"raillo/internal/utils/response"
)

// RefundHandler drives the quote-then-confirm refund flow.
type RefundHandler struct {
	service refund.Service
}

func NewRefundHandler(service refund.Service) *RefundHandler {
	if service == nil {
		panic("refund service is required")
	}
	return &RefundHandler{service: service}
}

// Quote returns the time-tiered refund calculation for a payment.
func (h *RefundHandler) Quote(c *fiber.Ctx) error {
	var req models.RefundCalculationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid refund request")
	}
	quote, err := h.service.Quote(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, refund.ErrInvalidPaymentID):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, refund.ErrPaymentNotFound):
			return response.NotFound(c, err.Error())
		case upstream.IsUnauthorized(err):
			return response.Unauthorized(c, "session expired")
		default:
			// The backend's rejection reason is what the user acts on.
			return response.BadGateway(c, upstream.MessageOf(err, "refund calculation failed"))
		}
	}
	return response.Success(c, quote)
}

type confirmRequest struct {
	Quote *models.RefundQuote `json:"quote"`
}

// Confirm processes the quoted refund.
func (h *RefundHandler) Confirm(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid refund confirmation")
	}
	result, err := h.service.Confirm(c.UserContext(), req.Quote)
	if err != nil {
		switch {
		case errors.Is(err, refund.ErrQuoteRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, refund.ErrNotRefundable):
			return response.UnprocessableEntity(c, err.Error())
		case upstream.IsUnauthorized(err):
			return response.Unauthorized(c, "session expired")
		default:
			return response.BadGateway(c, upstream.MessageOf(err, "refund processing failed"))
		}
	}
	return response.Success(c, result)
}
