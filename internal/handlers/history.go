package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/models"
	"raillo/internal/services/payment"
	"raillo/internal/services/receipt"
	"raillo/internal/upstream"
	"raillo/internal/utils/response"
	"raillo/internal/validation"
)

// HistoryHandler serves payment history for members and the single-payment
// lookup guests get with their checkout identity.
type HistoryHandler struct {
	client   upstream.Client
	receipts receipt.Service
}

func NewHistoryHandler(client upstream.Client, receipts receipt.Service) *HistoryHandler {
	if client == nil {
		panic("upstream client is required")
	}
	if receipts == nil {
		panic("receipt service is required")
	}
	return &HistoryHandler{client: client, receipts: receipts}
}

// Member returns a filtered page of the member's payment history.
func (h *HistoryHandler) Member(c *fiber.Ctx) error {
	req := models.PaymentHistorySearchRequest{
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		PaymentStatus: c.Query("paymentStatus"),
		PaymentMethod: c.Query("paymentMethod"),
		Page:          c.QueryInt("page", 0),
		Size:          c.QueryInt("size", 10),
		Sort:          c.Query("sort"),
	}
	page, err := h.client.MemberPaymentHistory(c.UserContext(), req)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			return response.Unauthorized(c, "session expired")
		}
		return response.BadGateway(c, upstream.MessageOf(err, "failed to load payment history"))
	}
	return response.Success(c, page)
}

// GuestSearch looks up a guest payment by reservation id and checkout
// identity.
func (h *HistoryHandler) GuestSearch(c *fiber.Ctx) error {
	var req models.GuestPaymentSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid search request")
	}
	if req.ReservationID <= 0 {
		return response.BadRequest(c, "invalid reservation id")
	}
	if err := validation.GuestIdentity(req.Name, req.Phone, req.Password); err != nil {
		return response.BadRequest(c, err.Error())
	}
	// The stored record holds the fixed-width form sent at approval, so the
	// lookup must send the same form or a 6+-char password never matches.
	req.Password = payment.WirePassword(req.Password)

	item, err := h.client.GuestPaymentSearch(c.UserContext(), req)
	if err != nil {
		if upstream.IsNotFound(err) {
			return response.NotFound(c, "payment not found")
		}
		return response.BadGateway(c, upstream.MessageOf(err, "guest payment lookup failed"))
	}
	return response.Success(c, item)
}

// Detail returns one payment record.
func (h *HistoryHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment id")
	}
	item, err := h.client.PaymentDetail(c.UserContext(), int64(id))
	if err != nil {
		if upstream.IsNotFound(err) {
			return response.NotFound(c, "payment not found")
		}
		if upstream.IsUnauthorized(err) {
			return response.Unauthorized(c, "session expired")
		}
		return response.BadGateway(c, upstream.MessageOf(err, "failed to load payment"))
	}
	return response.Success(c, item)
}

// Receipt streams the payment's PDF receipt.
func (h *HistoryHandler) Receipt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid payment id")
	}

	pdf, err := h.receipts.Generate(c.UserContext(), int64(id))
	if err != nil {
		switch {
		case errors.Is(err, receipt.ErrPaymentNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, receipt.ErrNotSettled):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalError(c, "failed to generate receipt")
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+strconv.Itoa(id)+`.pdf"`)
	return c.Send(pdf)
}
