// Package handlers contains the fiber HTTP handlers. Each handler owns one
// domain surface and delegates all decisions to its service.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/middleware"
	"raillo/internal/models"
	"raillo/internal/repositories"
	"raillo/internal/utils/response"
	"raillo/internal/validation"
)

// CheckoutHandler manages the handover state between booking and payment:
// the reservation draft and, for guests, the self-chosen identity.
type CheckoutHandler struct {
	cache repositories.CheckoutCache
}

func NewCheckoutHandler(cache repositories.CheckoutCache) *CheckoutHandler {
	if cache == nil {
		panic("checkout cache is required")
	}
	return &CheckoutHandler{cache: cache}
}

// SaveDraft stores the in-progress reservation for the payment page.
func (h *CheckoutHandler) SaveDraft(c *fiber.Ctx) error {
	var draft models.ReservationDraft
	if err := c.BodyParser(&draft); err != nil {
		return response.BadRequest(c, "invalid reservation draft")
	}
	if draft.TotalFare() <= 0 {
		return response.BadRequest(c, "reservation draft has no fare")
	}
	if err := h.cache.SaveDraft(c.UserContext(), middleware.SessionID(c), &draft); err != nil {
		return response.InternalError(c, "failed to save reservation draft")
	}
	return response.Success(c, fiber.Map{"sessionId": middleware.SessionID(c)})
}

// Draft returns the stored reservation draft.
func (h *CheckoutHandler) Draft(c *fiber.Ctx) error {
	draft, err := h.cache.Draft(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "no reservation in progress")
		}
		return response.InternalError(c, "failed to load reservation draft")
	}
	return response.Success(c, draft)
}

type guestIdentityRequest struct {
	models.GuestIdentity
	PasswordConfirm string `json:"passwordConfirm"`
}

// SaveGuestIdentity stores the guest's checkout identity. It is validated
// here once so approval and reconciliation can trust what they read back.
// The password confirmation is checked and discarded; only the identity
// itself is cached.
func (h *CheckoutHandler) SaveGuestIdentity(c *fiber.Ctx) error {
	var req guestIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid guest info")
	}
	if err := validation.GuestIdentity(req.Name, req.Phone, req.Password); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := validation.GuestPassword(req.Password, req.PasswordConfirm); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.cache.SaveGuestIdentity(c.UserContext(), middleware.SessionID(c), &req.GuestIdentity); err != nil {
		return response.InternalError(c, "failed to save guest info")
	}
	return response.Success(c, fiber.Map{"saved": true})
}

// Keys lists the live checkout keys for this session. Support tooling uses
// it to see what state a stuck checkout still holds.
func (h *CheckoutHandler) Keys(c *fiber.Ctx) error {
	keys, err := h.cache.Keys(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return response.InternalError(c, "failed to inspect checkout state")
	}
	return response.Success(c, fiber.Map{"keys": keys})
}

// Clear drops all checkout state for this session.
func (h *CheckoutHandler) Clear(c *fiber.Ctx) error {
	if err := h.cache.Clear(c.UserContext(), middleware.SessionID(c)); err != nil {
		return response.InternalError(c, "failed to clear checkout state")
	}
	return response.Success(c, fiber.Map{"cleared": true})
}
