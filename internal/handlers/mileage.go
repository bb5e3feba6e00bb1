package handlers

import (
	"github.com/gofiber/fiber/v2"

	"raillo/internal/services/mileage"
	"raillo/internal/utils/response"
)

// MileageHandler exposes the balance used by the mileage field at checkout.
type MileageHandler struct {
	service mileage.Service
}

func NewMileageHandler(service mileage.Service) *MileageHandler {
	if service == nil {
		panic("mileage service is required")
	}
	return &MileageHandler{service: service}
}

// Balance returns the caller's mileage balance and the cap usable against
// the given order amount. Guests get zeros, not an error.
func (h *MileageHandler) Balance(c *fiber.Ctx) error {
	orderAmount := int64(c.QueryInt("orderAmount", 0))
	balance := h.service.BalanceForOrder(c.UserContext(), orderAmount)
	return response.Success(c, balance)
}
