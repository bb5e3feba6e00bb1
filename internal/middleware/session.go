package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader names the checkout session id header. The web client echoes
// it on every checkout call so the draft and guest identity survive page
// loads.
const SessionHeader = "X-Checkout-Session"

const sessionLocal = "checkoutSession"

// CheckoutSession assigns a session id to requests that arrive without one
// and mirrors the id back on the response either way.
func CheckoutSession(c *fiber.Ctx) error {
	sid := c.Get(SessionHeader)
	if sid == "" || uuid.Validate(sid) != nil {
		sid = uuid.NewString()
	}
	c.Locals(sessionLocal, sid)
	c.Set(SessionHeader, sid)
	return c.Next()
}

// SessionID returns the checkout session id resolved for this request.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionLocal).(string)
	return sid
}
