// Package middleware carries the fiber middleware for identity resolution
// and checkout session tracking.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"raillo/internal/models"
	"raillo/internal/services/identity"
	"raillo/internal/upstream"
	"raillo/internal/utils/response"
)

// Identity resolves the caller's identity from the Authorization header and
// stores it in the request context. Resolution is lenient: a missing or bad
// token makes the caller a guest, it never rejects the request. Guest
// checkout and guest refund lookup depend on that.
type Identity struct {
	decoder *identity.Decoder
}

func NewIdentity(decoder *identity.Decoder) *Identity {
	if decoder == nil {
		panic("identity decoder is required")
	}
	return &Identity{decoder: decoder}
}

// Handler resolves and stores the identity, and forwards the raw bearer
// token for upstream calls made on the caller's behalf.
func (m *Identity) Handler(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))

	id := m.decoder.Resolve(c.UserContext(), token)
	ctx := identity.WithIdentity(c.UserContext(), id)
	if token != "" && id.IsMember() {
		ctx = upstream.WithToken(ctx, token)
	}
	c.SetUserContext(ctx)
	c.Locals("identity", id)

	return c.Next()
}

// RequireMember rejects guests. Placed after the Identity handler on routes
// that only make sense for a signed-in member.
func RequireMember(c *fiber.Ctx) error {
	id, ok := c.Locals("identity").(models.Identity)
	if !ok || !id.IsMember() {
		return response.Unauthorized(c, "login required")
	}
	return c.Next()
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
