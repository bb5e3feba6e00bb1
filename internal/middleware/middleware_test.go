package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raillo/internal/models"
	"raillo/internal/services/identity"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.MemberClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: models.RoleMember,
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func testApp() *fiber.App {
	app := fiber.New()
	id := NewIdentity(identity.NewDecoder(testSecret, nil))
	app.Use(id.Handler, CheckoutSession)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"subject": identity.FromContext(c.UserContext()).SubjectID(),
			"session": SessionID(c),
		})
	})
	app.Get("/member-only", RequireMember, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestIdentity_MemberToken(t *testing.T) {
	app := testApp()
	req := httptest.NewRequest("GET", "/member-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "42", time.Now().Add(time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIdentity_LenientForGuests(t *testing.T) {
	app := testApp()

	t.Run("no token still passes open routes", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("expired token still passes open routes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "42", time.Now().Add(-time.Hour)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("guests are blocked from member routes", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/member-only", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCheckoutSession(t *testing.T) {
	app := testApp()

	t.Run("assigns a session id when absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		require.NoError(t, err)
		sid := resp.Header.Get(SessionHeader)
		assert.NoError(t, uuid.Validate(sid))
	})

	t.Run("echoes an existing session id", func(t *testing.T) {
		sid := uuid.NewString()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(SessionHeader, sid)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, sid, resp.Header.Get(SessionHeader))
	})

	t.Run("replaces a malformed session id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(SessionHeader, "../../etc/passwd")
		resp, err := app.Test(req)
		require.NoError(t, err)
		sid := resp.Header.Get(SessionHeader)
		assert.NoError(t, uuid.Validate(sid))
		assert.NotEqual(t, "../../etc/passwd", sid)
	})
}
