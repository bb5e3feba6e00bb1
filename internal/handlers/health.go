package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"raillo/internal/repositories"
	"raillo/internal/utils/response"
)

// HealthHandler reports liveness and cache connectivity.
type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

// Check reports service health. Redis being down degrades the report but
// keeps the endpoint at 200; the service can still proxy payments.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	cache := "ok"
	if h.redis != nil {
		if err := repositories.Ping(c.UserContext(), h.redis); err != nil {
			cache = "unreachable"
		}
	}
	return response.Success(c, fiber.Map{
		"status": "ok",
		"cache":  cache,
	})
}
