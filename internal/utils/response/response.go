// Package response holds the JSON response helpers shared by all handlers.
// Bodies follow the backend convention the web client already speaks:
// successful payloads under result, failures under errorMessage.
package response

import "github.com/gofiber/fiber/v2"

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success wraps data in the result envelope with status 200.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, fiber.Map{"result": data})
}

// Created wraps data in the result envelope with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, fiber.Map{"result": data})
}

// Error sends an errorMessage body with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, fiber.Map{"errorMessage": message})
}

// BadRequest sends an errorMessage body with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends an errorMessage body with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends an errorMessage body with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends an errorMessage body with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends an errorMessage body with status 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// UnprocessableEntity sends an errorMessage body with status 422.
func UnprocessableEntity(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnprocessableEntity, message)
}

// BadGateway sends an errorMessage body with status 502.
func BadGateway(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadGateway, message)
}

// InternalError sends an errorMessage body with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
