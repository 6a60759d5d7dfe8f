package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Success wraps data in the uniform {success, message, data} envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

// Error emits a structured error response with an HTTP status and a
// machine-readable code. Server-side failures get logged.
func Error(c *fiber.Ctx, status int, code, message string) error {
	if status >= 500 {
		log.Printf("🔥 [%s] %s %s: %s", code, c.Method(), c.Path(), message)
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "code": code, "message": message})
}
