package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorpress/tutorpress-api/handlers"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/tutorpress/v1")
	api.Post("/auth/login", h.Login)
}
