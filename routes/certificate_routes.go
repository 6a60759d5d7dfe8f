package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorpress/tutorpress-api/handlers"
	"github.com/tutorpress/tutorpress-api/middleware"
)

func CertificateRoutes(app *fiber.App, h *handlers.CertificateHandler) {
	api := app.Group("/tutorpress/v1")

	certificate := api.Group("/certificate", middleware.Protected())
	certificate.Get("/templates", h.GetTemplates)
	certificate.Post("/save", h.SaveSelection)
	certificate.Get("/selection/:courseId", h.GetSelection)
	certificate.Get("/preview/:courseId", h.PreviewSelection)
}
