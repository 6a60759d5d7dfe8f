package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorpress/tutorpress-api/handlers"
	"github.com/tutorpress/tutorpress-api/middleware"
)

func BundleRoutes(app *fiber.App, h *handlers.BundleHandler) {
	api := app.Group("/tutorpress/v1")

	bundles := api.Group("/bundles", middleware.Protected())
	bundles.Get("", h.ListBundles)
	bundles.Post("", h.CreateBundle)
	bundles.Post("/benefits/save", h.SaveBundleBenefits)
	bundles.Get("/:id", h.GetBundle)
	bundles.Patch("/:id", h.UpdateBundle)
	bundles.Get("/:id/courses", h.GetBundleCourses)
	bundles.Patch("/:id/courses", h.UpdateBundleCourses)
	bundles.Get("/:id/benefits", h.GetBundleBenefits)
	bundles.Get("/:id/instructors", h.GetBundleInstructors)
}
