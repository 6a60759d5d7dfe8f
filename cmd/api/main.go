package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	config "github.com/tutorpress/tutorpress-api/configs"
	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/handlers"
	"github.com/tutorpress/tutorpress-api/jobs"
	"github.com/tutorpress/tutorpress-api/routes"
	"github.com/tutorpress/tutorpress-api/services"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	c := cron.New()
	c.AddFunc("@every 1h", jobs.PruneBundleCourseLinks)
	go c.Start()
	log.Println("✅ Cron job for bundle link pruning scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "TutorPress API",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    "unexpected",
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Welcome to TutorPress API",
		})
	})

	addons := services.NewAddonService()
	templates := services.NewFileTemplateSource(
		config.Config("CERT_TEMPLATES_DIR"),
		config.ConfigDefault("CERT_TEMPLATE_BASE_URL", "/assets/certificate-templates"),
	)
	preview := services.NewPreviewRenderer()

	routes.AuthRoutes(app, handlers.NewAuthHandler(database.DB))
	routes.BundleRoutes(app, handlers.NewBundleHandler(database.DB))
	routes.CertificateRoutes(app, handlers.NewCertificateHandler(database.DB, templates, addons, preview))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
