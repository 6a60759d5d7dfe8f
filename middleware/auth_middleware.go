package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"

	config "github.com/tutorpress/tutorpress-api/configs"
	"github.com/tutorpress/tutorpress-api/utils"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Missing or malformed JWT")
	}
	return utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid or expired JWT")
}
