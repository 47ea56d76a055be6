package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderContentType, fiber.HeaderAuthorization, "apikey", HeaderRequestID},
		ExposeHeaders: []string{fiber.HeaderContentLength, HeaderRequestID},
		MaxAge:        600,
	})
}
