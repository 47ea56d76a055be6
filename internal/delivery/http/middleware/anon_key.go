package middleware

import (
	"crypto/subtle"

	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// RequireAnonKey accepts the public anon key either as a bearer token or in
// the apikey header, the way Supabase clients send it. An empty key
// disables the check.
func RequireAnonKey(key string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}

		got := c.Get("apikey")
		if got == "" {
			got, _ = identity.BearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
		}
		return c.Next()
	}
}
