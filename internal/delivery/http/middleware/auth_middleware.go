package middleware

import (
	"errors"

	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const ctxIdentityKey = "identity"

// AuthMiddleware resolves the bearer token to an identity. It decides
// nothing about what the caller may do.
type AuthMiddleware struct {
	provider identity.Provider
}

func NewAuthMiddleware(provider identity.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := identity.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
		}

		who, err := m.provider.Verify(c.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, err)
			}
			return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}

		c.Locals(ctxIdentityKey, who)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware.
func IdentityFrom(c fiber.Ctx) (identity.Identity, bool) {
	who, ok := c.Locals(ctxIdentityKey).(identity.Identity)
	return who, ok && who.UserID != ""
}
