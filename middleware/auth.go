package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"templatehub/api-gateway/services"
)

// UserContextKey is the fiber locals key holding the authenticated admin.
const UserContextKey = "admin_user"

// RequireAdmin guards the admin surface. It expects a Bearer token issued
// by the auth backend and rejects any session whose account is not on the
// allow-list, even when the token itself is valid.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Authentication required",
			})
		}

		user, err := auth.CurrentUser(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "You do not have permission to access the admin portal.",
			})
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
