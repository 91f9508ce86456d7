package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// RequireUser rejects requests without a valid bearer token.
func RequireUser(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := tokens.Verify(bearerToken(c))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "please authenticate")
		}
		c.Locals(userIDKey, id)
		return c.Next()
	}
}

// OptionalUser records the user of a valid bearer token but lets anonymous
// requests through.
func OptionalUser(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := bearerToken(c); raw != "" {
			if id, err := tokens.Verify(raw); err == nil {
				c.Locals(userIDKey, id)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated user of the request, if any.
func UserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(userIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
