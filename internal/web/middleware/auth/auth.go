package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/db/models"
)

const (
	// LocalsUserKey is the fiber locals key the authenticated user is stored under.
	LocalsUserKey = "CurrentUser"

	bearerPrefix = "Bearer "
)

// New creates the bearer token middleware. Requests without a valid
// token get a 401 JSON response; on success the resolved user is placed
// in the request locals.
func New(identity *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c, "missing bearer token")
		}

		user, err := identity.Resolve(token)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(LocalsUserKey, user)

		return c.Next()
	}
}

// RequireSuperuser is a route guard that rejects non-superuser accounts.
// It must run after the bearer token middleware.
func RequireSuperuser(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return unauthorized(c, "missing bearer token")
	}

	if !user.Superuser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "superuser privileges required",
		})
	}

	return c.Next()
}

// CurrentUser returns the authenticated user from the request locals,
// or nil if the request did not pass the bearer token middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(LocalsUserKey).(*models.User)
	if !ok {
		return nil
	}

	return user
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
