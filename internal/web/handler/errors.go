package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/conftrack/conftrack/internal/auth"
)

// Fail writes a JSON error body with the given status code.
func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// FailForAuthErr maps an error from the auth package to a JSON error
// response. Unknown errors become 500 without leaking their message.
func FailForAuthErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Fail(c, fiber.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		return Fail(c, fiber.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, auth.ErrUserExists):
		return Fail(c, fiber.StatusConflict, "username already taken")
	case errors.Is(err, auth.ErrMissingPassword):
		return Fail(c, fiber.StatusBadRequest, "password must not be empty")
	case errors.Is(err, auth.ErrCreationNotSupported):
		return Fail(c, fiber.StatusBadRequest, "account creation is not supported for this username")
	case errors.Is(err, auth.ErrUserNotFound):
		return Fail(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, auth.ErrUserDisabled):
		return Fail(c, fiber.StatusUnauthorized, "invalid username or password")
	default:
		return Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
