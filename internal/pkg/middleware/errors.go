package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/usercontext"
)

// ErrorHandler turns errors that escape a handler, including recovered
// panics, into a JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := envelope.CodeUnexpected
		switch fe.Code {
		case fiber.StatusBadRequest:
			code = envelope.CodeInvalidInput
		case fiber.StatusUnauthorized:
			code = envelope.CodeNotAuthenticated
		case fiber.StatusForbidden:
			code = envelope.CodeNotAuthorized
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			code = envelope.CodeNotFound
		}
		if code != envelope.CodeUnexpected {
			body := fiber.Map{"success": false, "code": code, "error": Translate(c, "error."+string(code))}
			return c.Status(fe.Code).JSON(body)
		}
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", usercontext.GetUserID(c)).
		Msg("unhandled request error")
	return envelope.Fail(c, envelope.Wrap(envelope.CodeUnexpected, "", err), Translate, nil)
}
