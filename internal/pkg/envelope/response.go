package envelope

import (
	"github.com/gofiber/fiber/v2"
)

// Translator resolves a message key for the request locale.
type Translator func(c *fiber.Ctx, key string) string

// OK writes a success envelope merged with the given fields.
func OK(c *fiber.Ctx, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Fail writes a failure envelope for err. Extra fields are merged in so
// callers can return safe defaults alongside the error.
func Fail(c *fiber.Ctx, err error, t Translator, extra fiber.Map) error {
	e := From(err)
	body := fiber.Map{
		"success": false,
		"code":    e.Code,
		"error":   t(c, e.MessageKey()),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(HTTPStatus(e.Code)).JSON(body)
}
