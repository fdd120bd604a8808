package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/treido/treido-go/internal/pkg/i18n"
	"github.com/treido/treido-go/internal/pkg/usercontext"
)

// Locale resolves the request locale from Accept-Language and carries it on
// the request context.
func Locale(c *fiber.Ctx) error {
	SetLocale(c, i18n.Negotiate(c.Get(fiber.HeaderAcceptLanguage)))
	return c.Next()
}

// SetLocale overrides the request locale, e.g. from a body field.
func SetLocale(c *fiber.Ctx, locale string) {
	c.Locals(usercontext.KeyLocale, locale)
	c.SetUserContext(i18n.WithLocale(c.UserContext(), locale))
}

// Translate resolves key in the request locale.
func Translate(c *fiber.Ctx, key string) string {
	return i18n.TC(c.UserContext(), key)
}
