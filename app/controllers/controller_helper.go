package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/middleware"
	"github.com/treido/treido-go/internal/pkg/usercontext"
)

const requestTimeout = 15 * time.Second

// requestContext derives the service context for a request. It carries the
// request locale and is bounded by requestTimeout.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func callerID(c *fiber.Ctx) string {
	return usercontext.GetUserID(c)
}

func fail(c *fiber.Ctx, err error, extra fiber.Map) error {
	return envelope.Fail(c, err, middleware.Translate, extra)
}

// parseBody decodes a JSON body. An empty body is accepted and leaves out
// unchanged.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return envelope.Wrap(envelope.CodeInvalidInput, "", err)
	}
	return nil
}

// ClientIP determines the client address considering Cloudflare and other
// proxies.
func ClientIP(c *fiber.Ctx) string {
	if cf := strings.TrimSpace(c.Get("CF-Connecting-IP")); cf != "" {
		return cf
	}
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	ip := c.IP()
	if strings.HasPrefix(ip, "::ffff:") && strings.Contains(ip, ".") {
		return strings.TrimPrefix(ip, "::ffff:")
	}
	return ip
}
