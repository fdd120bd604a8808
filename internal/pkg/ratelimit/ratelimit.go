// Package ratelimit configures the request limiter of the JSON API.
package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/treido/treido-go/internal/pkg/env"
	"github.com/treido/treido-go/internal/pkg/envelope"
)

// storageDatabase keeps limiter counters apart from the cache (DB 0).
const storageDatabase = 1

// NewStorage creates the Redis storage shared by all limiter instances.
// It returns nil when the cache is disabled; the limiter then counts in
// memory per process.
func NewStorage(cfg env.CacheConfig) fiber.Storage {
	if cfg.Disabled {
		return nil
	}
	return redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: storageDatabase,
		Reset:    false,
	})
}

// Config describes a limiter.
type Config struct {
	Max        int
	Expiration time.Duration
	Storage    fiber.Storage
	KeyFunc    func(*fiber.Ctx) string
	Skip       func(*fiber.Ctx) bool
	Translate  envelope.Translator
}

// New returns a limiter that answers with a JSON envelope once a client is
// over budget.
func New(cfg Config) fiber.Handler {
	if cfg.Max <= 0 {
		cfg.Max = 60
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Minute
	}
	lc := limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Expiration,
		Next:       cfg.Skip,
		LimitReached: func(c *fiber.Ctx) error {
			msg := "Too many requests."
			if cfg.Translate != nil {
				msg = cfg.Translate(c, "error.rate_limited")
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"code":    "rate_limited",
				"error":   msg,
			})
		},
	}
	if cfg.Storage != nil {
		lc.Storage = cfg.Storage
	}
	if cfg.KeyFunc != nil {
		lc.KeyGenerator = cfg.KeyFunc
	}
	return limiter.New(lc)
}
