package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/treido/treido-go/app/controllers"
	"github.com/treido/treido-go/internal/pkg/middleware"
	"github.com/treido/treido-go/internal/pkg/ratelimit"
)

const webhookPath = "/api/v1/stripe/webhook"

type ApiRouter struct {
	deps Deps
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", ratelimit.New(ratelimit.Config{
		Max:        h.deps.RateLimitMax,
		Expiration: time.Minute,
		Storage:    h.deps.RateStorage,
		KeyFunc:    controllers.ClientIP,
		Skip: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), webhookPath)
		},
		Translate: middleware.Translate,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Stripe calls the webhook without a user token.
	wc := controllers.NewStripeWebhookController(h.deps.Webhooks, h.deps.PaidBoosts, h.deps.WebhookSecret)
	v1.Post("/stripe/webhook", wc.HandleStripeWebhook)

	authed := v1.Group("", middleware.Locale, middleware.UserContextMiddleware(h.deps.JWTSecret))

	bc := controllers.NewBoostController(h.deps.Boosts)
	authed.Post("/boosts/checkout", bc.HandleCreateCheckout)
	authed.Get("/products/:id/boost", bc.HandleBoostStatus)
	authed.Post("/products/:id/boost", bc.HandleUseSubscriptionBoost)

	oc := controllers.NewOrderSupportController(h.deps.OrderSupport)
	authed.Post("/order-items/:id/cancel", oc.HandleCancel)
	authed.Post("/order-items/:id/return", oc.HandleReturn)
	authed.Post("/order-items/:id/issues", oc.HandleIssue)
}

func NewApiRouter(deps Deps) *ApiRouter {
	return &ApiRouter{deps: deps}
}
