package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/treido/treido-go/app/controllers"
)

// Router registers a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps are the services and settings the routes are built from.
type Deps struct {
	Boosts       controllers.BoostService
	OrderSupport controllers.OrderSupportService
	Webhooks     controllers.WebhookStore
	PaidBoosts   controllers.PaidBoostActivator

	JWTSecret     string
	WebhookSecret string
	RateLimitMax  int
	RateStorage   fiber.Storage
}

func InstallRouter(app *fiber.App, deps Deps) {
	setup(app, NewHttpRouter(), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
