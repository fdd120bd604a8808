package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/boosts"
	"github.com/treido/treido-go/internal/pkg/cache"
	"github.com/treido/treido-go/internal/pkg/database"
	"github.com/treido/treido-go/internal/pkg/env"
	"github.com/treido/treido-go/internal/pkg/i18n"
	"github.com/treido/treido-go/internal/pkg/jobqueue"
	"github.com/treido/treido-go/internal/pkg/logging"
	"github.com/treido/treido-go/internal/pkg/mail"
	"github.com/treido/treido-go/internal/pkg/middleware"
	"github.com/treido/treido-go/internal/pkg/ordersupport"
	"github.com/treido/treido-go/internal/pkg/ratelimit"
	"github.com/treido/treido-go/internal/pkg/router"
)

// application holds the wired services of one process.
type application struct {
	cfg      env.Config
	db       *gorm.DB
	boosts   *boosts.Service
	orders   *ordersupport.Service
	webhooks *billing.Service
	jobs     *jobqueue.Queue
}

// bootstrap loads configuration and connects the database and cache.
func bootstrap() (*application, error) {
	env.SetupEnvFile()
	cfg, err := env.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	i18n.SetDefault(cfg.DefaultLocale)

	db, err := database.SetupDatabase(cfg.DB, cfg.IsDev())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.SeedBoostPrices(db, cfg.BoostCurrency); err != nil {
		log.Warn().Err(err).Msg("seeding boost prices failed")
	}

	var (
		inv    cache.Store = cache.Nop{}
		mailer             = mail.New(cfg.SMTP)
		jobs   *jobqueue.Queue
	)
	if !cfg.Cache.Disabled {
		rdb, err := cache.SetupCache(cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, tag invalidation and mail queue disabled")
		} else {
			inv = cache.NewTagStore(rdb)
			if cfg.SMTP.Enabled() {
				jobs = jobqueue.NewQueue(rdb, cfg.JobWorkers)
				mailer = jobqueue.NewOutbox(jobs, mailer)
			}
		}
	}

	var gateway billing.Gateway
	if cfg.StripeEnabled() {
		gateway = billing.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, paid boost checkout disabled")
	}

	return &application{
		cfg: cfg,
		db:  db,
		boosts: boosts.NewServiceFromDB(db, inv, gateway, boosts.Config{
			Currency:      cfg.BoostCurrency,
			PublicBaseURL: cfg.PublicDomain,
		}),
		orders:   ordersupport.NewServiceFromDB(db, mailer),
		webhooks: billing.NewServiceFromDB(db),
		jobs:     jobs,
	}, nil
}

// newFiberApp builds the HTTP application.
func (a *application) newFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "treido",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	router.InstallRouter(app, router.Deps{
		Boosts:        a.boosts,
		OrderSupport:  a.orders,
		Webhooks:      a.webhooks,
		PaidBoosts:    a.boosts,
		JWTSecret:     a.cfg.JWTSecret,
		WebhookSecret: a.cfg.StripeBoostWebhookSecret,
		RateLimitMax:  a.cfg.RateLimitMax,
		RateStorage:   ratelimit.NewStorage(a.cfg.Cache),
	})
	return app
}
