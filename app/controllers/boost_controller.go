package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/boosts"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
	"github.com/treido/treido-go/internal/pkg/middleware"
)

// BoostService is the part of boosts.Service the HTTP API uses.
type BoostService interface {
	CreateBoostCheckoutSession(ctx context.Context, req boosts.CheckoutRequest) (string, error)
	GetBoostStatus(ctx context.Context, callerID, productID string) (boosts.Status, error)
	UseSubscriptionBoost(ctx context.Context, callerID, productID string) (int, error)
}

type BoostController struct {
	svc BoostService
}

func NewBoostController(svc BoostService) *BoostController {
	return &BoostController{svc: svc}
}

type checkoutBody struct {
	ProductID    string `json:"productId"`
	DurationDays int    `json:"durationDays"`
	Locale       string `json:"locale"`
}

// HandleCreateCheckout serves POST /api/v1/boosts/checkout.
func (bc *BoostController) HandleCreateCheckout(c *fiber.Ctx) error {
	var body checkoutBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err, nil)
	}
	if l, ok := i18n.Normalize(body.Locale); ok && l != "" {
		middleware.SetLocale(c, l)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := bc.svc.CreateBoostCheckoutSession(ctx, boosts.CheckoutRequest{
		CallerID:     callerID(c),
		ProductID:    body.ProductID,
		DurationDays: body.DurationDays,
		Locale:       body.Locale,
	})
	if err != nil {
		logUnexpected(err, "create boost checkout", callerID(c), body.ProductID)
		return fail(c, err, nil)
	}
	return envelope.OK(c, fiber.Map{"url": url})
}

// HandleBoostStatus serves GET /api/v1/products/:id/boost.
func (bc *BoostController) HandleBoostStatus(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	productID := c.Params("id")
	st, err := bc.svc.GetBoostStatus(ctx, callerID(c), productID)
	fields := fiber.Map{
		"isBoosted":       st.IsBoosted,
		"boostExpiresAt":  st.BoostExpiresAt,
		"boostsRemaining": st.BoostsRemaining,
		"boostsAllocated": st.BoostsAllocated,
	}
	if err != nil {
		logUnexpected(err, "boost status", callerID(c), productID)
		return fail(c, err, fields)
	}
	return envelope.OK(c, fields)
}

// HandleUseSubscriptionBoost serves POST /api/v1/products/:id/boost.
func (bc *BoostController) HandleUseSubscriptionBoost(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	productID := c.Params("id")
	remaining, err := bc.svc.UseSubscriptionBoost(ctx, callerID(c), productID)
	if err != nil {
		logUnexpected(err, "use subscription boost", callerID(c), productID)
		return fail(c, err, nil)
	}
	return envelope.OK(c, fiber.Map{"boostsRemaining": remaining})
}

// logUnexpected logs errors that are not domain failures with the ids
// involved. Domain failures are returned to the caller without logging.
func logUnexpected(err error, action, userID, resourceID string) {
	if envelope.CodeOf(err) != envelope.CodeUnexpected {
		return
	}
	log.Error().Err(err).Str("action", action).Str("user_id", userID).Str("resource_id", resourceID).Msg("unexpected action failure")
}
