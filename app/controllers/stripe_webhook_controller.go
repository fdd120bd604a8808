package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/billing"
	"github.com/treido/treido-go/internal/pkg/boosts"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/metrics"
)

// WebhookStore persists webhook deliveries.
type WebhookStore interface {
	RecordWebhookEvent(ctx context.Context, in billing.WebhookEventInput) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error
}

// PaidBoostActivator applies boosts paid through checkout.
type PaidBoostActivator interface {
	ActivatePaidBoost(ctx context.Context, p boosts.PaidBoost) error
}

type StripeWebhookController struct {
	store  WebhookStore
	boosts PaidBoostActivator
	secret string
}

func NewStripeWebhookController(store WebhookStore, activator PaidBoostActivator, secret string) *StripeWebhookController {
	return &StripeWebhookController{store: store, boosts: activator, secret: secret}
}

// HandleStripeWebhook serves POST /api/v1/stripe/webhook.
func (wc *StripeWebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("Stripe-Signature")

	event, err := billing.VerifyStripeWebhook(rawBody, signature, wc.secret)
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) {
			metrics.WebhookRequestsTotal.WithLabelValues("unknown", "not_configured").Inc()
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "webhook_not_configured"})
		}
		metrics.WebhookRequestsTotal.WithLabelValues("unknown", "invalid_signature").Inc()
		log.Warn().Err(err).Str("ip", ClientIP(c)).Msg("stripe webhook signature rejected")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
	}
	eventType := string(event.Type)

	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()

	_, stored, err := wc.store.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: event.ID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, "persist_failed").Inc()
		log.Error().Err(err).Str("event_id", event.ID).Msg("stripe webhook persist failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if stored.Processed() {
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, "duplicate").Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}

	payment, err := billing.ParseBoostPayment(event)
	if errors.Is(err, billing.ErrNotBoostCheckout) {
		wc.markProcessed(ctx, stored, nil)
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, "ignored").Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}
	if err != nil {
		// a redelivery carries the same payload, so it is not retried
		wc.markProcessed(ctx, stored, err)
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, "invalid_payload").Inc()
		log.Warn().Err(err).Str("event_id", event.ID).Msg("stripe boost checkout payload rejected")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	err = wc.boosts.ActivatePaidBoost(ctx, boosts.PaidBoost{
		SellerID:     payment.SellerID,
		ProductID:    payment.ProductID,
		DurationDays: payment.DurationDays,
		AmountMinor:  payment.AmountMinor,
		Currency:     payment.Currency,
	})
	wc.markProcessed(ctx, stored, err)
	if err != nil {
		log.Error().Err(err).
			Str("event_id", event.ID).
			Str("session_id", payment.SessionID).
			Str("seller_id", payment.SellerID).
			Str("product_id", payment.ProductID).
			Msg("paid boost activation failed")
		switch envelope.CodeOf(err) {
		case envelope.CodeInvalidInput, envelope.CodeNotFound, envelope.CodeNotAuthorized:
			metrics.WebhookRequestsTotal.WithLabelValues(eventType, "rejected").Inc()
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, "activation_failed").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "boost_activation_failed"})
	}

	metrics.WebhookRequestsTotal.WithLabelValues(eventType, "ok").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

func (wc *StripeWebhookController) markProcessed(ctx context.Context, stored *models.BillingWebhookEvent, processingErr error) {
	if err := wc.store.MarkWebhookProcessed(ctx, stored.ID, processingErr); err != nil {
		log.Error().Err(err).Str("webhook_event_id", strconv.FormatUint(uint64(stored.ID), 10)).Msg("marking webhook processed failed")
	}
}
