package ordersupport

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
)

// RequestOrderCancellation cancels an item the buyer no longer wants. Items
// that are shipped, delivered or already cancelled are rejected.
func (s *Service) RequestOrderCancellation(ctx context.Context, callerID, orderItemID, reason string) error {
	err := s.cancel(ctx, callerID, orderItemID, reason)
	record("cancel", err)
	return err
}

func (s *Service) cancel(ctx context.Context, callerID, orderItemID, reason string) error {
	item, err := s.buyerItem(ctx, callerID, orderItemID)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if runeLen(reason) > maxFreeTextRuneCount {
		return envelope.New(envelope.CodeValidationFailed, "")
	}

	switch item.Status {
	case models.OrderItemStatusShipped:
		return envelope.New(envelope.CodeInvalidStatus, "order.already_shipped")
	case models.OrderItemStatusDelivered:
		return envelope.New(envelope.CodeInvalidStatus, "order.already_delivered")
	case models.OrderItemStatusCancelled:
		return envelope.New(envelope.CodeAlreadyExists, "order.already_cancelled")
	}

	if err := s.repo.UpdateItemStatus(ctx, item.ID, models.OrderItemStatusCancelled); err != nil {
		return envelope.Wrap(envelope.CodeUpdateFailed, "order.cancel_failed", err)
	}

	title := item.ProductTitle()
	body := i18n.TC(ctx, "notify.order_cancelled.body", title)
	if reason != "" {
		body = i18n.TC(ctx, "notify.order_cancelled.body_reason", title, reason)
	}
	s.notifySeller(ctx, item, &models.Notification{
		Type:  models.NotificationTypeOrderCancelled,
		Title: i18n.TC(ctx, "notify.order_cancelled.title"),
		Body:  body,
	})

	log.Info().Str("order_item_id", item.ID).Str("buyer_id", callerID).Msg("order item cancelled by buyer")
	return nil
}
