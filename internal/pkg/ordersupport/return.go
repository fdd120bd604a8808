package ordersupport

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
)

// RequestReturn opens a return for a delivered item and posts it to the
// order conversation. The conversation id is nil when the thread could not
// be created; the return itself still stands.
func (s *Service) RequestReturn(ctx context.Context, callerID, orderItemID, reason string) (*string, error) {
	convID, err := s.requestReturn(ctx, callerID, orderItemID, reason)
	record("return", err)
	return convID, err
}

func (s *Service) requestReturn(ctx context.Context, callerID, orderItemID, reason string) (*string, error) {
	item, err := s.buyerItem(ctx, callerID, orderItemID)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if n := runeLen(reason); n < minReturnReason || n > maxFreeTextRuneCount {
		return nil, envelope.New(envelope.CodeValidationFailed, "order.return_reason_short")
	}
	if item.Status != models.OrderItemStatusDelivered {
		return nil, envelope.New(envelope.CodeInvalidStatus, "order.return_not_delivered")
	}

	_, err = s.repo.FindPendingReturn(ctx, item.ID, callerID)
	switch {
	case err == nil:
		return nil, envelope.New(envelope.CodeAlreadyExists, "order.return_exists")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, envelope.Wrap(envelope.CodeCreateFailed, "order.return_failed", err)
	}

	rr := &models.ReturnRequest{
		OrderItemID: item.ID,
		OrderID:     item.OrderID,
		BuyerID:     callerID,
		SellerID:    item.SellerID,
		Reason:      reason,
		Status:      models.ReturnStatusPending,
	}
	if err := s.repo.CreateReturn(ctx, rr); err != nil {
		return nil, envelope.Wrap(envelope.CodeCreateFailed, "order.return_failed", err)
	}

	var convID *string
	title := item.ProductTitle()
	conv, err := s.orderConversation(ctx, item, callerID)
	if err == nil {
		err = s.repo.CreateMessage(ctx, &models.Message{
			ConversationID: conv.ID,
			SenderID:       callerID,
			Content:        i18n.TC(ctx, "message.return_request", title, reason),
			MessageType:    models.MessageTypeReturnRequest,
		})
	}
	if err != nil {
		log.Error().Err(err).Str("order_item_id", item.ID).Str("return_id", rr.ID).Msg("return request conversation failed")
	} else {
		convID = &conv.ID
		if err := s.repo.SetReturnConversation(ctx, rr.ID, conv.ID); err != nil {
			log.Warn().Err(err).Str("return_id", rr.ID).Msg("linking return to conversation failed")
		}
	}

	s.notifySeller(ctx, item, &models.Notification{
		Type:           models.NotificationTypeReturnRequest,
		Title:          i18n.TC(ctx, "notify.return_requested.title"),
		Body:           i18n.TC(ctx, "notify.return_requested.body", title),
		ConversationID: convID,
	})

	log.Info().Str("order_item_id", item.ID).Str("buyer_id", callerID).Str("return_id", rr.ID).Msg("return requested")
	return convID, nil
}
