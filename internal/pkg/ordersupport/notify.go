package ordersupport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/i18n"
)

// orderConversation returns the buyer/seller thread for the item's order,
// creating it on first use.
func (s *Service) orderConversation(ctx context.Context, item *models.OrderItem, buyerID string) (*models.Conversation, error) {
	conv, err := s.repo.FindOrderConversation(ctx, buyerID, item.SellerID, item.OrderID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find conversation for order %s: %w", item.OrderID, err)
	}

	now := time.Now().UTC()
	conv = &models.Conversation{
		BuyerID:       buyerID,
		SellerID:      item.SellerID,
		OrderID:       ptr(item.OrderID),
		ProductID:     ptr(item.ProductID),
		Subject:       item.ProductTitle(),
		Status:        "open",
		LastMessageAt: &now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation for order %s: %w", item.OrderID, err)
	}
	return conv, nil
}

// notifySeller stores an in-app notification for the item's seller and
// emails it when a mailer is configured. Both are best-effort.
func (s *Service) notifySeller(ctx context.Context, item *models.OrderItem, n *models.Notification) {
	n.UserID = item.SellerID
	n.OrderID = ptr(item.OrderID)
	n.ProductID = ptr(item.ProductID)

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		log.Error().Err(err).Str("order_item_id", item.ID).Str("seller_id", item.SellerID).Str("type", n.Type).Msg("seller notification failed")
	}

	seller, err := s.repo.GetProfile(ctx, item.SellerID)
	if err != nil {
		log.Debug().Err(err).Str("seller_id", item.SellerID).Msg("seller profile unavailable, skipping email")
		return
	}
	if seller.Email == "" {
		return
	}
	body := n.Body + "\n\n" + i18n.TC(ctx, "notify.email.footer")
	if err := s.mailer.Send(ctx, seller.Email, n.Title, body); err != nil {
		log.Warn().Err(err).Str("seller_id", item.SellerID).Str("type", n.Type).Msg("seller notification email failed")
	}
}
