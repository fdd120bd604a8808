package ordersupport

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
)

// Repository provides DB operations used by the order support service.
type Repository interface {
	GetOrderItem(ctx context.Context, id string) (*models.OrderItem, error)
	UpdateItemStatus(ctx context.Context, id, status string) error
	FindPendingReturn(ctx context.Context, orderItemID, buyerID string) (*models.ReturnRequest, error)
	CreateReturn(ctx context.Context, r *models.ReturnRequest) error
	SetReturnConversation(ctx context.Context, returnID, conversationID string) error
	FindOrderConversation(ctx context.Context, buyerID, sellerID, orderID string) (*models.Conversation, error)
	CreateConversation(ctx context.Context, c *models.Conversation) error
	CreateMessage(ctx context.Context, m *models.Message) error
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an order support repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetOrderItem(ctx context.Context, id string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Product").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) UpdateItemStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) FindPendingReturn(ctx context.Context, orderItemID, buyerID string) (*models.ReturnRequest, error) {
	var rr models.ReturnRequest
	err := r.db.WithContext(ctx).
		Where("order_item_id = ? AND buyer_id = ? AND status = ?", orderItemID, buyerID, models.ReturnStatusPending).
		First(&rr).Error
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *gormRepository) CreateReturn(ctx context.Context, rr *models.ReturnRequest) error {
	return r.db.WithContext(ctx).Create(rr).Error
}

func (r *gormRepository) SetReturnConversation(ctx context.Context, returnID, conversationID string) error {
	return r.db.WithContext(ctx).Model(&models.ReturnRequest{}).Where("id = ?", returnID).
		Update("conversation_id", conversationID).Error
}

func (r *gormRepository) FindOrderConversation(ctx context.Context, buyerID, sellerID, orderID string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND seller_id = ? AND order_id = ?", buyerID, sellerID, orderID).
		Order("created_at ASC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) CreateConversation(ctx context.Context, c *models.Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CreateMessage stores the message and bumps the conversation's unread
// counter for the seller in one transaction.
func (r *gormRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", m.ConversationID).Updates(map[string]interface{}{
			"last_message_at":     time.Now().UTC(),
			"seller_unread_count": gorm.Expr("seller_unread_count + 1"),
		}).Error
	})
}

func (r *gormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
