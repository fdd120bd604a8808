package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeOrderCancelled = "order_cancelled"
	NotificationTypeReturnRequest  = "return_requested"
	NotificationTypeOrderIssue     = "order_issue"
)

type Notification struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Type           string    `gorm:"type:varchar(50);not null" json:"type" validate:"oneof=order_cancelled return_requested order_issue"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Body           string    `gorm:"type:text" json:"body"`
	OrderID        *string   `gorm:"type:char(36);default:null" json:"order_id,omitempty"`
	ProductID      *string   `gorm:"type:char(36);default:null" json:"product_id,omitempty"`
	ConversationID *string   `gorm:"type:char(36);default:null" json:"conversation_id,omitempty"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	ensureID(&n.ID)
	return nil
}
