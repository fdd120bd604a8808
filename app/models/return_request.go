package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

type ReturnRequest struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderItemID    string    `gorm:"type:char(36);not null;index:idx_return_requests_item_buyer,priority:1" json:"order_item_id"`
	OrderID        string    `gorm:"type:char(36);not null;index" json:"order_id"`
	BuyerID        string    `gorm:"type:char(36);not null;index:idx_return_requests_item_buyer,priority:2" json:"buyer_id"`
	SellerID       string    `gorm:"type:char(36);not null;index" json:"seller_id"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
	Status         string    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ConversationID *string   `gorm:"type:char(36);default:null" json:"conversation_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ReturnRequest) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	if r.Status == "" {
		r.Status = ReturnStatusPending
	}
	return nil
}
