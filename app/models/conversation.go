package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MessageTypeText          = "text"
	MessageTypeReturnRequest = "return_request"
	MessageTypeIssueReport   = "issue_report"
)

// Conversation is a buyer/seller thread, optionally scoped to an order.
type Conversation struct {
	ID                string     `gorm:"type:char(36);primaryKey" json:"id"`
	BuyerID           string     `gorm:"type:char(36);not null;index:idx_conversations_scope,priority:1" json:"buyer_id"`
	SellerID          string     `gorm:"type:char(36);not null;index:idx_conversations_scope,priority:2" json:"seller_id"`
	OrderID           *string    `gorm:"type:char(36);default:null;index:idx_conversations_scope,priority:3" json:"order_id,omitempty"`
	ProductID         *string    `gorm:"type:char(36);default:null" json:"product_id,omitempty"`
	Subject           string     `gorm:"type:varchar(255);default:''" json:"subject"`
	Status            string     `gorm:"type:varchar(20);default:'open'" json:"status"`
	SellerUnreadCount int        `gorm:"default:0" json:"seller_unread_count"`
	LastMessageAt     *time.Time `gorm:"type:timestamp;default:null" json:"last_message_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type Message struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	ConversationID string    `gorm:"type:char(36);not null;index" json:"conversation_id"`
	SenderID       string    `gorm:"type:char(36);not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	MessageType    string    `gorm:"type:varchar(30);default:'text'" json:"message_type"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	if m.MessageType == "" {
		m.MessageType = MessageTypeText
	}
	return nil
}
