package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderItemStatusPending    = "pending"
	OrderItemStatusProcessing = "processing"
	OrderItemStatusShipped    = "shipped"
	OrderItemStatusDelivered  = "delivered"
	OrderItemStatusCancelled  = "cancelled"
)

// Order is the buyer-side order header. BuyerID maps to orders.user_id.
type Order struct {
	ID          string      `gorm:"type:char(36);primaryKey" json:"id"`
	BuyerID     string      `gorm:"column:user_id;type:char(36);not null;index" json:"user_id"`
	Status      string      `gorm:"type:varchar(32);default:'pending'" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// OrderItem is one seller's line on an order; support actions operate on it.
type OrderItem struct {
	ID              string     `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID         string     `gorm:"type:char(36);not null;index" json:"order_id"`
	Order           *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	ProductID       string     `gorm:"type:char(36);not null;index" json:"product_id"`
	Product         *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SellerID        string     `gorm:"type:char(36);not null;index" json:"seller_id"`
	Quantity        int        `gorm:"not null;default:1" json:"quantity"`
	PriceAtPurchase float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price_at_purchase"`
	Status          string     `gorm:"type:varchar(32);default:'pending';index" json:"status"`
	ShippedAt       *time.Time `gorm:"type:timestamp;default:null" json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time `gorm:"type:timestamp;default:null" json:"delivered_at,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	if i.Status == "" {
		i.Status = OrderItemStatusPending
	}
	return nil
}

// ProductTitle returns the title of the preloaded product, if any.
func (i *OrderItem) ProductTitle() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Title
}
