package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FlowerShop struct {
	ShopID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"shop_id"`
	ShopName    string    `gorm:"size:255;not null" json:"shop_name"`
	ShopAddress string    `gorm:"size:255;not null" json:"shop_address"`
	// opaque principal id of the shop owner, one shop per owner
	OwnerID   string    `gorm:"size:64;uniqueIndex;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Flower struct {
	FlowerID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"flower_id"`
	ShopID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"shop_id"`
	FlowerName string          `gorm:"size:100;not null" json:"flower_name"`
	Desc       string          `json:"desc"`
	ImageURL   string          `gorm:"size:255" json:"image_url"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Stock is the authoritative available-quantity counter, one row per flower.
// A flower with no stock row cannot be purchased.
type Stock struct {
	FlowerID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"flower_id"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"comment_id"`
	FlowerID  uuid.UUID `gorm:"type:uuid;index;not null" json:"flower_id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Cart struct {
	CartID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"cart_id"`
	UserID    string    `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_flower;not null" json:"cart_id"`
	FlowerID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_flower;not null" json:"flower_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

type Order struct {
	OrderID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"order_id"`
	UserID  string      `gorm:"size:64;index;not null" json:"user_id"`
	Status  OrderStatus `gorm:"size:32;index;not null" json:"status"`
	// sum of line item snapshots at order time
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	// correlation id of the gateway order, set only for cart checkouts
	RazorpayOrderID   *string   `gorm:"size:64;uniqueIndex" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string   `gorm:"size:64" json:"razorpay_payment_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	FlowerID uuid.UUID `gorm:"type:uuid;index;not null" json:"flower_id"`
	Quantity int64     `gorm:"not null" json:"quantity"`
	// flower price at order time, decoupled from later price edits
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}
