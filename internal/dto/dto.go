package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petalcart/internal/model"
)

type CreateShopRequest struct {
	ShopName    string `json:"shop_name"`
	ShopAddress string `json:"shop_address"`
}

type CreateFlowerRequest struct {
	FlowerName string          `json:"flower_name"`
	Desc       string          `json:"desc"`
	ImageURL   string          `json:"image_url"`
	Price      decimal.Decimal `json:"price"`
}

type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type FlowerDetail struct {
	Flower    *model.Flower    `json:"flower"`
	Available int64            `json:"available"`
	Comments  []*model.Comment `json:"comments"`
}

type AddCartItemRequest struct {
	FlowerID uuid.UUID `json:"flower_id"`
	Quantity int64     `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartLine struct {
	ItemID     uint            `json:"item_id"`
	FlowerID   uuid.UUID       `json:"flower_id"`
	FlowerName string          `json:"flower_name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// CartView is the displayed cart. Total is computed from live flower
// prices, a preview rather than a commitment.
type CartView struct {
	CartID uuid.UUID       `json:"cart_id"`
	Items  []CartLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

type BuyNowRequest struct {
	FlowerID uuid.UUID `json:"flower_id"`
	Quantity int64     `json:"quantity"`
}

type CheckoutResponse struct {
	OrderID         uuid.UUID       `json:"order_id"`
	RazorpayOrderID string          `json:"razorpay_order_id"`
	Total           decimal.Decimal `json:"total"`
	AmountPaise     int64           `json:"amount_paise"`
	Currency        string          `json:"currency"`
}

// PaymentCallback is the gateway's asynchronous payment notification.
type PaymentCallback struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
