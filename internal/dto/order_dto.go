package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// FulfillOrderRequest carries the order header and its lines. TotalAmount is
// already net of discount — the caller computes it, the engine stores it.
type FulfillOrderRequest struct {
	OrderNumber   string             `json:"order_number"   validate:"max=100"`
	ContactID     *uint              `json:"contact_id"`
	SalesRepID    *uint              `json:"sales_rep_id"`
	TotalAmount   float64            `json:"total_amount"   validate:"gte=0"`
	Discount      float64            `json:"discount"       validate:"gte=0"`
	Deposit       float64            `json:"deposit"        validate:"gte=0"`
	PaymentMethod string             `json:"payment_method" validate:"omitempty,oneof=cash card transfer"`
	Items         []OrderLineRequest `json:"items"          validate:"required,min=1,dive"`
}

type OrderLineRequest struct {
	ProductID   uint    `json:"product_id"    validate:"required"`
	Quantity    float64 `json:"quantity"      validate:"gt=0"`
	PriceAtSale float64 `json:"price_at_sale" validate:"gte=0"`
}

type SettleDepositRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type OrderResponse struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"order_number"`
	ContactID     *uint     `json:"contact_id"`
	ContactName   string    `json:"contact_name,omitempty"`
	SalesRepID    *uint     `json:"sales_rep_id"`
	SalesRepName  string    `json:"sales_rep_name,omitempty"`
	TotalAmount   float64   `json:"total_amount"`
	Discount      float64   `json:"discount"`
	Deposit       float64   `json:"deposit"`
	BalanceDue    float64   `json:"balance_due"`
	Pending       bool      `json:"pending"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}
