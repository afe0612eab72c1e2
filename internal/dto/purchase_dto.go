package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreatePurchaseOrderRequest struct {
	DistributorID       *uint           `json:"distributor_id"`
	ShippingRef         string          `json:"shipping_ref"  validate:"max=100"`
	ExpectedArrivalDate *time.Time      `json:"expected_arrival_date"`
	Items               []POLineRequest `json:"items"         validate:"required,min=1,dive"`
}

type POLineRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity"   validate:"gt=0"`
}

// UpdatePurchaseOrderRequest edits the mutable header fields. Status may only
// advance (ordered → shipped); moving to received goes through the receive
// operation so stock is applied exactly once.
type UpdatePurchaseOrderRequest struct {
	ShippingRef         *string    `json:"shipping_ref"          validate:"omitempty,max=100"`
	ExpectedArrivalDate *time.Time `json:"expected_arrival_date"`
	Status              *string    `json:"status"                validate:"omitempty,oneof=ordered shipped"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type PurchaseOrderResponse struct {
	ID                  uint             `json:"id"`
	DistributorID       *uint            `json:"distributor_id"`
	DistributorName     string           `json:"distributor_name,omitempty"`
	ShippingRef         string           `json:"shipping_ref"`
	Status              string           `json:"status"`
	ExpectedArrivalDate *time.Time       `json:"expected_arrival_date"`
	CreatedAt           time.Time        `json:"created_at"`
	Items               []POItemResponse `json:"items,omitempty"`
}

type POItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
}
