package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string  `json:"name"        validate:"required,min=1,max=200"`
	Price      float64 `json:"price"       validate:"gte=0"`
	Cost       float64 `json:"cost"        validate:"gte=0"`
	Stock      float64 `json:"stock"`
	CategoryID *uint   `json:"category_id"`
	UnitID     *uint   `json:"unit_id"`
}

type UpdateProductRequest struct {
	Name       *string  `json:"name"        validate:"omitempty,min=1,max=200"`
	Price      *float64 `json:"price"       validate:"omitempty,gte=0"`
	Cost       *float64 `json:"cost"        validate:"omitempty,gte=0"`
	Stock      *float64 `json:"stock"`
	CategoryID *uint    `json:"category_id"`
	UnitID     *uint    `json:"unit_id"`
}

// AdjustStockRequest records a manual correction. Delta is signed; the
// reason lands in the audit trail.
type AdjustStockRequest struct {
	Delta  float64 `json:"delta"  validate:"required"`
	Reason string  `json:"reason" validate:"max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	Stock     float64   `json:"stock"`
	Incoming  float64   `json:"incoming"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}
