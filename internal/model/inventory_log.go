package model

import "time"

// Inventory log entry types.
const (
	LogSale       = "sale"
	LogPurchase   = "purchase"
	LogAdjustment = "adjustment"
	LogReturn     = "return"
)

// InventoryLog is the append-only audit trail of every stock-affecting event.
// Quantity is a signed delta: negative for sales, positive for purchases and
// returns. Rows are never updated or deleted; for any product,
// seed stock + Σ(delta) must equal its current stock.
type InventoryLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	Type        string    `gorm:"not null" json:"type"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	ReferenceID uint      `json:"reference_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
