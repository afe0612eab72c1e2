package model

import "time"

// Purchase-order statuses form a linear state machine:
// ordered → shipped → received. Received is terminal — at that point the line
// quantities have been applied to stock and must never be applied again.
const (
	POStatusOrdered  = "ordered"
	POStatusShipped  = "shipped"
	POStatusReceived = "received"
)

type PurchaseOrder struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	DistributorID       *uint      `gorm:"index" json:"distributor_id"`
	ShippingRef         string     `json:"shipping_ref"`
	Status              string     `gorm:"not null;default:'ordered'" json:"status"`
	ExpectedArrivalDate *time.Time `json:"expected_arrival_date"`
	CreatedAt           time.Time  `json:"created_at"`

	Items       []PurchaseOrderItem `gorm:"foreignKey:POID" json:"-"`
	Distributor *Contact            `gorm:"foreignKey:DistributorID" json:"-"`
}

type PurchaseOrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	POID      uint    `gorm:"column:po_id;index;not null" json:"po_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  float64 `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
