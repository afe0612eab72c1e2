package model

import "time"

// Payment methods accepted on sales orders.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Order is a sales order. TotalAmount is stored net of discount, so the
// pre-discount subtotal is always TotalAmount + Discount. Deposit accumulates
// payments received; it is never validated against TotalAmount, display code
// clamps a negative balance to zero.
//
// All monetary fields are canonical currency. Display conversion happens at
// the boundary, never here.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderNumber   string    `gorm:"index" json:"order_number"`
	ContactID     *uint     `gorm:"index" json:"contact_id"`
	SalesRepID    *uint     `gorm:"index" json:"sales_rep_id"`
	TotalAmount   float64   `gorm:"not null;default:0" json:"total_amount"`
	Discount      float64   `gorm:"not null;default:0" json:"discount"`
	Deposit       float64   `gorm:"not null;default:0" json:"deposit"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
	Contact  *Contact    `gorm:"foreignKey:ContactID" json:"-"`
	SalesRep *Contact    `gorm:"foreignKey:SalesRepID" json:"-"`
}

// PendingEpsilon absorbs floating-point residue left by repeated deposit
// additions: 0.5 minor units of outstanding balance still counts as paid.
const PendingEpsilon = 0.5

// Pending reports whether the order still awaits payment. Derived on read,
// never stored.
func (o Order) Pending() bool {
	return o.TotalAmount-o.Deposit > PendingEpsilon
}

// BalanceDue is the outstanding amount, clamped to zero when the stored
// deposit exceeds the total (over-payment is allowed and kept as-is).
func (o Order) BalanceDue() float64 {
	if b := o.TotalAmount - o.Deposit; b > 0 {
		return b
	}
	return 0
}

// OrderItem copies PriceAtSale from the product at fulfillment time.
// Historical prices are immutable once recorded.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"index;not null" json:"product_id"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	PriceAtSale float64 `gorm:"not null" json:"price_at_sale"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
