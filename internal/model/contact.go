package model

// Contact roles. One table serves all three; the role is data, not a type.
const (
	ContactCustomer    = "customer"
	ContactDistributor = "distributor"
	ContactSalesRep    = "sales_rep"
)

type Contact struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"index;not null" json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Type    string `gorm:"not null;default:'customer'" json:"type"`
}
