package model

import "time"

// Product is a catalog item. Stock is fractional because several units of
// measure (kg, m²) are sold in non-integer quantities.
//
// CategoryID/UnitID are nullable references resolved to names at read time;
// deleting a category or unit nulls them out rather than blocking.
type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"index;not null" json:"name"`
	Price      float64   `gorm:"not null;default:0" json:"price"`
	Cost       float64   `gorm:"not null;default:0" json:"cost"`
	Stock      float64   `gorm:"not null;default:0" json:"stock"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	UnitID     *uint     `gorm:"index" json:"unit_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Incoming is the summed quantity on open purchase-order lines.
	// Computed by the list query, never stored.
	Incoming float64 `gorm:"-:migration;->" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"-"`
}
