package model

// Category classifies products. Names are unique; duplicate inserts are
// treated as a no-op at the repository level.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Unit is a unit of measure (pcs, box, kg).
type Unit struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
