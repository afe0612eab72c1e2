package repository

import (
	"context"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

// InventoryLogFilter narrows the audit-trail listing.
type InventoryLogFilter struct {
	ProductID *uint
	Type      string
}

// InventoryLogRepository appends to and reads the audit trail. There is no
// update or delete: the log is append-only by contract.
type InventoryLogRepository interface {
	CreateTx(tx *gorm.DB, entry *model.InventoryLog) error
	List(ctx context.Context, filter InventoryLogFilter) ([]model.InventoryLog, error)
	// SumDeltas returns the running sum of signed quantities for a product.
	// Seed stock plus this sum must equal the product's current stock.
	SumDeltas(ctx context.Context, productID uint) (float64, error)
}

type inventoryLogRepo struct{ db *gorm.DB }

func NewInventoryLogRepository(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db: db}
}

func (r *inventoryLogRepo) CreateTx(tx *gorm.DB, entry *model.InventoryLog) error {
	return tx.Create(entry).Error
}

func (r *inventoryLogRepo) List(ctx context.Context, filter InventoryLogFilter) ([]model.InventoryLog, error) {
	q := r.db.WithContext(ctx).Model(&model.InventoryLog{}).Preload("Product")
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var logs []model.InventoryLog
	err := q.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *inventoryLogRepo) SumDeltas(ctx context.Context, productID uint) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&model.InventoryLog{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, err
}
