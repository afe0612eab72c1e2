package repository

import (
	"context"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) error
	CountLowStock(ctx context.Context, threshold float64) (int64, error)

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error)
	UpdateStockTx(tx *gorm.DB, id uint, delta float64) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("Unit").First(&p, id).Error
	return &p, err
}

// List returns every product newest-first, with Incoming computed as a
// read-time aggregation over open purchase-order lines.
func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(`products.*, (
			SELECT COALESCE(SUM(poi.quantity), 0)
			FROM purchase_order_items poi
			JOIN purchase_orders po ON poi.po_id = po.id
			WHERE poi.product_id = products.id AND po.status != ?
		) AS incoming`, model.POStatusReceived).
		Preload("Category").Preload("Unit").
		Order("products.id DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete is an unconditional hard delete. Order and purchase-order lines
// referencing the product keep their ids and resolve to a blank label at
// read time.
func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) CountLowStock(ctx context.Context, threshold float64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock < ?", threshold).Count(&n).Error
	return n, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uint, delta float64) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
