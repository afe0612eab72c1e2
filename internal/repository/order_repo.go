package repository

import (
	"context"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateTx inserts the order header and its line items in one statement
	// batch. Callers must pass the tx of the enclosing compound operation.
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListItems(ctx context.Context, orderID uint) ([]model.OrderItem, error)
	AddDepositTx(tx *gorm.DB, id uint, amount float64) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Contact").Preload("SalesRep").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error) {
	var o model.Order
	err := tx.First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Contact").Preload("SalesRep").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListItems resolves product names and units for display. A deleted product
// simply yields a nil Product — the label renders blank, not an error.
func (r *orderRepo) ListItems(ctx context.Context, orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Unit").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *orderRepo) AddDepositTx(tx *gorm.DB, id uint, amount float64) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).
		Update("deposit", gorm.Expr("deposit + ?", amount)).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
