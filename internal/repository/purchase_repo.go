package repository

import (
	"context"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.PurchaseOrder, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)
	ListItems(ctx context.Context, poID uint) ([]model.PurchaseOrderItem, error)
	ListItemsTx(tx *gorm.DB, poID uint) ([]model.PurchaseOrderItem, error)
	Update(ctx context.Context, po *model.PurchaseOrder) error
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.Create(po).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Distributor").
		First(&po, id).Error
	return &po, err
}

func (r *purchaseRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := tx.First(&po, id).Error
	return &po, err
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Distributor").
		Order("created_at DESC").
		Find(&pos).Error
	return pos, err
}

func (r *purchaseRepo) ListItems(ctx context.Context, poID uint) ([]model.PurchaseOrderItem, error) {
	var items []model.PurchaseOrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Unit").
		Where("po_id = ?", poID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *purchaseRepo) ListItemsTx(tx *gorm.DB, poID uint) ([]model.PurchaseOrderItem, error) {
	var items []model.PurchaseOrderItem
	err := tx.Where("po_id = ?", poID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *purchaseRepo) Update(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

func (r *purchaseRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
