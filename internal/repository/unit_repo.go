package repository

import (
	"context"
	"errors"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

type UnitRepository interface {
	// Create is a silent no-op when the name already exists.
	Create(ctx context.Context, name string) error
	List(ctx context.Context) ([]model.Unit, error)
	Delete(ctx context.Context, id uint) error
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) Create(ctx context.Context, name string) error {
	var existing model.Unit
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.Unit{Name: name}).Error
}

func (r *unitRepo) List(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("unit_id = ?", id).
			Update("unit_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Unit{}, id).Error
	})
}
