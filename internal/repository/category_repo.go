package repository

import (
	"context"
	"errors"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	// Create is a silent no-op when the name already exists.
	Create(ctx context.Context, name string) error
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, name string) error {
	var existing model.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.Category{Name: name}).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error
	return cats, err
}

// Delete nulls out product references in the same transaction, then removes
// the category.
func (r *categoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}
