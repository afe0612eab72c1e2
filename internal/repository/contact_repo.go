package repository

import (
	"context"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	// List returns contacts ordered by name; typ filters by role tag when
	// non-empty.
	List(ctx context.Context, typ string) ([]model.Contact, error)
	Update(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, id uint) error
}

type contactRepo struct{ db *gorm.DB }

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, c *model.Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contactRepo) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	var c model.Contact
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *contactRepo) List(ctx context.Context, typ string) ([]model.Contact, error) {
	q := r.db.WithContext(ctx).Model(&model.Contact{})
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	var contacts []model.Contact
	err := q.Order("name ASC").Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) Update(ctx context.Context, c *model.Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contactRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Contact{}, id).Error
}
