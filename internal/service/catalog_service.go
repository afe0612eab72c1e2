package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"gorm.io/gorm"
)

// CatalogService is CRUD over products, categories, units, and contacts.
// Category/unit references resolve to names at read time; deleting either
// nulls the references (repository-level cascade) instead of blocking.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uint) error
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uint) (dto.ProductResponse, error)

	AddCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]dto.NamedResponse, error)
	DeleteCategory(ctx context.Context, id uint) error

	AddUnit(ctx context.Context, name string) error
	ListUnits(ctx context.Context) ([]dto.NamedResponse, error)
	DeleteUnit(ctx context.Context, id uint) error

	CreateContact(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
	UpdateContact(ctx context.Context, id uint, req dto.ContactRequest) (dto.ContactResponse, error)
	DeleteContact(ctx context.Context, id uint) error
	ListContacts(ctx context.Context, typ string) ([]dto.ContactResponse, error)

	ListInventoryLog(ctx context.Context, filter repository.InventoryLogFilter) ([]model.InventoryLog, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	units      repository.UnitRepository
	contacts   repository.ContactRepository
	logs       repository.InventoryLogRepository
	snapshots  *infra.SnapshotStore
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	units repository.UnitRepository,
	contacts repository.ContactRepository,
	logs repository.InventoryLogRepository,
	snapshots *infra.SnapshotStore,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		units:      units,
		contacts:   contacts,
		logs:       logs,
		snapshots:  snapshots,
	}
}

func (s *catalogService) persist() error {
	if err := s.snapshots.Save(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func mapProduct(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Cost:      p.Cost,
		Stock:     p.Stock,
		Incoming:  p.Incoming,
		CreatedAt: p.CreatedAt,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	if p.Unit != nil {
		resp.Unit = p.Unit.Name
	}
	return resp
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (dto.ProductResponse, error) {
	p := model.Product{
		Name:       req.Name,
		Price:      req.Price,
		Cost:       req.Cost,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		UnitID:     req.UnitID,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := s.persist(); err != nil {
		return dto.ProductResponse{}, err
	}
	created, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return mapProduct(p), nil
	}
	return mapProduct(*created), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductResponse{}, ErrProductNotFound
		}
		return dto.ProductResponse{}, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.UnitID != nil {
		p.UnitID = req.UnitID
	}
	// Preloaded associations may be stale after the edit, drop them before
	// saving so gorm does not try to upsert them.
	p.Category, p.Unit = nil, nil
	if err := s.products.Update(ctx, p); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := s.persist(); err != nil {
		return dto.ProductResponse{}, err
	}
	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return mapProduct(*p), nil
	}
	return mapProduct(*updated), nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist()
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return resp, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductResponse{}, ErrProductNotFound
		}
		return dto.ProductResponse{}, err
	}
	return mapProduct(*p), nil
}

// ── Categories / units ────────────────────────────────────────────────────────

// AddCategory tolerates duplicate names as a silent no-op — callers never
// branch on "already exists".
func (s *catalogService) AddCategory(ctx context.Context, name string) error {
	if err := s.categories.Create(ctx, name); err != nil {
		return err
	}
	return s.persist()
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.NamedResponse, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NamedResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, dto.NamedResponse{ID: c.ID, Name: c.Name})
	}
	return resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist()
}

func (s *catalogService) AddUnit(ctx context.Context, name string) error {
	if err := s.units.Create(ctx, name); err != nil {
		return err
	}
	return s.persist()
}

func (s *catalogService) ListUnits(ctx context.Context) ([]dto.NamedResponse, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NamedResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, dto.NamedResponse{ID: u.ID, Name: u.Name})
	}
	return resp, nil
}

func (s *catalogService) DeleteUnit(ctx context.Context, id uint) error {
	if err := s.units.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist()
}

// ── Contacts ──────────────────────────────────────────────────────────────────

func mapContact(c model.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID: c.ID, Name: c.Name, Phone: c.Phone,
		Email: c.Email, Address: c.Address, Type: c.Type,
	}
}

func (s *catalogService) CreateContact(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	c := model.Contact{
		Name: req.Name, Phone: req.Phone, Email: req.Email,
		Address: req.Address, Type: req.Type,
	}
	if err := s.contacts.Create(ctx, &c); err != nil {
		return dto.ContactResponse{}, err
	}
	if err := s.persist(); err != nil {
		return dto.ContactResponse{}, err
	}
	return mapContact(c), nil
}

func (s *catalogService) UpdateContact(ctx context.Context, id uint, req dto.ContactRequest) (dto.ContactResponse, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactResponse{}, errors.New("contact not found")
		}
		return dto.ContactResponse{}, err
	}
	c.Name, c.Phone, c.Email, c.Address, c.Type = req.Name, req.Phone, req.Email, req.Address, req.Type
	if err := s.contacts.Update(ctx, c); err != nil {
		return dto.ContactResponse{}, err
	}
	if err := s.persist(); err != nil {
		return dto.ContactResponse{}, err
	}
	return mapContact(*c), nil
}

func (s *catalogService) DeleteContact(ctx context.Context, id uint) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	return s.persist()
}

func (s *catalogService) ListContacts(ctx context.Context, typ string) ([]dto.ContactResponse, error) {
	contacts, err := s.contacts.List(ctx, typ)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, mapContact(c))
	}
	return resp, nil
}

func (s *catalogService) ListInventoryLog(ctx context.Context, filter repository.InventoryLogFilter) ([]model.InventoryLog, error) {
	return s.logs.List(ctx, filter)
}
