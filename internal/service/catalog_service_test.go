package service

import (
	"context"
	"testing"

	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogEnv(t *testing.T) (*testEnv, CatalogService) {
	t.Helper()
	env := newTestEnv(t)
	catalog := NewCatalogService(
		env.products,
		repository.NewCategoryRepository(env.db),
		repository.NewUnitRepository(env.db),
		repository.NewContactRepository(env.db),
		env.logs,
		env.snapshots,
	)
	return env, catalog
}

func TestAddCategoryDuplicateIsNoOp(t *testing.T) {
	_, catalog := newCatalogEnv(t)
	ctx := context.Background()

	require.NoError(t, catalog.AddCategory(ctx, "Tools"))
	require.NoError(t, catalog.AddCategory(ctx, "Tools"))

	cats, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	names := map[string]int{}
	for _, c := range cats {
		names[c.Name]++
	}
	assert.Equal(t, 1, names["Tools"])
}

func TestCreateAndGetProductResolvesNames(t *testing.T) {
	_, catalog := newCatalogEnv(t)
	ctx := context.Background()

	cats, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	units, err := catalog.ListUnits(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	require.NotEmpty(t, units)

	created, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{
		Name:       "Standing Desk",
		Price:      499,
		Cost:       250,
		Stock:      4,
		CategoryID: &cats[0].ID,
		UnitID:     &units[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, cats[0].Name, created.Category)
	assert.Equal(t, units[0].Name, created.Unit)

	got, err := catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", got.Name)
	assert.Equal(t, 4.0, got.Stock)
}

func TestUpdateProductPatchSemantics(t *testing.T) {
	_, catalog := newCatalogEnv(t)
	ctx := context.Background()

	created, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Lamp", Price: 30, Cost: 10, Stock: 5,
	})
	require.NoError(t, err)

	newPrice := 35.0
	updated, err := catalog.UpdateProduct(ctx, created.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.Price)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, 5.0, updated.Stock)

	_, err = catalog.UpdateProduct(ctx, 9999, dto.UpdateProductRequest{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestIncomingDerivedFromOpenPurchaseOrders(t *testing.T) {
	env, catalog := newCatalogEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Router", 10)

	poID, err := env.ledger.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		Items: []dto.POLineRequest{{ProductID: pid, Quantity: 25}},
	})
	require.NoError(t, err)

	findRouter := func() dto.ProductResponse {
		products, err := catalog.ListProducts(ctx)
		require.NoError(t, err)
		for _, p := range products {
			if p.ID == pid {
				return p
			}
		}
		t.Fatal("product missing from listing")
		return dto.ProductResponse{}
	}

	assert.Equal(t, 25.0, findRouter().Incoming)

	// Receiving closes the order: incoming drops to zero, stock absorbs it.
	require.NoError(t, env.ledger.ReceivePurchaseOrder(ctx, poID))
	got := findRouter()
	assert.Equal(t, 0.0, got.Incoming)
	assert.Equal(t, 35.0, got.Stock)
}

func TestDeleteCategoryNullsProductReferences(t *testing.T) {
	_, catalog := newCatalogEnv(t)
	ctx := context.Background()

	require.NoError(t, catalog.AddCategory(ctx, "Doomed"))
	cats, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	var catID uint
	for _, c := range cats {
		if c.Name == "Doomed" {
			catID = c.ID
		}
	}
	require.NotZero(t, catID)

	created, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Orphan-to-be", CategoryID: &catID,
	})
	require.NoError(t, err)
	require.Equal(t, "Doomed", created.Category)

	require.NoError(t, catalog.DeleteCategory(ctx, catID))

	got, err := catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Category, "reference nulled, product survives")
}

func TestContactsCRUDAndTypeFilter(t *testing.T) {
	_, catalog := newCatalogEnv(t)
	ctx := context.Background()

	created, err := catalog.CreateContact(ctx, dto.ContactRequest{
		Name: "Acme Wholesale", Type: model.ContactDistributor,
	})
	require.NoError(t, err)

	dists, err := catalog.ListContacts(ctx, model.ContactDistributor)
	require.NoError(t, err)
	found := false
	for _, c := range dists {
		assert.Equal(t, model.ContactDistributor, c.Type)
		if c.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)

	updated, err := catalog.UpdateContact(ctx, created.ID, dto.ContactRequest{
		Name: "Acme Wholesale Ltd", Type: model.ContactDistributor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Wholesale Ltd", updated.Name)

	require.NoError(t, catalog.DeleteContact(ctx, created.ID))
	all, err := catalog.ListContacts(ctx, "")
	require.NoError(t, err)
	for _, c := range all {
		assert.NotEqual(t, created.ID, c.ID)
	}
}
