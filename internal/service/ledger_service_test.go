package service

import (
	"context"
	"testing"

	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	snapshots *infra.SnapshotStore
	products  repository.ProductRepository
	orders    repository.OrderRepository
	purchases repository.PurchaseOrderRepository
	logs      repository.InventoryLogRepository
	ledger    LedgerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, infra.EnsureSchema(db))
	blobs, err := infra.NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	snapshots := infra.NewSnapshotStore(db, blobs)

	env := &testEnv{
		db:        db,
		snapshots: snapshots,
		products:  repository.NewProductRepository(db),
		orders:    repository.NewOrderRepository(db),
		purchases: repository.NewPurchaseOrderRepository(db),
		logs:      repository.NewInventoryLogRepository(db),
	}
	env.ledger = NewLedgerService(env.orders, env.purchases, env.products, env.logs, snapshots)
	return env
}

func (e *testEnv) createProduct(t *testing.T, name string, stock float64) uint {
	t.Helper()
	p := model.Product{Name: name, Price: 10, Cost: 5, Stock: stock}
	require.NoError(t, e.db.Create(&p).Error)
	return p.ID
}

func (e *testEnv) stockOf(t *testing.T, id uint) float64 {
	t.Helper()
	var p model.Product
	require.NoError(t, e.db.First(&p, id).Error)
	return p.Stock
}

func TestFulfillOrderDecrementsStockAndLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Widget", 100)

	id, err := env.ledger.FulfillOrder(ctx, dto.FulfillOrderRequest{
		TotalAmount: 50,
		Items: []dto.OrderLineRequest{
			{ProductID: pid, Quantity: 10, PriceAtSale: 5},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	assert.Equal(t, 90.0, env.stockOf(t, pid))

	logs, err := env.logs.List(ctx, repository.InventoryLogFilter{ProductID: &pid})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.LogSale, logs[0].Type)
	assert.Equal(t, -10.0, logs[0].Quantity)
	assert.Equal(t, id, logs[0].ReferenceID)

	order, err := env.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.TotalAmount)
}

func TestFulfillOrderAllowsNegativeStock(t *testing.T) {
	env := newTestEnv(t)
	pid := env.createProduct(t, "Scarce", 3)

	_, err := env.ledger.FulfillOrder(context.Background(), dto.FulfillOrderRequest{
		TotalAmount: 100,
		Items:       []dto.OrderLineRequest{{ProductID: pid, Quantity: 5, PriceAtSale: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, -2.0, env.stockOf(t, pid))
}

func TestSettleDepositAccumulates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Chair", 50)

	id, err := env.ledger.FulfillOrder(ctx, dto.FulfillOrderRequest{
		TotalAmount: 110,
		Deposit:     0,
		Items:       []dto.OrderLineRequest{{ProductID: pid, Quantity: 1, PriceAtSale: 110}},
	})
	require.NoError(t, err)

	require.NoError(t, env.ledger.SettleDeposit(ctx, id, 40))
	require.NoError(t, env.ledger.SettleDeposit(ctx, id, 70))

	order, err := env.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 110.0, order.Deposit)
	assert.False(t, order.Pending())
	assert.Equal(t, 0.0, order.BalanceDue())
}

func TestSettleDepositUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	err := env.ledger.SettleDeposit(context.Background(), 999, 10)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReceivePurchaseOrderAppliesStockOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Cable", 100)

	poID, err := env.ledger.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		Items: []dto.POLineRequest{{ProductID: pid, Quantity: 20}},
	})
	require.NoError(t, err)

	require.NoError(t, env.ledger.ReceivePurchaseOrder(ctx, poID))
	assert.Equal(t, 120.0, env.stockOf(t, pid))

	logs, err := env.logs.List(ctx, repository.InventoryLogFilter{ProductID: &pid, Type: model.LogPurchase})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 20.0, logs[0].Quantity)
	assert.Equal(t, poID, logs[0].ReferenceID)

	// Received is terminal: the second call must change nothing.
	err = env.ledger.ReceivePurchaseOrder(ctx, poID)
	assert.ErrorIs(t, err, ErrAlreadyReceived)
	assert.Equal(t, 120.0, env.stockOf(t, pid))

	logs, err = env.logs.List(ctx, repository.InventoryLogFilter{ProductID: &pid, Type: model.LogPurchase})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestUpdatePurchaseOrderStatusRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Monitor", 5)

	poID, err := env.ledger.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		Items: []dto.POLineRequest{{ProductID: pid, Quantity: 2}},
	})
	require.NoError(t, err)

	shipped := model.POStatusShipped
	require.NoError(t, env.ledger.UpdatePurchaseOrder(ctx, poID, dto.UpdatePurchaseOrderRequest{Status: &shipped}))

	// Backwards transition is rejected.
	ordered := model.POStatusOrdered
	err = env.ledger.UpdatePurchaseOrder(ctx, poID, dto.UpdatePurchaseOrderRequest{Status: &ordered})
	assert.ErrorIs(t, err, ErrStatusBackwards)

	// After receiving, header edits are refused outright.
	require.NoError(t, env.ledger.ReceivePurchaseOrder(ctx, poID))
	ref := "LATE-EDIT"
	err = env.ledger.UpdatePurchaseOrder(ctx, poID, dto.UpdatePurchaseOrderRequest{ShippingRef: &ref})
	assert.ErrorIs(t, err, ErrAlreadyReceived)
}

func TestAdjustStockLogsReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Shelf", 10)

	require.NoError(t, env.ledger.AdjustStock(ctx, pid, -3, "damaged in transit"))
	assert.Equal(t, 7.0, env.stockOf(t, pid))

	logs, err := env.logs.List(ctx, repository.InventoryLogFilter{ProductID: &pid, Type: model.LogAdjustment})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, -3.0, logs[0].Quantity)
	assert.Equal(t, "damaged in transit", logs[0].Reason)

	err = env.ledger.AdjustStock(ctx, 999, 1, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// Seed stock plus the sum of logged deltas must always equal current stock,
// across any mix of sales, receipts, and adjustments.
func TestStockConservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const seed = 100.0
	pid := env.createProduct(t, "Tracked", seed)

	_, err := env.ledger.FulfillOrder(ctx, dto.FulfillOrderRequest{
		TotalAmount: 30,
		Items:       []dto.OrderLineRequest{{ProductID: pid, Quantity: 12, PriceAtSale: 2.5}},
	})
	require.NoError(t, err)

	poID, err := env.ledger.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		Items: []dto.POLineRequest{{ProductID: pid, Quantity: 40}},
	})
	require.NoError(t, err)
	require.NoError(t, env.ledger.ReceivePurchaseOrder(ctx, poID))

	require.NoError(t, env.ledger.AdjustStock(ctx, pid, -5.5, "shrinkage"))

	sum, err := env.logs.SumDeltas(ctx, pid)
	require.NoError(t, err)
	assert.InDelta(t, env.stockOf(t, pid), seed+sum, 1e-9)
}

func TestMutationsPersistSnapshots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pid := env.createProduct(t, "Persisted", 10)

	id, err := env.ledger.FulfillOrder(ctx, dto.FulfillOrderRequest{
		TotalAmount: 20,
		Items:       []dto.OrderLineRequest{{ProductID: pid, Quantity: 2, PriceAtSale: 10}},
	})
	require.NoError(t, err)

	// A fresh store restored from the snapshot must contain the order.
	db2, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	doc, err := infra.BuildDocument(env.db)
	require.NoError(t, err)
	require.NoError(t, infra.RestoreDocument(db2, doc))

	var restored model.Order
	require.NoError(t, db2.First(&restored, id).Error)
	assert.Equal(t, 20.0, restored.TotalAmount)
}
