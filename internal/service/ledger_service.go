package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"gorm.io/gorm"
)

var (
	// ErrAlreadyReceived rejects a second receive on the same purchase order.
	// The guard lives here, inside the transaction — callers are not trusted
	// to check status first, because a double receive double-credits stock.
	ErrAlreadyReceived = errors.New("purchase order already received")

	// ErrStatusBackwards rejects status edits against the ordered → shipped →
	// received direction.
	ErrStatusBackwards = errors.New("purchase order status can only advance")

	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrPONotFound      = errors.New("purchase order not found")
)

// LedgerService owns every stock-affecting operation. Each compound operation
// runs in a single transaction and appends one inventory-log row per line, so
// that seed stock + Σ(log deltas) always equals current stock.
type LedgerService interface {
	FulfillOrder(ctx context.Context, req dto.FulfillOrderRequest) (uint, error)
	SettleDeposit(ctx context.Context, orderID uint, amount float64) error
	CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (uint, error)
	UpdatePurchaseOrder(ctx context.Context, id uint, req dto.UpdatePurchaseOrderRequest) error
	ReceivePurchaseOrder(ctx context.Context, poID uint) error
	AdjustStock(ctx context.Context, productID uint, delta float64, reason string) error

	ListOrders(ctx context.Context) ([]dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uint) (dto.OrderResponse, error)
	ListOrderItems(ctx context.Context, orderID uint) ([]dto.OrderItemResponse, error)
	ListPurchaseOrders(ctx context.Context) ([]dto.PurchaseOrderResponse, error)
	GetPurchaseOrder(ctx context.Context, id uint) (dto.PurchaseOrderResponse, error)
}

type ledgerService struct {
	orders    repository.OrderRepository
	purchases repository.PurchaseOrderRepository
	products  repository.ProductRepository
	logs      repository.InventoryLogRepository
	snapshots *infra.SnapshotStore

	// mu serializes the multi-statement operations: the store has no internal
	// locking, and the HTTP boundary may deliver concurrent requests.
	mu sync.Mutex
}

func NewLedgerService(
	orders repository.OrderRepository,
	purchases repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	logs repository.InventoryLogRepository,
	snapshots *infra.SnapshotStore,
) LedgerService {
	return &ledgerService{
		orders:    orders,
		purchases: purchases,
		products:  products,
		logs:      logs,
		snapshots: snapshots,
	}
}

// runTx executes fn inside a transaction when db is available, or calls
// fn(nil) directly (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// persist writes the post-commit state to durable storage. Every mutating
// operation ends here so a crash loses at most the one in-flight action.
func (s *ledgerService) persist() error {
	if err := s.snapshots.Save(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// FulfillOrder inserts the order header and lines, decrements stock per line
// (unconditionally — stock may go negative, there is no availability check),
// and appends a sale entry to the inventory log per line. PriceAtSale is
// copied into the line; later product price edits never rewrite history.
func (s *ledgerService) FulfillOrder(ctx context.Context, req dto.FulfillOrderRequest) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := model.Order{
		OrderNumber:   req.OrderNumber,
		ContactID:     req.ContactID,
		SalesRepID:    req.SalesRepID,
		TotalAmount:   req.TotalAmount,
		Discount:      req.Discount,
		Deposit:       req.Deposit,
		PaymentMethod: req.PaymentMethod,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtSale: line.PriceAtSale,
		})
	}

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return err
		}
		for _, line := range req.Items {
			if err := s.products.UpdateStockTx(tx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
			if err := s.logs.CreateTx(tx, &model.InventoryLog{
				ProductID:   line.ProductID,
				Type:        model.LogSale,
				Quantity:    -line.Quantity,
				ReferenceID: order.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return order.ID, s.persist()
}

// SettleDeposit adds to the cumulative amount received. No cap against the
// total: over-payment is stored as-is and the balance clamps to zero on read.
func (s *ledgerService) SettleDeposit(ctx context.Context, orderID uint, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if _, err := s.orders.FindByIDTx(tx, orderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return s.orders.AddDepositTx(tx, orderID, amount)
	})
	if err != nil {
		return err
	}
	return s.persist()
}

func (s *ledgerService) CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	po := model.PurchaseOrder{
		DistributorID:       req.DistributorID,
		ShippingRef:         req.ShippingRef,
		Status:              model.POStatusOrdered,
		ExpectedArrivalDate: req.ExpectedArrivalDate,
	}
	for _, line := range req.Items {
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	err := runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		return s.purchases.CreateTx(tx, &po)
	})
	if err != nil {
		return 0, err
	}
	return po.ID, s.persist()
}

// statusRank orders the linear state machine.
var statusRank = map[string]int{
	model.POStatusOrdered:  0,
	model.POStatusShipped:  1,
	model.POStatusReceived: 2,
}

// UpdatePurchaseOrder edits header fields. Status only advances, and never
// to received — that transition applies stock and belongs exclusively to
// ReceivePurchaseOrder.
func (s *ledgerService) UpdatePurchaseOrder(ctx context.Context, id uint, req dto.UpdatePurchaseOrderRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		po, err := s.purchases.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPONotFound
			}
			return err
		}
		if po.Status == model.POStatusReceived {
			return ErrAlreadyReceived
		}
		if req.ShippingRef != nil {
			po.ShippingRef = *req.ShippingRef
		}
		if req.ExpectedArrivalDate != nil {
			po.ExpectedArrivalDate = req.ExpectedArrivalDate
		}
		if req.Status != nil {
			if statusRank[*req.Status] < statusRank[po.Status] {
				return ErrStatusBackwards
			}
			po.Status = *req.Status
		}
		return tx.Save(po).Error
	})
	if err != nil {
		return err
	}
	return s.persist()
}

// ReceivePurchaseOrder applies every line quantity to stock, logs a purchase
// entry per line, and marks the order received. Received is terminal: a
// second call returns ErrAlreadyReceived and changes nothing.
func (s *ledgerService) ReceivePurchaseOrder(ctx context.Context, poID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		po, err := s.purchases.FindByIDTx(tx, poID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPONotFound
			}
			return err
		}
		if po.Status == model.POStatusReceived {
			return ErrAlreadyReceived
		}

		items, err := s.purchases.ListItemsTx(tx, poID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.products.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if err := s.logs.CreateTx(tx, &model.InventoryLog{
				ProductID:   item.ProductID,
				Type:        model.LogPurchase,
				Quantity:    item.Quantity,
				ReferenceID: poID,
			}); err != nil {
				return err
			}
		}
		return s.purchases.UpdateStatusTx(tx, poID, model.POStatusReceived)
	})
	if err != nil {
		return err
	}
	return s.persist()
}

// ── Read side ─────────────────────────────────────────────────────────────────

func (s *ledgerService) ListOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, MapOrder(o))
	}
	return resp, nil
}

func (s *ledgerService) GetOrder(ctx context.Context, id uint) (dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OrderResponse{}, ErrOrderNotFound
		}
		return dto.OrderResponse{}, err
	}
	return MapOrder(*o), nil
}

func (s *ledgerService) ListOrderItems(ctx context.Context, orderID uint) ([]dto.OrderItemResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderItemResponse, 0, len(items))
	for _, item := range items {
		r := dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		}
		if item.Product != nil {
			r.ProductName = item.Product.Name
			if item.Product.Unit != nil {
				r.Unit = item.Product.Unit.Name
			}
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func mapPurchaseOrder(po model.PurchaseOrder) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:                  po.ID,
		DistributorID:       po.DistributorID,
		ShippingRef:         po.ShippingRef,
		Status:              po.Status,
		ExpectedArrivalDate: po.ExpectedArrivalDate,
		CreatedAt:           po.CreatedAt,
	}
	if po.Distributor != nil {
		resp.DistributorName = po.Distributor.Name
	}
	return resp
}

func (s *ledgerService) ListPurchaseOrders(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	pos, err := s.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		resp = append(resp, mapPurchaseOrder(po))
	}
	return resp, nil
}

func (s *ledgerService) GetPurchaseOrder(ctx context.Context, id uint) (dto.PurchaseOrderResponse, error) {
	po, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PurchaseOrderResponse{}, ErrPONotFound
		}
		return dto.PurchaseOrderResponse{}, err
	}
	resp := mapPurchaseOrder(*po)
	items, err := s.purchases.ListItems(ctx, id)
	if err != nil {
		return dto.PurchaseOrderResponse{}, err
	}
	for _, item := range items {
		r := dto.POItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			r.ProductName = item.Product.Name
			if item.Product.Unit != nil {
				r.Unit = item.Product.Unit.Name
			}
		}
		resp.Items = append(resp.Items, r)
	}
	return resp, nil
}

// AdjustStock records a manual correction with its reason in the audit trail.
func (s *ledgerService) AdjustStock(ctx context.Context, productID uint, delta float64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if _, err := s.products.FindByIDTx(tx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := s.products.UpdateStockTx(tx, productID, delta); err != nil {
			return err
		}
		return s.logs.CreateTx(tx, &model.InventoryLog{
			ProductID: productID,
			Type:      model.LogAdjustment,
			Quantity:  delta,
			Reason:    reason,
		})
	})
	if err != nil {
		return err
	}
	return s.persist()
}
