package service

import (
	"context"
	"sort"
	"time"

	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"
)

// AnalyticsService derives windowed aggregates over sales orders. It is
// window-agnostic: callers translate selectors (last 7/30 days, 6/12 months,
// all time, custom) into concrete bounds before calling Compute.
type AnalyticsService interface {
	// Compute aggregates orders whose creation day falls within
	// [start, end], inclusive, compared at day granularity. Nil bounds mean
	// unbounded on that side.
	Compute(ctx context.Context, start, end *time.Time) (dto.AnalyticsResponse, error)
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type analyticsService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	settings SettingsService
}

func NewAnalyticsService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	settings SettingsService,
) AnalyticsService {
	return &analyticsService{orders: orders, products: products, settings: settings}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inWindow(created time.Time, start, end *time.Time) bool {
	day := dayOf(created)
	if start != nil && day.Before(dayOf(*start)) {
		return false
	}
	if end != nil && day.After(dayOf(*end)) {
		return false
	}
	return true
}

func (s *analyticsService) Compute(ctx context.Context, start, end *time.Time) (dto.AnalyticsResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	resp := dto.AnalyticsResponse{DailyTrend: []dto.DailyPoint{}}
	byDay := map[string]float64{}
	for _, o := range orders {
		if !inWindow(o.CreatedAt, start, end) {
			continue
		}
		resp.GrossSales += o.TotalAmount
		resp.TotalReceived += o.Deposit
		resp.TotalPending += o.TotalAmount - o.Deposit
		resp.OrderCount++
		byDay[dayOf(o.CreatedAt).Format("2006-01-02")] += o.TotalAmount
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		resp.DailyTrend = append(resp.DailyTrend, dto.DailyPoint{Date: d, Amount: byDay[d]})
	}
	return resp, nil
}

func (s *analyticsService) Dashboard(ctx context.Context) (dto.DashboardResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	cfg, err := s.settings.Snapshot(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	lowStock, err := s.products.CountLowStock(ctx, cfg.LowStockThreshold)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	resp := dto.DashboardResponse{
		OrderCount:    len(orders),
		LowStockCount: lowStock,
		RecentOrders:  []dto.OrderResponse{},
	}
	for i, o := range orders {
		resp.TotalSales += o.TotalAmount
		if i < 10 {
			resp.RecentOrders = append(resp.RecentOrders, MapOrder(o))
		}
	}
	return resp, nil
}

// MapOrder converts an order to its response shape, deriving the clamped
// balance and pending flag.
func MapOrder(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		ContactID:     o.ContactID,
		SalesRepID:    o.SalesRepID,
		TotalAmount:   o.TotalAmount,
		Discount:      o.Discount,
		Deposit:       o.Deposit,
		BalanceDue:    o.BalanceDue(),
		Pending:       o.Pending(),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
	if o.Contact != nil {
		resp.ContactName = o.Contact.Name
	}
	if o.SalesRep != nil {
		resp.SalesRepName = o.SalesRep.Name
	}
	return resp
}
