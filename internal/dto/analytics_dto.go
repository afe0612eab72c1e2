package dto

// DailyPoint is one calendar day of the sales trend, date formatted
// YYYY-MM-DD, sorted ascending.
type DailyPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type AnalyticsResponse struct {
	GrossSales    float64      `json:"gross_sales"`
	TotalReceived float64      `json:"total_received"`
	TotalPending  float64      `json:"total_pending"`
	OrderCount    int          `json:"order_count"`
	DailyTrend    []DailyPoint `json:"daily_trend"`
}

type DashboardResponse struct {
	TotalSales    float64         `json:"total_sales"`
	OrderCount    int             `json:"order_count"`
	LowStockCount int64           `json:"low_stock_count"`
	RecentOrders  []OrderResponse `json:"recent_orders"`
}
