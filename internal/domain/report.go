package domain

import "github.com/shopspring/decimal"

type StatusBucket struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type StoreStat struct {
	StoreID           string          `json:"store_id"`
	StoreName         string          `json:"store_name"`
	OrderCount        int             `json:"order_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

type MonthlyTrendPoint struct {
	Month   string          `json:"month"` // Formato mm-yyyy
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DashboardStats struct {
	TotalOrders          int                          `json:"total_orders"`
	TotalRevenue         decimal.Decimal              `json:"total_revenue"`
	OrdersThisMonth      int                          `json:"orders_this_month"`
	RevenueThisMonth     decimal.Decimal              `json:"revenue_this_month"`
	PendingOrders        int                          `json:"pending_orders"`
	AwaitingConfirmation int                          `json:"awaiting_confirmation"`
	CompletedOrders      int                          `json:"completed_orders"`
	CanceledOrders       int                          `json:"canceled_orders"`
	StatusBreakdown      map[OrderStatus]StatusBucket `json:"status_breakdown"`
	TopStores            []StoreStat                  `json:"top_stores"`
	TotalStores          int                          `json:"total_stores"`
	VisitsThisMonth      int                          `json:"visits_this_month"`
}

type ReportPeriod string

const (
	ReportPeriodThisMonth ReportPeriod = "thisMonth"
	ReportPeriodLastMonth ReportPeriod = "lastMonth"
	ReportPeriodThisYear  ReportPeriod = "thisYear"
	ReportPeriodAll       ReportPeriod = "all"
)

func (p ReportPeriod) IsValid() bool {
	switch p {
	case ReportPeriodThisMonth, ReportPeriodLastMonth, ReportPeriodThisYear, ReportPeriodAll:
		return true
	}
	return false
}

type ReportFilter struct {
	Period  ReportPeriod
	StoreID *string
}

type OrderReport struct {
	Period            ReportPeriod                 `json:"period"`
	StoreID           *string                      `json:"store_id,omitempty"`
	TotalOrders       int                          `json:"total_orders"`
	TotalRevenue      decimal.Decimal              `json:"total_revenue"`
	AverageOrderValue decimal.Decimal              `json:"average_order_value"`
	StatusBreakdown   map[OrderStatus]StatusBucket `json:"status_breakdown"`
	Stores            []StoreStat                  `json:"stores"`
	MonthlyTrend      []MonthlyTrendPoint          `json:"monthly_trend"`
}

type SalesRepPerformance struct {
	SalesRep              *SalesRepresentative `json:"sales_rep"`
	AchievementPercentage decimal.Decimal      `json:"achievement_percentage"`
	TotalVisits           int                  `json:"total_visits"`
	VisitsThisMonth       int                  `json:"visits_this_month"`
	OrdersThisMonth       int                  `json:"orders_this_month"`
	RevenueThisMonth      decimal.Decimal      `json:"revenue_this_month"`
}
