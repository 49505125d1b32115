package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/field-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type repos struct {
	orders    *mocks.MockOrderRepository
	visits    *mocks.MockFieldVisitRepository
	stores    *mocks.MockStoreRepository
	salesReps *mocks.MockSalesRepRepository
}

func newTestService(ctrl *gomock.Controller, now time.Time) (*Service, repos) {
	r := repos{
		orders:    mocks.NewMockOrderRepository(ctrl),
		visits:    mocks.NewMockFieldVisitRepository(ctrl),
		stores:    mocks.NewMockStoreRepository(ctrl),
		salesReps: mocks.NewMockSalesRepRepository(ctrl),
	}

	return &Service{
		orders:    r.orders,
		visits:    r.visits,
		stores:    r.stores,
		salesReps: r.salesReps,
		location:  jakarta,
		now:       func() time.Time { return now },
	}, r
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, jakarta)
	lastMonth := time.Date(2024, 2, 10, 10, 0, 0, 0, jakarta)

	t.Run("calcula os indicadores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)

		stores := make([]*domain.Store, 0)
		for _, id := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
			stores = append(stores, &domain.Store{ID: id, Name: "Loja " + id})
		}

		r.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{}).Return([]*domain.Order{
			order("o1", "s1", domain.OrderStatusNew, 100, now),
			order("o2", "s2", domain.OrderStatusInProcess, 200, now),
			order("o3", "s3", domain.OrderStatusPendingConfirmation, 300, now),
			order("o4", "s1", domain.OrderStatusCompleted, 400, lastMonth),
			order("o5", "s2", domain.OrderStatusCanceled, 500, lastMonth),
		}, nil)
		r.stores.EXPECT().ListStores(gomock.Any()).Return(stores, nil)
		r.visits.EXPECT().ListFieldVisits(gomock.Any(), domain.FieldVisitFilter{}).Return([]*domain.FieldVisit{
			{ID: "v1", VisitDate: now},
			{ID: "v2", VisitDate: lastMonth},
		}, nil)

		stats, err := service.Dashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, stats.TotalOrders)
		assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, 3, stats.OrdersThisMonth)
		assert.True(t, stats.RevenueThisMonth.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, 2, stats.PendingOrders)
		assert.Equal(t, 1, stats.AwaitingConfirmation)
		assert.Equal(t, 1, stats.CompletedOrders)
		assert.Equal(t, 1, stats.CanceledOrders)
		assert.Len(t, stats.StatusBreakdown, 5)
		assert.Len(t, stats.TopStores, 5)
		assert.Equal(t, "s2", stats.TopStores[0].StoreID)
		assert.Equal(t, 6, stats.TotalStores)
		assert.Equal(t, 1, stats.VisitsThisMonth)
	})

	t.Run("erro ao carregar pedidos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)

		r.orders.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.Dashboard(context.Background())

		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestOrderReport(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, jakarta)

	t.Run("período padrão é o mês atual", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)

		r.stores.EXPECT().ListStores(gomock.Any()).Return([]*domain.Store{{ID: "s1", Name: "Toko A"}}, nil)
		r.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{}).Return([]*domain.Order{
			order("o1", "s1", domain.OrderStatusNew, 100, now),
			order("o2", "s1", domain.OrderStatusNew, 50, now),
			order("o3", "s1", domain.OrderStatusNew, 999, time.Date(2024, 1, 5, 0, 0, 0, 0, jakarta)),
		}, nil)

		report, err := service.OrderReport(context.Background(), domain.ReportFilter{})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportPeriodThisMonth, report.Period)
		assert.Equal(t, 2, report.TotalOrders)
		assert.True(t, report.AverageOrderValue.Equal(decimal.NewFromInt(75)))
		require.Len(t, report.MonthlyTrend, 6)
		assert.Equal(t, 1, report.MonthlyTrend[3].Orders)
	})

	t.Run("loja inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)
		storeID := "s9"

		r.stores.EXPECT().GetStoreByID(gomock.Any(), storeID).Return(nil, nil)

		_, err := service.OrderReport(context.Background(), domain.ReportFilter{Period: domain.ReportPeriodAll, StoreID: &storeID})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("período inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _ := newTestService(ctrl, now)

		_, err := service.OrderReport(context.Background(), domain.ReportFilter{Period: "lastWeek"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSalesRepPerformance(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, jakarta)

	t.Run("indicadores do vendedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)
		repID := "rep1"

		r.salesReps.EXPECT().GetSalesRepByID(gomock.Any(), repID).Return(&domain.SalesRepresentative{
			ID:       repID,
			Target:   decimal.NewFromInt(50000000),
			Achieved: decimal.NewFromInt(35000000),
		}, nil)
		r.visits.EXPECT().ListFieldVisits(gomock.Any(), domain.FieldVisitFilter{SalesRepID: &repID}).Return([]*domain.FieldVisit{
			{ID: "v1", VisitDate: now},
			{ID: "v2", VisitDate: now.AddDate(0, -2, 0)},
		}, nil)
		r.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{SalesRepID: &repID}).Return([]*domain.Order{
			order("o1", "s1", domain.OrderStatusNew, 271000, now),
		}, nil)

		perf, err := service.SalesRepPerformance(context.Background(), repID)

		require.NoError(t, err)
		assert.True(t, perf.AchievementPercentage.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, 2, perf.TotalVisits)
		assert.Equal(t, 1, perf.VisitsThisMonth)
		assert.Equal(t, 1, perf.OrdersThisMonth)
		assert.True(t, perf.RevenueThisMonth.Equal(decimal.NewFromInt(271000)))
	})

	t.Run("vendedor inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, r := newTestService(ctrl, now)

		r.salesReps.EXPECT().GetSalesRepByID(gomock.Any(), "x").Return(nil, nil)

		_, err := service.SalesRepPerformance(context.Background(), "x")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
