// Package reporting calcula os indicadores do dashboard e dos relatórios a partir dos pedidos e visitas
package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

type Reporter interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	OrderReport(ctx context.Context, filter domain.ReportFilter) (*domain.OrderReport, error)
	SalesRepPerformance(ctx context.Context, salesRepID string) (*domain.SalesRepPerformance, error)
}

type Service struct {
	orders    repository.OrderRepository
	visits    repository.FieldVisitRepository
	stores    repository.StoreRepository
	salesReps repository.SalesRepRepository
	location  *time.Location
	now       func() time.Time
}

func NewService(
	orders repository.OrderRepository,
	visits repository.FieldVisitRepository,
	stores repository.StoreRepository,
	salesReps repository.SalesRepRepository,
	cfg config.App,
) Reporter {
	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return &Service{
		orders:    orders,
		visits:    visits,
		stores:    stores,
		salesReps: salesReps,
		location:  location,
		now:       time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar pedidos do dashboard", nil)
	}

	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar lojas do dashboard", nil)
	}

	visits, err := s.visits.ListFieldVisits(ctx, domain.FieldVisitFilter{})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar visitas do dashboard", nil)
	}

	now := s.now()
	thisMonth := InCurrentMonth(orders, now, s.location)

	topStores := StoreStats(orders, stores)
	if len(topStores) > topStoresLimit {
		topStores = topStores[:topStoresLimit]
	}

	return &domain.DashboardStats{
		TotalOrders:          len(orders),
		TotalRevenue:         TotalRevenue(orders),
		OrdersThisMonth:      len(thisMonth),
		RevenueThisMonth:     TotalRevenue(thisMonth),
		PendingOrders:        CountByStatus(orders, domain.OrderStatusNew, domain.OrderStatusInProcess),
		AwaitingConfirmation: CountByStatus(orders, domain.OrderStatusPendingConfirmation),
		CompletedOrders:      CountByStatus(orders, domain.OrderStatusCompleted),
		CanceledOrders:       CountByStatus(orders, domain.OrderStatusCanceled),
		StatusBreakdown:      StatusBuckets(orders),
		TopStores:            topStores,
		TotalStores:          len(stores),
		VisitsThisMonth:      visitsInMonth(visits, now, s.location),
	}, nil
}

// OrderReport aplica o período aos totais; a tendência mensal ignora o período e respeita só a loja
func (s *Service) OrderReport(ctx context.Context, filter domain.ReportFilter) (*domain.OrderReport, error) {
	if filter.Period == "" {
		filter.Period = domain.ReportPeriodThisMonth
	}
	if !filter.Period.IsValid() {
		return nil, domain.NewValidationError("período inválido", map[string]string{"period": "oneof"})
	}

	var stores []*domain.Store
	if filter.StoreID != nil {
		store, err := s.stores.GetStoreByID(ctx, *filter.StoreID)
		if err != nil {
			return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar loja do relatório", log.Fields{"store_id": *filter.StoreID})
		}
		if store == nil {
			return nil, domain.NewNotFoundError("Loja", *filter.StoreID)
		}
		stores = []*domain.Store{store}
	} else {
		var err error
		stores, err = s.stores.ListStores(ctx)
		if err != nil {
			return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar lojas do relatório", nil)
		}
	}

	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{StoreID: filter.StoreID})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar pedidos do relatório", nil)
	}

	now := s.now()
	inPeriod := FilterByPeriod(orders, filter.Period, now, s.location)
	revenue := TotalRevenue(inPeriod)

	return &domain.OrderReport{
		Period:            filter.Period,
		StoreID:           filter.StoreID,
		TotalOrders:       len(inPeriod),
		TotalRevenue:      revenue,
		AverageOrderValue: average(revenue, len(inPeriod)),
		StatusBreakdown:   StatusBuckets(inPeriod),
		Stores:            StoreStats(inPeriod, stores),
		MonthlyTrend:      MonthlyTrend(orders, trendMonths, now, s.location),
	}, nil
}

func (s *Service) SalesRepPerformance(ctx context.Context, salesRepID string) (*domain.SalesRepPerformance, error) {
	rep, err := s.salesReps.GetSalesRepByID(ctx, salesRepID)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar vendedor", log.Fields{"sales_rep_id": salesRepID})
	}
	if rep == nil {
		return nil, domain.NewNotFoundError("Vendedor", salesRepID)
	}

	visits, err := s.visits.ListFieldVisits(ctx, domain.FieldVisitFilter{SalesRepID: &salesRepID})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar visitas do vendedor", log.Fields{"sales_rep_id": salesRepID})
	}

	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{SalesRepID: &salesRepID})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar pedidos do vendedor", log.Fields{"sales_rep_id": salesRepID})
	}

	now := s.now()
	thisMonth := InCurrentMonth(orders, now, s.location)

	return &domain.SalesRepPerformance{
		SalesRep:              rep,
		AchievementPercentage: rep.AchievementPercentage(),
		TotalVisits:           len(visits),
		VisitsThisMonth:       visitsInMonth(visits, now, s.location),
		OrdersThisMonth:       len(thisMonth),
		RevenueThisMonth:      TotalRevenue(thisMonth),
	}, nil
}
