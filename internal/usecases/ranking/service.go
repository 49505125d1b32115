package ranking

import (
	"context"
	"time"

	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/utils"
)

const monthLayout = "01-2006"

type RankingService interface {
	GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error)
	UpdateStoreRanking(ctx context.Context) ([]*domain.StoreRankingItem, error)
}

type StoreRankingService struct {
	rankings repository.StoreRankingRepository
	orders   repository.OrderRepository
	stores   repository.StoreRepository
	location *time.Location
	now      func() time.Time
}

func NewStoreRankingService(
	rankings repository.StoreRankingRepository,
	orders repository.OrderRepository,
	stores repository.StoreRepository,
	cfg config.App,
) RankingService {
	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return &StoreRankingService{
		rankings: rankings,
		orders:   orders,
		stores:   stores,
		location: location,
		now:      time.Now,
	}
}

// GetStoreRanking lê o snapshot salvo; mês vazio significa o mês corrente
func (s *StoreRankingService) GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error) {
	if month == "" {
		month = utils.MonthKey(s.now().In(s.location))
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, domain.NewValidationError("mês deve estar no formato mm-yyyy", map[string]string{"month": "datetime"})
	}

	ranking, err := s.rankings.GetStoreRanking(ctx, month)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar ranking de lojas", log.Fields{"month": month})
	}
	return ranking, nil
}

// UpdateStoreRanking recalcula o ranking do mês corrente a partir dos pedidos e grava o snapshot.
// Pedidos cancelados ou aguardando confirmação não contam.
func (s *StoreRankingService) UpdateStoreRanking(ctx context.Context) ([]*domain.StoreRankingItem, error) {
	now := s.now().In(s.location)
	month := utils.MonthKey(now)
	logger := log.ForContext(ctx).WithField("month", month)

	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar pedidos do ranking", log.Fields{"month": month})
	}

	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao carregar lojas do ranking", log.Fields{"month": month})
	}

	before, err := s.previousPositions(ctx, now)
	if err != nil {
		return nil, err
	}

	stats := reporting.StoreStats(countable(reporting.InCurrentMonth(orders, now, s.location)), stores)

	updated := make([]*domain.StoreRankingItem, 0, len(stats))
	for i, stat := range stats {
		item := &domain.StoreRankingItem{
			StoreID:    stat.StoreID,
			Month:      month,
			StoreName:  stat.StoreName,
			Revenue:    stat.Revenue,
			OrderCount: stat.OrderCount,
			Position:   i + 1,
		}

		if previous, exists := before[stat.StoreID]; exists {
			item.PreviousPosition = previous
			item.PositionChange = previous - item.Position
		}

		updated = append(updated, item)
	}

	if err := s.rankings.SaveOrUpdateStoreRanking(ctx, updated); err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao salvar ranking de lojas", log.Fields{"month": month})
	}

	logger.WithField("stores", len(updated)).Info("Ranking de lojas atualizado")

	return updated, nil
}

// previousPositions usa o snapshot do mês corrente e, na primeira execução do mês, o do mês anterior
func (s *StoreRankingService) previousPositions(ctx context.Context, now time.Time) (map[string]int, error) {
	positions := make(map[string]int)

	for _, month := range []string{utils.MonthKey(now), utils.MonthKey(utils.PreviousMonth(now))} {
		snapshot, err := s.rankings.GetStoreRanking(ctx, month)
		if err != nil {
			return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar ranking anterior", log.Fields{"month": month})
		}
		if snapshot == nil || len(snapshot.Ranking) == 0 {
			continue
		}

		for _, item := range snapshot.Ranking {
			positions[item.StoreID] = item.Position
		}
		return positions, nil
	}

	return positions, nil
}

func countable(orders []*domain.Order) []*domain.Order {
	filtered := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == domain.OrderStatusCanceled || order.Status == domain.OrderStatusPendingConfirmation {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}
