package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

const (
	storeRankingTable = "store_ranking sr"
)

var storeRankingColumns = []string{
	"sr.id",
	"sr.store_id",
	"sr.month",
	"sr.store_name",
	"sr.revenue",
	"sr.order_count",
	"sr.position",
	"sr.position_change",
	"sr.previous_position",
	"sr.created_at",
	"sr.updated_at",
}

//go:generate mockgen -source=store_ranking.go -destination=mocks/store_ranking_mock.go -package=mocks
type StoreRankingRepository interface {
	GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error)
	SaveOrUpdateStoreRanking(ctx context.Context, rankings []*domain.StoreRankingItem) error
}

type storeRankingRepository struct {
	conn *postgres.Connection
}

func NewStoreRankingRepository(conn *postgres.Connection) StoreRankingRepository {
	return &storeRankingRepository{
		conn: conn,
	}
}

// GetStoreRanking lê o snapshot do mês (mm-yyyy) ordenado pela posição
func (r *storeRankingRepository) GetStoreRanking(ctx context.Context, month string) (*domain.StoreRankingResponse, error) {
	sqlQuery, args, err := psql.
		Select(storeRankingColumns...).
		From(storeRankingTable).
		Where(squirrel.Eq{"sr.month": month}).
		OrderBy("sr.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.StoreRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := scanStoreRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return &domain.StoreRankingResponse{
		Month:      month,
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *storeRankingRepository) SaveOrUpdateStoreRanking(ctx context.Context, rankings []*domain.StoreRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := psql.
		Insert("store_ranking").
		Columns(
			"store_id",
			"month",
			"store_name",
			"revenue",
			"order_count",
			"position",
			"position_change",
			"previous_position",
		)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.StoreID,
			ranking.Month,
			ranking.StoreName,
			ranking.Revenue,
			ranking.OrderCount,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (store_id, month) DO UPDATE SET
			store_name = EXCLUDED.store_name,
			revenue = EXCLUDED.revenue,
			order_count = EXCLUDED.order_count,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.Executor(ctx).ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func scanStoreRankingItem(s scanner) (*domain.StoreRankingItem, error) {
	item := &domain.StoreRankingItem{}

	err := s.Scan(
		&item.ID,
		&item.StoreID,
		&item.Month,
		&item.StoreName,
		&item.Revenue,
		&item.OrderCount,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
