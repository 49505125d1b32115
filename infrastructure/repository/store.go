package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

const storesTable = "stores"

var storeColumns = []string{"id", "name", "address", "phone", "latitude", "longitude", "created_at"}

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks
type StoreRepository interface {
	CreateStore(ctx context.Context, store *domain.Store) error
	GetStoreByID(ctx context.Context, id string) (*domain.Store, error)
	FindStoreByName(ctx context.Context, name string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
}

type storeRepository struct {
	conn *postgres.Connection
}

func NewStoreRepository(conn *postgres.Connection) StoreRepository {
	return &storeRepository{
		conn: conn,
	}
}

func (r *storeRepository) CreateStore(ctx context.Context, store *domain.Store) error {
	query, args, err := psql.
		Insert(storesTable).
		Columns("id", "name", "address", "phone", "latitude", "longitude").
		Values(store.ID, store.Name, store.Address, store.Phone, store.Latitude, store.Longitude).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&store.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir loja: %w", err)
	}

	return nil
}

func (r *storeRepository) GetStoreByID(ctx context.Context, id string) (*domain.Store, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindStoreByName compara o nome sem diferenciar maiúsculas
func (r *storeRepository) FindStoreByName(ctx context.Context, name string) (*domain.Store, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name)))
}

func (r *storeRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.Store, error) {
	query, args, err := psql.
		Select(storeColumns...).
		From(storesTable).
		Where(where).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	store, err := scanStore(r.conn.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar loja: %w", err)
	}

	return store, nil
}

func (r *storeRepository) ListStores(ctx context.Context) ([]*domain.Store, error) {
	query, args, err := psql.
		Select(storeColumns...).
		From(storesTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lojas: %w", err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear loja: %w", err)
		}
		stores = append(stores, store)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stores, nil
}

func scanStore(s scanner) (*domain.Store, error) {
	store := &domain.Store{}
	err := s.Scan(
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Phone,
		&store.Latitude,
		&store.Longitude,
		&store.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return store, nil
}
