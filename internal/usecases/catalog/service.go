// Package catalog expõe as leituras de lojas e vendedores usadas nos formulários
package catalog

import (
	"context"

	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
)

type Catalog interface {
	GetStores(ctx context.Context) ([]*domain.Store, error)
	GetSalesReps(ctx context.Context) ([]*domain.SalesRepresentative, error)
}

type Service struct {
	stores    repository.StoreRepository
	salesReps repository.SalesRepRepository
}

func NewService(stores repository.StoreRepository, salesReps repository.SalesRepRepository) Catalog {
	return &Service{
		stores:    stores,
		salesReps: salesReps,
	}
}

// GetStores retorna as lojas ordenadas pelo nome
func (s *Service) GetStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao listar lojas", nil)
	}
	return stores, nil
}

func (s *Service) GetSalesReps(ctx context.Context) ([]*domain.SalesRepresentative, error) {
	reps, err := s.salesReps.ListSalesReps(ctx)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao listar vendedores", nil)
	}
	return reps, nil
}
