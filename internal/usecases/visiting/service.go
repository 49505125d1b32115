// Package visiting registra o check-in e o check-out das visitas de campo
package visiting

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/infrastructure/locker"
	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
	"github.com/vfg2006/field-sales-api/internal/usecases/reconciling"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/utils"
	"github.com/vfg2006/field-sales-api/pkg/validation"
)

const (
	msgCheckIn  = "Check-in salvo com sucesso!"
	msgNewStore = " Nova loja cadastrada."
	msgCheckOut = "Check-out salvo com sucesso!"
)

type CreateFieldVisitInput struct {
	SalesRepID   string   `json:"sales_rep_id" validate:"required,notblank"`
	StoreID      *string  `json:"store_id"`
	StoreName    *string  `json:"store_name"`
	StoreAddress *string  `json:"store_address"`
	VisitPurpose string   `json:"visit_purpose" validate:"required"`
	Notes        *string  `json:"notes"`
	Latitude     *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Photos       []string `json:"photos"`
}

type CheckOutInput struct {
	VisitID string  `json:"visit_id" validate:"required,notblank"`
	Result  *string `json:"result"`
	// SalesRepID restringe o check-out às visitas do vendedor informado
	SalesRepID *string `json:"-"`
}

type Result struct {
	Visit   *domain.FieldVisit `json:"visit"`
	Message string             `json:"message"`
}

type VisitRecorder interface {
	CreateFieldVisit(ctx context.Context, input CreateFieldVisitInput) (*Result, error)
	CheckOutFieldVisit(ctx context.Context, input CheckOutInput) (*Result, error)
	ListFieldVisits(ctx context.Context, filter domain.FieldVisitFilter) ([]*domain.FieldVisit, error)
}

type Service struct {
	visits     repository.FieldVisitRepository
	stores     repository.StoreRepository
	salesReps  repository.SalesRepRepository
	reconciler reconciling.Reconciler
	transactor postgres.Transactor
	locker     locker.Locker
	now        func() time.Time
	newID      func() (string, error)
}

func NewService(
	visits repository.FieldVisitRepository,
	stores repository.StoreRepository,
	salesReps repository.SalesRepRepository,
	reconciler reconciling.Reconciler,
	transactor postgres.Transactor,
	l locker.Locker,
) VisitRecorder {
	return &Service{
		visits:     visits,
		stores:     stores,
		salesReps:  salesReps,
		reconciler: reconciler,
		transactor: transactor,
		locker:     l,
		now:        time.Now,
		newID:      utils.GenerateID,
	}
}

// CreateFieldVisit valida tudo antes de qualquer escrita; a loja nova recebe as coordenadas da visita
func (s *Service) CreateFieldVisit(ctx context.Context, input CreateFieldVisitInput) (*Result, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	rep, err := s.salesReps.GetSalesRepByID(ctx, input.SalesRepID)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar vendedor", log.Fields{"sales_rep_id": input.SalesRepID})
	}
	if rep == nil {
		return nil, domain.NewNotFoundError("Vendedor", input.SalesRepID)
	}

	storeID := ""
	if input.StoreID != nil && strings.TrimSpace(*input.StoreID) != "" {
		store, err := s.stores.GetStoreByID(ctx, *input.StoreID)
		if err != nil {
			return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar loja", log.Fields{"store_id": *input.StoreID})
		}
		if store == nil {
			return nil, domain.NewNotFoundError("Loja", *input.StoreID)
		}
		storeID = store.ID
	}

	id, err := s.newID()
	if err != nil {
		return nil, domain.NewPersistenceError("Erro ao gerar id da visita")
	}

	photos := input.Photos
	if photos == nil {
		photos = []string{}
	}

	now := s.now()
	visit := &domain.FieldVisit{
		ID:           id,
		SalesRepID:   input.SalesRepID,
		VisitPurpose: domain.VisitPurpose(input.VisitPurpose),
		Notes:        input.Notes,
		Latitude:     *input.Latitude,
		Longitude:    *input.Longitude,
		Photos:       photos,
		CheckInTime:  now,
		VisitDate:    now,
		CreatedAt:    now,
	}

	guard := locker.NewGuard(s.locker)
	defer guard.Release(ctx)

	if storeID == "" {
		key := locker.StoreKey(*input.StoreName)
		if err := guard.Lock(ctx, key); err != nil {
			return nil, usecases.LockError(ctx, err, key)
		}
	}

	storeCreated := false
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		if storeID == "" {
			store, err := s.reconciler.ResolveStore(ctx, reconciling.StoreCandidate{
				Name:      *input.StoreName,
				Address:   input.StoreAddress,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			})
			if err != nil {
				return err
			}
			storeID = store.ID
			storeCreated = store.Created
		}

		visit.StoreID = storeID

		if err := s.visits.CreateFieldVisit(ctx, visit); err != nil {
			return usecases.PersistenceError(ctx, err, "Erro ao salvar visita", log.Fields{"visit_id": id})
		}
		return nil
	})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro na transação da visita", log.Fields{"visit_id": id})
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"visit_id":     id,
		"store_id":     storeID,
		"sales_rep_id": input.SalesRepID,
	}).Info("Check-in registrado")

	saved, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	message := msgCheckIn
	if storeCreated {
		message += msgNewStore
	}

	return &Result{Visit: saved, Message: message}, nil
}

func validateCreate(input CreateFieldVisitInput) error {
	violations := validation.Struct(input)
	if violations == nil {
		violations = validation.Violations{}
	}

	hasStoreID := input.StoreID != nil && strings.TrimSpace(*input.StoreID) != ""
	hasStoreName := input.StoreName != nil && strings.TrimSpace(*input.StoreName) != ""
	if !hasStoreID && !hasStoreName {
		violations["store_id"] = "required_without"
	}

	if _, missing := violations["visit_purpose"]; !missing && !domain.VisitPurpose(input.VisitPurpose).IsValid() {
		violations["visit_purpose"] = "oneof"
	}

	if len(violations) > 0 {
		return domain.NewValidationError("dados da visita inválidos", violations)
	}
	return nil
}

// CheckOutFieldVisit grava o check-out uma única vez
func (s *Service) CheckOutFieldVisit(ctx context.Context, input CheckOutInput) (*Result, error) {
	if violations := validation.Struct(input); violations != nil {
		return nil, domain.NewValidationError("dados do check-out inválidos", violations)
	}

	fields := log.Fields{"visit_id": input.VisitID}

	if input.SalesRepID != nil {
		visit, err := s.reload(ctx, input.VisitID)
		if err != nil {
			return nil, err
		}
		if visit.SalesRepID != *input.SalesRepID {
			return nil, domain.NewNotFoundError("Visita", input.VisitID)
		}
	}

	updated, err := s.visits.CheckOutFieldVisit(ctx, input.VisitID, s.now(), input.Result)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao registrar check-out", fields)
	}

	visit, err := s.reload(ctx, input.VisitID)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, domain.NewInvalidTransitionError("check-out já registrado para esta visita")
	}

	log.ForContext(ctx).WithFields(fields).Info("Check-out registrado")

	return &Result{Visit: visit, Message: msgCheckOut}, nil
}

func (s *Service) ListFieldVisits(ctx context.Context, filter domain.FieldVisitFilter) ([]*domain.FieldVisit, error) {
	visits, err := s.visits.ListFieldVisits(ctx, filter)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao listar visitas", nil)
	}
	return visits, nil
}

func (s *Service) reload(ctx context.Context, id string) (*domain.FieldVisit, error) {
	visit, err := s.visits.GetFieldVisitByID(ctx, id)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar visita", log.Fields{"visit_id": id})
	}
	if visit == nil {
		return nil, domain.NewNotFoundError("Visita", id)
	}
	return visit, nil
}
