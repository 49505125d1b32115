// Package ordering cria pedidos, resolve loja e cliente pelo nome e aplica a confirmação do administrador
package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/infrastructure/locker"
	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
	"github.com/vfg2006/field-sales-api/internal/usecases/reconciling"
	"github.com/vfg2006/field-sales-api/internal/usecases/reporting"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/utils"
	"github.com/vfg2006/field-sales-api/pkg/validation"
)

const (
	msgCreated              = "Pedido criado com sucesso!"
	msgAwaitingConfirmation = "Pedido criado e aguardando confirmação do administrador!"
	msgNewStore             = " Nova loja cadastrada."
	msgConfirmed            = "Pedido confirmado com sucesso!"
	msgRejected             = "Pedido rejeitado com sucesso!"
)

type ItemInput struct {
	ProductName string          `json:"product_name" validate:"required,notblank"`
	Quantity    int             `json:"quantity" validate:"gt=0,lte=2147483647"`
	Price       decimal.Decimal `json:"price"`
}

type CreateOrderInput struct {
	SalesRepID           string      `json:"sales_rep_id" validate:"required,notblank"`
	StoreID              *string     `json:"store_id"`
	StoreName            *string     `json:"store_name"`
	StoreAddress         *string     `json:"store_address"`
	CustomerName         string      `json:"customer_name" validate:"required,notblank"`
	CustomerEmail        *string     `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone        *string     `json:"customer_phone"`
	Items                []ItemInput `json:"items" validate:"required,min=1,dive"`
	Notes                *string     `json:"notes"`
	RequiresConfirmation bool        `json:"requires_confirmation"`
}

type ConfirmOrderInput struct {
	OrderID     string  `json:"order_id" validate:"required,notblank"`
	Approve     *bool   `json:"approve" validate:"required"`
	AdminNotes  *string `json:"admin_notes"`
	ConfirmedBy string  `json:"confirmed_by" validate:"required,notblank"`
}

type ListOrdersInput struct {
	SalesRepID           *string
	StoreID              *string
	Status               *string
	RequiresConfirmation *bool
	Search               string
}

// Result é o pedido populado e a mensagem exibida ao usuário
type Result struct {
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
}

type OrderManager interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Result, error)
	ConfirmOrder(ctx context.Context, input ConfirmOrderInput) (*Result, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]*domain.Order, error)
}

type Service struct {
	orders     repository.OrderRepository
	stores     repository.StoreRepository
	salesReps  repository.SalesRepRepository
	reconciler reconciling.Reconciler
	transactor postgres.Transactor
	locker     locker.Locker
	now        func() time.Time
	newID      func() (string, error)
}

func NewService(
	orders repository.OrderRepository,
	stores repository.StoreRepository,
	salesReps repository.SalesRepRepository,
	reconciler reconciling.Reconciler,
	transactor postgres.Transactor,
	l locker.Locker,
) OrderManager {
	return &Service{
		orders:     orders,
		stores:     stores,
		salesReps:  salesReps,
		reconciler: reconciler,
		transactor: transactor,
		locker:     l,
		now:        time.Now,
		newID:      utils.GenerateID,
	}
}

func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Result, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("sales_rep_id", input.SalesRepID)

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

	order, err := s.buildOrder(input)
	if err != nil {
		return nil, err
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
				Name:    *input.StoreName,
				Address: input.StoreAddress,
			})
			if err != nil {
				return err
			}
			storeID = store.ID
			storeCreated = store.Created
		}

		key := locker.CustomerKey(storeID, input.CustomerName)
		if err := guard.Lock(ctx, key); err != nil {
			return usecases.LockError(ctx, err, key)
		}

		customer, err := s.reconciler.ResolveCustomer(ctx, reconciling.CustomerCandidate{
			Name:    input.CustomerName,
			Email:   input.CustomerEmail,
			Phone:   input.CustomerPhone,
			StoreID: storeID,
		})
		if err != nil {
			return err
		}

		order.StoreID = storeID
		order.CustomerID = customer.ID

		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return usecases.PersistenceError(ctx, err, "Erro ao salvar pedido", log.Fields{"order_id": order.ID})
		}
		return nil
	})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro na transação do pedido", log.Fields{"order_id": order.ID})
	}

	logger.WithFields(log.Fields{"order_id": order.ID, "store_id": storeID}).Info("Pedido criado")

	created, err := s.reload(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	message := msgCreated
	if input.RequiresConfirmation {
		message = msgAwaitingConfirmation
	}
	if storeCreated {
		message += msgNewStore
	}

	return &Result{Order: created, Message: message}, nil
}

func validateCreate(input CreateOrderInput) error {
	violations := validation.Struct(input)
	if violations == nil {
		violations = validation.Violations{}
	}

	hasStoreID := input.StoreID != nil && strings.TrimSpace(*input.StoreID) != ""
	hasStoreName := input.StoreName != nil && strings.TrimSpace(*input.StoreName) != ""
	if !hasStoreID && !hasStoreName {
		violations["store_id"] = "required_without"
	}

	for i, item := range input.Items {
		switch {
		case item.Price.IsNegative():
			violations[itemField(i, "price")] = "gte"
		case !item.Price.Equal(item.Price.Truncate(2)):
			// preço e totais são gravados com duas casas
			violations[itemField(i, "price")] = "decimal"
		}
	}

	if len(violations) > 0 {
		return domain.NewValidationError("dados do pedido inválidos", violations)
	}
	return nil
}

func itemField(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}

// buildOrder calcula os totais antes de qualquer escrita
func (s *Service) buildOrder(input CreateOrderInput) (*domain.Order, error) {
	orderID, err := s.newID()
	if err != nil {
		return nil, domain.NewPersistenceError("Erro ao gerar id do pedido")
	}

	now := s.now()
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		itemID, err := s.newID()
		if err != nil {
			return nil, domain.NewPersistenceError("Erro ao gerar id do item")
		}

		items = append(items, domain.OrderItem{
			ID:          itemID,
			OrderID:     orderID,
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       domain.LineTotal(item.Quantity, item.Price),
		})
	}

	status := domain.OrderStatusNew
	if input.RequiresConfirmation {
		status = domain.OrderStatusPendingConfirmation
	}

	salesRepID := input.SalesRepID

	return &domain.Order{
		ID:                   orderID,
		SalesRepID:           &salesRepID,
		Items:                items,
		TotalAmount:          domain.SumItems(items),
		Status:               status,
		OrderDate:            now,
		Notes:                input.Notes,
		RequiresConfirmation: input.RequiresConfirmation,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// ConfirmOrder só atua sobre pedidos em PENDING_CONFIRMATION
func (s *Service) ConfirmOrder(ctx context.Context, input ConfirmOrderInput) (*Result, error) {
	if violations := validation.Struct(input); violations != nil {
		return nil, domain.NewValidationError("dados da confirmação inválidos", violations)
	}

	status, message := domain.OrderStatusCanceled, msgRejected
	if *input.Approve {
		status, message = domain.OrderStatusNew, msgConfirmed
	}

	fields := log.Fields{"order_id": input.OrderID}

	updated, err := s.orders.ConfirmOrder(ctx, domain.OrderConfirmation{
		OrderID:     input.OrderID,
		Status:      status,
		AdminNotes:  input.AdminNotes,
		ConfirmedBy: strings.TrimSpace(input.ConfirmedBy),
		ConfirmedAt: s.now(),
	})
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao confirmar pedido", fields)
	}

	if !updated {
		exists, err := s.orders.OrderExists(ctx, input.OrderID)
		if err != nil {
			return nil, usecases.PersistenceError(ctx, err, "Erro ao verificar pedido", fields)
		}
		if !exists {
			return nil, domain.NewNotFoundError("Pedido", input.OrderID)
		}
		return nil, domain.NewInvalidTransitionError("apenas pedidos aguardando confirmação podem ser confirmados")
	}

	log.ForContext(ctx).WithFields(fields).WithField("status", status).Info("Pedido confirmado pelo administrador")

	order, err := s.reload(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	return &Result{Order: order, Message: message}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.reload(ctx, id)
}

// ListOrders aplica a busca em memória depois do filtro do banco
func (s *Service) ListOrders(ctx context.Context, input ListOrdersInput) ([]*domain.Order, error) {
	filter := domain.OrderFilter{
		SalesRepID:           input.SalesRepID,
		StoreID:              input.StoreID,
		RequiresConfirmation: input.RequiresConfirmation,
	}

	if input.Status != nil && *input.Status != "" {
		status := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(*input.Status)))
		if !status.IsValid() {
			return nil, domain.NewValidationError("status inválido", map[string]string{"status": "oneof"})
		}
		filter.Status = &status
	}

	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao listar pedidos", nil)
	}

	return reporting.SearchOrders(orders, input.Search), nil
}

func (s *Service) reload(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, usecases.PersistenceError(ctx, err, "Erro ao buscar pedido", log.Fields{"order_id": id})
	}
	if order == nil {
		return nil, domain.NewNotFoundError("Pedido", id)
	}
	return order, nil
}
