package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
)

var orderColumns = []string{
	"o.id", "o.customer_id", "o.store_id", "o.sales_rep_id", "o.total_amount", "o.status", "o.order_date",
	"o.notes", "o.admin_notes", "o.requires_confirmation", "o.confirmed_at", "o.confirmed_by",
	"o.created_at", "o.updated_at",
	"c.id", "c.name", "c.email", "c.phone", "c.store_id", "c.created_at",
	"s.id", "s.name", "s.address", "s.phone", "s.latitude", "s.longitude", "s.created_at",
	"sr.id", "sr.name", "sr.email", "sr.phone", "sr.employee_id", "sr.territory", "sr.target", "sr.achieved", "sr.created_at",
}

//go:generate mockgen -source=order.go -destination=mocks/order_mock.go -package=mocks
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	ConfirmOrder(ctx context.Context, confirmation domain.OrderConfirmation) (bool, error)
	OrderExists(ctx context.Context, id string) (bool, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// CreateOrder grava o pedido e os itens; deve rodar dentro de RunInTransaction
func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	exec := r.conn.Executor(ctx)

	query, args, err := psql.
		Insert(ordersTable).
		Columns(
			"id",
			"customer_id",
			"store_id",
			"sales_rep_id",
			"total_amount",
			"status",
			"order_date",
			"notes",
			"requires_confirmation",
			"created_at",
			"updated_at",
		).
		Values(
			order.ID,
			order.CustomerID,
			order.StoreID,
			order.SalesRepID,
			order.TotalAmount,
			order.Status,
			order.OrderDate,
			order.Notes,
			order.RequiresConfirmation,
			order.CreatedAt,
			order.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir pedido: %w", err)
	}

	if len(order.Items) == 0 {
		return nil
	}

	itemsQuery := psql.
		Insert(orderItemsTable).
		Columns("id", "order_id", "position", "product_name", "quantity", "price", "total")

	// position guarda a ordem em que o vendedor informou os itens
	for i, item := range order.Items {
		itemsQuery = itemsQuery.Values(item.ID, order.ID, i, item.ProductName, item.Quantity, item.Price, item.Total)
	}

	query, args, err = itemsQuery.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de itens: %w", err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir itens do pedido: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query, args, err := r.selectOrders().
		Where(squirrel.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	order, err := scanOrder(r.conn.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retorna os pedidos do mais recente para o mais antigo
func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	builder := r.selectOrders()

	if filter.SalesRepID != nil {
		builder = builder.Where(squirrel.Eq{"o.sales_rep_id": *filter.SalesRepID})
	}
	if filter.StoreID != nil {
		builder = builder.Where(squirrel.Eq{"o.store_id": *filter.StoreID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"o.status": string(*filter.Status)})
	}
	if filter.RequiresConfirmation != nil {
		builder = builder.Where(squirrel.Eq{"o.requires_confirmation": *filter.RequiresConfirmation})
	}

	query, args, err := builder.OrderBy("o.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ConfirmOrder só altera pedidos aguardando confirmação. Retorna false quando nenhuma linha foi atualizada.
func (r *orderRepository) ConfirmOrder(ctx context.Context, confirmation domain.OrderConfirmation) (bool, error) {
	builder := psql.
		Update(ordersTable).
		Set("status", confirmation.Status).
		Set("confirmed_at", confirmation.ConfirmedAt).
		Set("confirmed_by", confirmation.ConfirmedBy).
		Set("updated_at", confirmation.ConfirmedAt).
		Where(squirrel.Eq{
			"id":     confirmation.OrderID,
			"status": domain.OrderStatusPendingConfirmation,
		})

	if confirmation.AdminNotes != nil {
		builder = builder.Set("admin_notes", *confirmation.AdminNotes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao confirmar pedido: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *orderRepository) OrderExists(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(ordersTable).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var exists bool
	if err := r.conn.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar pedido: %w", err)
	}

	return exists, nil
}

func (r *orderRepository) selectOrders() squirrel.SelectBuilder {
	return psql.
		Select(orderColumns...).
		From(ordersTable + " o").
		Join(customersTable + " c ON c.id = o.customer_id").
		Join(storesTable + " s ON s.id = o.store_id").
		LeftJoin(salesRepsTable + " sr ON sr.id = o.sales_rep_id")
}

// attachItems carrega os itens de todos os pedidos numa única consulta
func (r *orderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for _, order := range orders {
		order.Items = make([]domain.OrderItem, 0)
		ids = append(ids, order.ID)
		byID[order.ID] = order
	}

	query, args, err := psql.
		Select("id", "order_id", "product_name", "quantity", "price", "total").
		From(orderItemsTable).
		Where(squirrel.Expr("order_id = ANY(?)", pq.Array(ids))).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de itens: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.Price, &item.Total); err != nil {
			return fmt.Errorf("erro ao escanear item: %w", err)
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de itens: %w", err)
	}

	return nil
}

func scanOrder(s scanner) (*domain.Order, error) {
	order := &domain.Order{}
	customer := &domain.Customer{}
	store := &domain.Store{}

	var (
		status       string
		repID        sql.NullString
		repName      sql.NullString
		repEmail     sql.NullString
		repPhone     sql.NullString
		repEmployee  sql.NullString
		repTerritory pq.StringArray
		repTarget    decimal.NullDecimal
		repAchieved  decimal.NullDecimal
		repCreatedAt sql.NullTime
	)

	err := s.Scan(
		&order.ID,
		&order.CustomerID,
		&order.StoreID,
		&order.SalesRepID,
		&order.TotalAmount,
		&status,
		&order.OrderDate,
		&order.Notes,
		&order.AdminNotes,
		&order.RequiresConfirmation,
		&order.ConfirmedAt,
		&order.ConfirmedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.StoreID,
		&customer.CreatedAt,
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Phone,
		&store.Latitude,
		&store.Longitude,
		&store.CreatedAt,
		&repID,
		&repName,
		&repEmail,
		&repPhone,
		&repEmployee,
		&repTerritory,
		&repTarget,
		&repAchieved,
		&repCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	order.Customer = customer
	order.Store = store

	if repID.Valid {
		order.SalesRep = &domain.SalesRepresentative{
			ID:         repID.String,
			Name:       repName.String,
			Email:      repEmail.String,
			Phone:      repPhone.String,
			EmployeeID: repEmployee.String,
			Territory:  []string(repTerritory),
			Target:     repTarget.Decimal,
			Achieved:   repAchieved.Decimal,
			CreatedAt:  repCreatedAt.Time,
		}
	}

	return order, nil
}
