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

const customersTable = "customers"

//go:generate mockgen -source=customer.go -destination=mocks/customer_mock.go -package=mocks
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	FindCustomerByName(ctx context.Context, storeID, name string) (*domain.Customer, error)
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query, args, err := psql.
		Insert(customersTable).
		Columns("id", "name", "email", "phone", "store_id").
		Values(customer.ID, customer.Name, customer.Email, customer.Phone, customer.StoreID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&customer.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir cliente: %w", err)
	}

	return nil
}

// FindCustomerByName busca o cliente pelo nome (sem diferenciar maiúsculas) dentro da loja
func (r *customerRepository) FindCustomerByName(ctx context.Context, storeID, name string) (*domain.Customer, error) {
	query, args, err := psql.
		Select("id", "name", "email", "phone", "store_id", "created_at").
		From(customersTable).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer := &domain.Customer{}
	err = r.conn.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.StoreID,
		&customer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return customer, nil
}
