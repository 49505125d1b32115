package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

const salesRepsTable = "sales_representatives"

var salesRepColumns = []string{"id", "name", "email", "phone", "employee_id", "territory", "target", "achieved", "created_at"}

//go:generate mockgen -source=sales_rep.go -destination=mocks/sales_rep_mock.go -package=mocks
type SalesRepRepository interface {
	GetSalesRepByID(ctx context.Context, id string) (*domain.SalesRepresentative, error)
	ListSalesReps(ctx context.Context) ([]*domain.SalesRepresentative, error)
}

type salesRepRepository struct {
	conn *postgres.Connection
}

func NewSalesRepRepository(conn *postgres.Connection) SalesRepRepository {
	return &salesRepRepository{
		conn: conn,
	}
}

func (r *salesRepRepository) GetSalesRepByID(ctx context.Context, id string) (*domain.SalesRepresentative, error) {
	query, args, err := psql.
		Select(salesRepColumns...).
		From(salesRepsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rep, err := scanSalesRep(r.conn.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendedor: %w", err)
	}

	return rep, nil
}

func (r *salesRepRepository) ListSalesReps(ctx context.Context) ([]*domain.SalesRepresentative, error) {
	query, args, err := psql.
		Select(salesRepColumns...).
		From(salesRepsTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendedores: %w", err)
	}
	defer rows.Close()

	reps := make([]*domain.SalesRepresentative, 0)
	for rows.Next() {
		rep, err := scanSalesRep(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vendedor: %w", err)
		}
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reps, nil
}

func scanSalesRep(s scanner) (*domain.SalesRepresentative, error) {
	rep := &domain.SalesRepresentative{}
	var territory pq.StringArray

	err := s.Scan(
		&rep.ID,
		&rep.Name,
		&rep.Email,
		&rep.Phone,
		&rep.EmployeeID,
		&territory,
		&rep.Target,
		&rep.Achieved,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rep.Territory = []string(territory)
	return rep, nil
}
