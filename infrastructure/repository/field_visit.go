package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

const fieldVisitsTable = "field_visits"

var fieldVisitColumns = []string{
	"fv.id", "fv.sales_rep_id", "fv.store_id", "fv.visit_purpose", "fv.notes", "fv.latitude", "fv.longitude",
	"fv.photos", "fv.check_in_time", "fv.visit_date", "fv.check_out_time", "fv.result", "fv.created_at",
	"s.id", "s.name", "s.address", "s.phone", "s.latitude", "s.longitude", "s.created_at",
	"sr.id", "sr.name", "sr.email", "sr.phone", "sr.employee_id", "sr.territory", "sr.target", "sr.achieved", "sr.created_at",
}

//go:generate mockgen -source=field_visit.go -destination=mocks/field_visit_mock.go -package=mocks
type FieldVisitRepository interface {
	CreateFieldVisit(ctx context.Context, visit *domain.FieldVisit) error
	GetFieldVisitByID(ctx context.Context, id string) (*domain.FieldVisit, error)
	ListFieldVisits(ctx context.Context, filter domain.FieldVisitFilter) ([]*domain.FieldVisit, error)
	CheckOutFieldVisit(ctx context.Context, id string, checkOutTime time.Time, result *string) (bool, error)
}

type fieldVisitRepository struct {
	conn *postgres.Connection
}

func NewFieldVisitRepository(conn *postgres.Connection) FieldVisitRepository {
	return &fieldVisitRepository{
		conn: conn,
	}
}

func (r *fieldVisitRepository) CreateFieldVisit(ctx context.Context, visit *domain.FieldVisit) error {
	photos := visit.Photos
	if photos == nil {
		photos = []string{}
	}

	query, args, err := psql.
		Insert(fieldVisitsTable).
		Columns(
			"id",
			"sales_rep_id",
			"store_id",
			"visit_purpose",
			"notes",
			"latitude",
			"longitude",
			"photos",
			"check_in_time",
			"visit_date",
			"created_at",
		).
		Values(
			visit.ID,
			visit.SalesRepID,
			visit.StoreID,
			visit.VisitPurpose,
			visit.Notes,
			visit.Latitude,
			visit.Longitude,
			pq.Array(photos),
			visit.CheckInTime,
			visit.VisitDate,
			visit.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir visita: %w", err)
	}

	return nil
}

func (r *fieldVisitRepository) GetFieldVisitByID(ctx context.Context, id string) (*domain.FieldVisit, error) {
	query, args, err := r.selectVisits().
		Where(squirrel.Eq{"fv.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	visit, err := scanFieldVisit(r.conn.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar visita: %w", err)
	}

	return visit, nil
}

func (r *fieldVisitRepository) ListFieldVisits(ctx context.Context, filter domain.FieldVisitFilter) ([]*domain.FieldVisit, error) {
	builder := r.selectVisits()

	if filter.SalesRepID != nil {
		builder = builder.Where(squirrel.Eq{"fv.sales_rep_id": *filter.SalesRepID})
	}

	query, args, err := builder.OrderBy("fv.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar visitas: %w", err)
	}
	defer rows.Close()

	visits := make([]*domain.FieldVisit, 0)
	for rows.Next() {
		visit, err := scanFieldVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear visita: %w", err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return visits, nil
}

// CheckOutFieldVisit registra a saída uma única vez. Retorna false se a visita não existe ou já tem check-out.
func (r *fieldVisitRepository) CheckOutFieldVisit(ctx context.Context, id string, checkOutTime time.Time, result *string) (bool, error) {
	query, args, err := psql.
		Update(fieldVisitsTable).
		Set("check_out_time", checkOutTime).
		Set("result", result).
		Where(squirrel.Eq{"id": id, "check_out_time": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	res, err := r.conn.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao registrar check-out: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *fieldVisitRepository) selectVisits() squirrel.SelectBuilder {
	return psql.
		Select(fieldVisitColumns...).
		From(fieldVisitsTable + " fv").
		Join(storesTable + " s ON s.id = fv.store_id").
		Join(salesRepsTable + " sr ON sr.id = fv.sales_rep_id")
}

func scanFieldVisit(s scanner) (*domain.FieldVisit, error) {
	visit := &domain.FieldVisit{}
	store := &domain.Store{}
	rep := &domain.SalesRepresentative{}

	var (
		purpose   string
		photos    pq.StringArray
		territory pq.StringArray
	)

	err := s.Scan(
		&visit.ID,
		&visit.SalesRepID,
		&visit.StoreID,
		&purpose,
		&visit.Notes,
		&visit.Latitude,
		&visit.Longitude,
		&photos,
		&visit.CheckInTime,
		&visit.VisitDate,
		&visit.CheckOutTime,
		&visit.Result,
		&visit.CreatedAt,
		&store.ID,
		&store.Name,
		&store.Address,
		&store.Phone,
		&store.Latitude,
		&store.Longitude,
		&store.CreatedAt,
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

	visit.VisitPurpose = domain.VisitPurpose(purpose)
	visit.Photos = []string(photos)
	if visit.Photos == nil {
		visit.Photos = []string{}
	}
	rep.Territory = []string(territory)
	visit.Store = store
	visit.SalesRep = rep

	return visit, nil
}
