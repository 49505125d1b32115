package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/field-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

func newMockConn(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.NewWithDB(db), mock
}

func storeRow(id, name string, lat, lng any) []driver.Value {
	return []driver.Value{id, name, "Jl. Raya No. 1", nil, lat, lng, time.Now()}
}

func TestStoreRepository_FindStoreByName(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, store *domain.Store, err error)
	}{
		{
			name: "encontra sem diferenciar maiúsculas",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM stores WHERE LOWER\(name\) = LOWER\(\$1\)`).
					WithArgs("toko x").
					WillReturnRows(sqlmock.NewRows(storeColumns).AddRow(storeRow("s1", "Toko X", -6.2, 106.8)...))
			},
			validate: func(t *testing.T, store *domain.Store, err error) {
				require.NoError(t, err)
				require.NotNil(t, store)
				assert.Equal(t, "s1", store.ID)
				assert.Nil(t, store.Phone)
				require.NotNil(t, store.Latitude)
				assert.Equal(t, -6.2, *store.Latitude)
			},
		},
		{
			name: "não encontrado retorna nil sem erro",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM stores`).
					WillReturnRows(sqlmock.NewRows(storeColumns))
			},
			validate: func(t *testing.T, store *domain.Store, err error) {
				assert.NoError(t, err)
				assert.Nil(t, store)
			},
		},
		{
			name: "erro do banco é propagado",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM stores`).WillReturnError(errors.New("timeout"))
			},
			validate: func(t *testing.T, store *domain.Store, err error) {
				assert.ErrorContains(t, err, "timeout")
				assert.Nil(t, store)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			tt.setup(mock)

			store, err := NewStoreRepository(conn).FindStoreByName(context.Background(), "  toko x ")

			tt.validate(t, store, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStoreRepository_CreateStore(t *testing.T) {
	conn, mock := newMockConn(t)
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO stores \(id,name,address,phone,latitude,longitude\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) RETURNING created_at`).
		WithArgs("s1", "Toko Baru", "Endereço não verificado (01/03/2024)", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	store := &domain.Store{ID: "s1", Name: "Toko Baru", Address: "Endereço não verificado (01/03/2024)"}
	err := NewStoreRepository(conn).CreateStore(context.Background(), store)

	assert.NoError(t, err)
	assert.Equal(t, createdAt, store.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_ListStores(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectQuery(`SELECT .+ FROM stores ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows(storeColumns).
			AddRow(storeRow("s2", "Mini Market", nil, nil)...).
			AddRow(storeRow("s1", "Toko Maju", -6.1, 106.8)...))

	stores, err := NewStoreRepository(conn).ListStores(context.Background())

	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Mini Market", stores[0].Name)
	assert.Nil(t, stores[0].Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}
