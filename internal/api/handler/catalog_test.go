package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/field-sales-api/internal/domain"
)

type fakeCatalog struct {
	err error
}

func (f *fakeCatalog) GetStores(context.Context) ([]*domain.Store, error) {
	return []*domain.Store{{ID: "s1", Name: "Toko A"}}, f.err
}

func (f *fakeCatalog) GetSalesReps(context.Context) ([]*domain.SalesRepresentative, error) {
	return []*domain.SalesRepresentative{{ID: "rep-budi"}}, f.err
}

type fakeReporter struct {
	performanceFor string
}

func (f *fakeReporter) Dashboard(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}

func (f *fakeReporter) OrderReport(_ context.Context, filter domain.ReportFilter) (*domain.OrderReport, error) {
	if filter.Period == "yesterday" {
		return nil, domain.NewValidationError("período inválido", map[string]string{"period": "oneof"})
	}
	return &domain.OrderReport{}, nil
}

func (f *fakeReporter) SalesRepPerformance(_ context.Context, id string) (*domain.SalesRepPerformance, error) {
	f.performanceFor = id
	return &domain.SalesRepPerformance{}, nil
}

func TestSalesRepPerformanceHandler(t *testing.T) {
	t.Run("vendedor consulta o próprio desempenho", func(t *testing.T) {
		reporter := &fakeReporter{}

		rec, _ := serve(Catalog(&fakeCatalog{}, reporter), sales, http.MethodGet, "/v1/sales-reps/rep-budi/performance", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "rep-budi", reporter.performanceFor)
	})

	t.Run("vendedor não consulta outro vendedor", func(t *testing.T) {
		reporter := &fakeReporter{}

		rec, env := serve(Catalog(&fakeCatalog{}, reporter), sales, http.MethodGet, "/v1/sales-reps/rep-2/performance", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "AUTH_008", env.Error.Code)
		assert.Empty(t, reporter.performanceFor)
	})
}

func TestGetStoresHandler(t *testing.T) {
	rec, env := serve(Catalog(&fakeCatalog{}, &fakeReporter{}), sales, http.MethodGet, "/v1/stores", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = serve(Catalog(&fakeCatalog{err: errors.New("boom")}, &fakeReporter{}), sales, http.MethodGet, "/v1/sales-reps", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SRV_001", env.Error.Code)
}

func TestReportRoutes(t *testing.T) {
	t.Run("vendedor não acessa o dashboard", func(t *testing.T) {
		rec, _ := serve(Reports(&fakeReporter{}), sales, http.MethodGet, "/v1/dashboard", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("período inválido", func(t *testing.T) {
		rec, env := serve(Reports(&fakeReporter{}), admin, http.MethodGet, "/v1/reports/orders?period=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "oneof", env.Error.Details["period"])
	})
}
