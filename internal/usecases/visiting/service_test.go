package visiting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/field-sales-api/infrastructure/locker"
	"github.com/vfg2006/field-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/reconciling"
	"go.uber.org/mock/gomock"
)

var fixedAt = time.Date(2024, 3, 20, 9, 30, 0, 0, time.FixedZone("WIB", 7*60*60))

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixture struct {
	service    *Service
	visits     *mocks.MockFieldVisitRepository
	stores     *mocks.MockStoreRepository
	customers  *mocks.MockCustomerRepository
	salesReps  *mocks.MockSalesRepRepository
	transactor *fakeTransactor
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		visits:     mocks.NewMockFieldVisitRepository(ctrl),
		stores:     mocks.NewMockStoreRepository(ctrl),
		customers:  mocks.NewMockCustomerRepository(ctrl),
		salesReps:  mocks.NewMockSalesRepRepository(ctrl),
		transactor: &fakeTransactor{},
	}

	f.service = &Service{
		visits:     f.visits,
		stores:     f.stores,
		salesReps:  f.salesReps,
		reconciler: reconciling.NewService(f.stores, f.customers, config.App{DefaultPhoneRegion: "ID"}),
		transactor: f.transactor,
		locker:     locker.NewLocalLocker(),
		now:        func() time.Time { return fixedAt },
		newID:      func() (string, error) { return "v1", nil },
	}

	return f
}

func ptr[T any](v T) *T { return &v }

func TestCreateFieldVisit(t *testing.T) {
	t.Run("loja existente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.salesReps.EXPECT().GetSalesRepByID(gomock.Any(), "rep1").Return(&domain.SalesRepresentative{ID: "rep1"}, nil)
		f.stores.EXPECT().GetStoreByID(gomock.Any(), "s1").Return(&domain.Store{ID: "s1"}, nil)
		f.visits.EXPECT().CreateFieldVisit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, visit *domain.FieldVisit) error {
			assert.Equal(t, "s1", visit.StoreID)
			assert.Equal(t, fixedAt, visit.CheckInTime)
			assert.Equal(t, fixedAt, visit.VisitDate)
			assert.Equal(t, []string{}, visit.Photos)
			assert.Equal(t, -6.2, visit.Latitude)
			return nil
		})
		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1", StoreID: "s1"}, nil)

		result, err := f.service.CreateFieldVisit(context.Background(), CreateFieldVisitInput{
			SalesRepID:   "rep1",
			StoreID:      ptr("s1"),
			VisitPurpose: "sales",
			Latitude:     ptr(-6.2),
			Longitude:    ptr(106.8),
		})

		require.NoError(t, err)
		assert.Equal(t, "Check-in salvo com sucesso!", result.Message)
		assert.Equal(t, 1, f.transactor.calls)
	})

	t.Run("cria a loja com as coordenadas da visita", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.salesReps.EXPECT().GetSalesRepByID(gomock.Any(), "rep1").Return(&domain.SalesRepresentative{ID: "rep1"}, nil)
		f.stores.EXPECT().FindStoreByName(gomock.Any(), "Warung Baru").Return(nil, nil)
		f.stores.EXPECT().CreateStore(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, store *domain.Store) error {
			require.NotNil(t, store.Latitude)
			assert.Equal(t, 0.0, *store.Latitude)
			assert.Equal(t, 106.8, *store.Longitude)
			return nil
		})
		f.visits.EXPECT().CreateFieldVisit(gomock.Any(), gomock.Any()).Return(nil)
		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1"}, nil)

		result, err := f.service.CreateFieldVisit(context.Background(), CreateFieldVisitInput{
			SalesRepID:   "rep1",
			StoreName:    ptr("Warung Baru"),
			VisitPurpose: "newcustomer",
			Latitude:     ptr(0.0),
			Longitude:    ptr(106.8),
			Photos:       []string{"data:image/jpeg;base64,AAA"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Check-in salvo com sucesso! Nova loja cadastrada.", result.Message)
	})
}

func TestCreateFieldVisitValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateFieldVisitInput
		field string
		rule  string
	}{
		{
			name:  "sem latitude",
			input: CreateFieldVisitInput{SalesRepID: "rep1", StoreID: ptr("s1"), VisitPurpose: "sales", Longitude: ptr(106.8)},
			field: "latitude",
			rule:  "required",
		},
		{
			name:  "longitude fora do intervalo",
			input: CreateFieldVisitInput{SalesRepID: "rep1", StoreID: ptr("s1"), VisitPurpose: "sales", Latitude: ptr(1.0), Longitude: ptr(181.0)},
			field: "longitude",
			rule:  "lte",
		},
		{
			name:  "propósito desconhecido",
			input: CreateFieldVisitInput{SalesRepID: "rep1", StoreID: ptr("s1"), VisitPurpose: "party", Latitude: ptr(1.0), Longitude: ptr(1.0)},
			field: "visit_purpose",
			rule:  "oneof",
		},
		{
			name:  "sem loja",
			input: CreateFieldVisitInput{SalesRepID: "rep1", VisitPurpose: "sales", Latitude: ptr(1.0), Longitude: ptr(1.0)},
			field: "store_id",
			rule:  "required_without",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newFixture(ctrl)

			_, err := f.service.CreateFieldVisit(context.Background(), tt.input)

			require.ErrorIs(t, err, domain.ErrValidation)
			var domainErr *domain.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.rule, domainErr.Fields[tt.field])
			assert.Equal(t, 0, f.transactor.calls)
		})
	}
}

func TestCheckOutFieldVisit(t *testing.T) {
	t.Run("primeiro check-out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.visits.EXPECT().CheckOutFieldVisit(gomock.Any(), "v1", fixedAt, ptr("pedido fechado")).Return(true, nil)
		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1", CheckOutTime: &fixedAt}, nil)

		result, err := f.service.CheckOutFieldVisit(context.Background(), CheckOutInput{VisitID: "v1", Result: ptr("pedido fechado")})

		require.NoError(t, err)
		assert.Equal(t, "Check-out salvo com sucesso!", result.Message)
		assert.NotNil(t, result.Visit.CheckOutTime)
	})

	t.Run("segundo check-out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.visits.EXPECT().CheckOutFieldVisit(gomock.Any(), "v1", gomock.Any(), gomock.Nil()).Return(false, nil)
		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1", CheckOutTime: &fixedAt}, nil)

		_, err := f.service.CheckOutFieldVisit(context.Background(), CheckOutInput{VisitID: "v1"})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("visita de outro vendedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1", SalesRepID: "rep2"}, nil)

		_, err := f.service.CheckOutFieldVisit(context.Background(), CheckOutInput{VisitID: "v1", SalesRepID: ptr("rep1")})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("vendedor dono da visita", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v1").Return(&domain.FieldVisit{ID: "v1", SalesRepID: "rep1"}, nil).Times(2)
		f.visits.EXPECT().CheckOutFieldVisit(gomock.Any(), "v1", fixedAt, gomock.Nil()).Return(true, nil)

		result, err := f.service.CheckOutFieldVisit(context.Background(), CheckOutInput{VisitID: "v1", SalesRepID: ptr("rep1")})

		require.NoError(t, err)
		assert.Equal(t, "Check-out salvo com sucesso!", result.Message)
	})

	t.Run("visita inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.visits.EXPECT().CheckOutFieldVisit(gomock.Any(), "v9", gomock.Any(), gomock.Any()).Return(false, nil)
		f.visits.EXPECT().GetFieldVisitByID(gomock.Any(), "v9").Return(nil, nil)

		_, err := f.service.CheckOutFieldVisit(context.Background(), CheckOutInput{VisitID: "v9"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListFieldVisits(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	f.visits.EXPECT().ListFieldVisits(gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão recusada"))

	_, err := f.service.ListFieldVisits(context.Background(), domain.FieldVisitFilter{})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}
