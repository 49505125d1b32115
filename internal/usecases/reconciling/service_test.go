package reconciling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/field-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockStoreRepository, *mocks.MockCustomerRepository) {
	stores := mocks.NewMockStoreRepository(ctrl)
	customers := mocks.NewMockCustomerRepository(ctrl)

	return &Service{
		stores:      stores,
		customers:   customers,
		phoneRegion: "ID",
		location:    jakarta,
		// 29/02 18:00 UTC já é 01/03 em Jakarta
		now:   func() time.Time { return time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC) },
		newID: func() (string, error) { return "new-id", nil },
	}, stores, customers
}

func ptr[T any](v T) *T { return &v }

func TestResolveStore(t *testing.T) {
	tests := []struct {
		name      string
		candidate StoreCandidate
		setup     func(stores *mocks.MockStoreRepository)
		validate  func(t *testing.T, res Resolution, err error)
	}{
		{
			name:      "loja existente não é alterada",
			candidate: StoreCandidate{Name: " toko x ", Address: ptr("Outro endereço")},
			setup: func(stores *mocks.MockStoreRepository) {
				stores.EXPECT().FindStoreByName(gomock.Any(), "toko x").Return(&domain.Store{ID: "s1", Name: "Toko X"}, nil)
			},
			validate: func(t *testing.T, res Resolution, err error) {
				require.NoError(t, err)
				assert.Equal(t, Resolution{ID: "s1", Created: false}, res)
			},
		},
		{
			name:      "cria loja com endereço provisório e coordenadas",
			candidate: StoreCandidate{Name: "Toko Baru", Latitude: ptr(-6.2), Longitude: ptr(106.8)},
			setup: func(stores *mocks.MockStoreRepository) {
				stores.EXPECT().FindStoreByName(gomock.Any(), "Toko Baru").Return(nil, nil)
				stores.EXPECT().CreateStore(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, store *domain.Store) error {
					assert.Equal(t, "new-id", store.ID)
					assert.Equal(t, "Endereço não verificado (01/03/2024)", store.Address)
					assert.Equal(t, -6.2, *store.Latitude)
					assert.Nil(t, store.Phone)
					return nil
				})
			},
			validate: func(t *testing.T, res Resolution, err error) {
				require.NoError(t, err)
				assert.Equal(t, Resolution{ID: "new-id", Created: true}, res)
			},
		},
		{
			name:      "cria loja com endereço informado",
			candidate: StoreCandidate{Name: "Toko Baru", Address: ptr(" Jl. Sudirman 1 ")},
			setup: func(stores *mocks.MockStoreRepository) {
				stores.EXPECT().FindStoreByName(gomock.Any(), "Toko Baru").Return(nil, nil)
				stores.EXPECT().CreateStore(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, store *domain.Store) error {
					assert.Equal(t, "Jl. Sudirman 1", store.Address)
					return nil
				})
			},
			validate: func(t *testing.T, res Resolution, err error) {
				require.NoError(t, err)
				assert.True(t, res.Created)
			},
		},
		{
			name:      "erro do banco vira erro de persistência",
			candidate: StoreCandidate{Name: "Toko X"},
			setup: func(stores *mocks.MockStoreRepository) {
				stores.EXPECT().FindStoreByName(gomock.Any(), "Toko X").Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, res Resolution, err error) {
				assert.ErrorIs(t, err, domain.ErrPersistence)
				assert.NotContains(t, err.Error(), "conexão recusada")
			},
		},
		{
			name:      "nome em branco",
			candidate: StoreCandidate{Name: "   "},
			setup:     func(stores *mocks.MockStoreRepository) {},
			validate: func(t *testing.T, res Resolution, err error) {
				assert.ErrorIs(t, err, domain.ErrValidation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, stores, _ := newTestService(ctrl)
			tt.setup(stores)

			res, err := service.ResolveStore(context.Background(), tt.candidate)

			tt.validate(t, res, err)
		})
	}
}

func TestResolveCustomer(t *testing.T) {
	t.Run("cliente existente na mesma loja", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _, customers := newTestService(ctrl)

		customers.EXPECT().FindCustomerByName(gomock.Any(), "s1", "Budi").Return(&domain.Customer{ID: "c1"}, nil)

		res, err := service.ResolveCustomer(context.Background(), CustomerCandidate{Name: "Budi", StoreID: "s1"})

		require.NoError(t, err)
		assert.Equal(t, Resolution{ID: "c1"}, res)
	})

	t.Run("cria cliente com telefone normalizado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _, customers := newTestService(ctrl)

		customers.EXPECT().FindCustomerByName(gomock.Any(), "s1", "Budi").Return(nil, nil)
		customers.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Customer) error {
			assert.Equal(t, "s1", c.StoreID)
			require.NotNil(t, c.Phone)
			assert.Equal(t, "+6281234567890", *c.Phone)
			assert.Nil(t, c.Email)
			return nil
		})

		res, err := service.ResolveCustomer(context.Background(), CustomerCandidate{
			Name:    "Budi",
			Email:   ptr("  "),
			Phone:   ptr("0812-3456-7890"),
			StoreID: "s1",
		})

		require.NoError(t, err)
		assert.Equal(t, Resolution{ID: "new-id", Created: true}, res)
	})
}

func TestNormalizePhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _, _ := newTestService(ctrl)

	tests := []struct {
		name     string
		input    *string
		expected *string
	}{
		{name: "nulo", input: nil, expected: nil},
		{name: "em branco", input: ptr(" "), expected: nil},
		{name: "já em E.164", input: ptr("+62812345678"), expected: ptr("+62812345678")},
		{name: "não reconhecido mantém o texto", input: ptr("ramal 12"), expected: ptr("ramal 12")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.normalizePhone(tt.input))
		})
	}
}
